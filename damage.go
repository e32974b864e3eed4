package dclayer

// FrameState is the overlay state carried from one frame to the next.
// The zero value is the cleared state.
type FrameState struct {
	// UnderlayRect is the hole punched for the previous frame's underlay,
	// or empty.
	UnderlayRect Rect
	// OcclusionBox is the previous frame's occlusion bounding box over its
	// underlay, or empty.
	OcclusionBox Rect
	// DisplayRect is the previous frame's display rect.
	DisplayRect Rect
}

// IsEmpty reports whether the state carries nothing from a previous frame.
func (s FrameState) IsEmpty() bool {
	return s.UnderlayRect.IsEmpty() && s.OcclusionBox.IsEmpty() && s.DisplayRect.IsEmpty()
}

// DamageTracker turns the root pass decision into the frame's damage rect
// and remembers what the next frame must be compared against.
//
// A DamageTracker belongs to one output surface. It is not safe for
// concurrent use.
type DamageTracker struct {
	state FrameState
}

// State returns the state persisted by the last Update.
func (t *DamageTracker) State() FrameState {
	return t.state
}

// Clear forgets all persisted state. The next Update treats the frame as
// the first one. Clear is idempotent.
func (t *DamageTracker) Clear() {
	t.state = FrameState{}
}

// Update computes the damage of the root pass. damage is the renderer's own
// damage before overlay processing and root is the root pass decision.
// The result is always contained in display.
func (t *DamageTracker) Update(root PassDecision, damage, display Rect) Rect {
	prev := t.state
	displayChanged := !display.Eq(prev.DisplayRect)
	if displayChanged {
		// Nothing on screen can be reused after a resize or a reset.
		damage = damage.Union(display)
	}

	var underlay, occlusionBox Rect
	// Only whole pixels under the plane are hidden; partly covered edge
	// pixels still show the framebuffer.
	covered := root.Overlay.BoundsRect.Enclosed()
	canSubtract := root.AxisAligned && root.Opaque && !displayChanged

	switch root.State {
	case StateOverlayPromoted:
		// The framebuffer beneath whole covered pixels is never seen.
		if canSubtract {
			damage = damage.Subtract(covered)
		}

	case StateUnderlayPromoted:
		underlay = root.Overlay.HoleRect
		occlusionBox = root.Occlusion.BoundingBox.Enclosing()
		if canSubtract && underlay.Eq(prev.UnderlayRect) {
			// The hole was already cleared last frame. Only content drawn
			// over the hole, this frame or last, can have changed there.
			occluding := damage.Intersect(covered)
			damage = damage.Subtract(covered)
			occluding = occluding.Intersect(occlusionBox.Union(prev.OcclusionBox))
			damage = damage.Union(occluding)
		} else {
			damage = damage.Union(underlay)
		}
	}

	if !underlay.Eq(prev.UnderlayRect) {
		// The old hole must be filled again.
		damage = damage.Union(prev.UnderlayRect)
	}
	if !underlay.IsEmpty() || !prev.UnderlayRect.IsEmpty() {
		damage = damage.Union(symmetricDifferenceBounds(occlusionBox, prev.OcclusionBox))
	}

	damage = damage.Intersect(display)
	t.state = FrameState{
		UnderlayRect: underlay,
		OcclusionBox: occlusionBox,
		DisplayRect:  display,
	}
	return damage
}
