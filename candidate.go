package dclayer

import "image/color"

// Candidate describes a quad that passed classification. Candidates live for
// one frame and are never retained by the Processor.
type Candidate struct {
	// QuadIndex is the quad's position in its pass's draw order.
	QuadIndex int
	PassID    PassID
	Material  Material

	// Resources are the textures the platform layer must present, in plane
	// order. Empty for solid-color candidates.
	Resources []ResourceID

	// ContentRect is the source sub-rectangle, in the content's own
	// coordinates, after cropping to the quad's visible rect.
	ContentRect Rect
	// YFlipped is set when the content is stored bottom-up.
	YFlipped bool
	// BoundsRect is the destination rect in target space, clipped to the
	// quad's clip rect and the display rect.
	BoundsRect Rect

	BackgroundColor color.RGBA
	EdgeAAMask      EdgeMask
	ColorSpace      ColorSpace

	// RenderPass is the embedded pass for render-pass quads.
	RenderPass *RenderPass

	RequireOverlay bool
}

// SharedState holds the per-layer parameters shared by consecutive overlay
// descriptors. It is an immutable value; descriptors refer to it by index
// into OverlayList.States.
type SharedState struct {
	// ZOrder is positive for planes above the framebuffer and negative for
	// planes below it.
	ZOrder    int
	Opacity   float64
	IsClipped bool
	ClipRect  Rect
	Transform Transform
}

// Plane is where a promoted candidate is placed relative to the
// framebuffer.
type Plane uint8

const (
	// PlaneOverlay is drawn above the framebuffer.
	PlaneOverlay Plane = iota + 1
	// PlaneUnderlay is drawn below the framebuffer, visible through a
	// transparent hole.
	PlaneUnderlay
)

// String returns the plane name.
func (p Plane) String() string {
	switch p {
	case PlaneOverlay:
		return "overlay"
	case PlaneUnderlay:
		return "underlay"
	default:
		return "none"
	}
}

// Overlay is one promoted descriptor handed to the platform layer.
type Overlay struct {
	Candidate
	Plane Plane
	// State indexes OverlayList.States.
	State int
	// HoleRect is the region the rest of the pass must render transparent.
	// Empty for overlays.
	HoleRect Rect
}

// OverlayList is the ordered set of descriptors promoted in one frame.
// Ownership passes to the caller; the Processor keeps no reference.
type OverlayList struct {
	Overlays []Overlay
	States   []SharedState
}

// Len returns the number of promoted descriptors.
func (l *OverlayList) Len() int {
	return len(l.Overlays)
}

// SharedState returns the shared state of the i-th descriptor.
func (l *OverlayList) SharedState(i int) SharedState {
	return l.States[l.Overlays[i].State]
}

// add appends a descriptor, reusing the last shared state when it is
// identical.
func (l *OverlayList) add(o Overlay, s SharedState) {
	n := len(l.States)
	if n == 0 || l.States[n-1] != s {
		l.States = append(l.States, s)
		n++
	}
	o.State = n - 1
	l.Overlays = append(l.Overlays, o)
}

// CountPlane returns how many descriptors of the given plane belong to
// pass.
func (l *OverlayList) CountPlane(pass PassID, plane Plane) int {
	n := 0
	for _, o := range l.Overlays {
		if o.PassID == pass && o.Plane == plane {
			n++
		}
	}
	return n
}
