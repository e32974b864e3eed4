package dclayer

// Frame is the decision produced for one frame.
type Frame struct {
	// Overlays is the ordered list of promoted descriptors.
	Overlays OverlayList
	// Damage is the root pass damage after overlay processing.
	Damage Rect
	// OverlayDamage is the union of the bounds of every promoted plane.
	OverlayDamage Rect
	// Passes holds one decision per input pass, in input order.
	Passes []PassDecision
}

// Promoted reports whether any plane was promoted this frame.
func (f *Frame) Promoted() bool {
	return f.Overlays.Len() > 0
}

// Processor decides, frame by frame, which quads of a compositor frame are
// handed to the hardware compositor as overlay or underlay planes.
//
// A Processor owns the cross-frame state of one output surface. Use one
// Processor per surface. It is not safe for concurrent use: the caller
// serializes Process and ClearOverlayState.
type Processor struct {
	promoter promoter
	tracker  DamageTracker
}

// NewProcessor creates a processor querying resources for texture
// eligibility.
func NewProcessor(resources ResourceProvider, opts ...Option) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Processor{
		promoter: promoter{
			classifier: Classifier{
				Resources:              resources,
				AllowComplexTransforms: o.complexTransforms,
			},
			underlays:           o.underlays,
			transparentUnderlay: o.transparentUnderlays,
			recorder:            o.recorder,
		},
	}
}

// Process evaluates passes, ordered leaf to root, against display and
// returns the frame's overlay list and damage. Process never fails: a frame
// with nothing promotable yields an empty overlay list, and the renderer
// draws it conventionally.
//
// Passes and their quads are read-only; Process never reorders or mutates
// them.
func (p *Processor) Process(passes []*RenderPass, display Rect) Frame {
	var frame Frame
	root, flagged := rootIndex(passes)
	if flagged > 1 {
		Logger().Warn("dclayer: multiple root passes flagged, using the first",
			"count", flagged)
	}

	lookup := NewPassContext(nil, passes, display)
	frame.Passes = make([]PassDecision, 0, len(passes))
	rootPos := -1
	for i, pass := range passes {
		if pass == nil {
			continue
		}
		pc := lookup
		pc.Pass = pass
		d := p.promoter.promote(pc, i == root)
		if d.State.Promoted() {
			frame.Overlays.add(d.Overlay, d.Shared)
			frame.OverlayDamage = frame.OverlayDamage.Union(d.Overlay.BoundsRect.Enclosing())
		}
		if i == root {
			rootPos = len(frame.Passes)
		}
		frame.Passes = append(frame.Passes, d)
	}

	if rootPos >= 0 {
		rd := &frame.Passes[rootPos]
		rd.Damage = p.tracker.Update(*rd, passes[root].Damage, display)
		frame.Damage = rd.Damage
	}
	return frame
}

// ClearOverlayState forgets the previous frame's underlay and occlusion
// state. Call it whenever continuity between frames cannot be assumed: on
// resize, context loss or an explicit reset. It is idempotent and cheap.
func (p *Processor) ClearOverlayState() {
	if !p.tracker.State().IsEmpty() {
		Logger().Debug("dclayer: overlay state cleared")
	}
	p.tracker.Clear()
}

// FrameState returns the state carried into the next frame.
func (p *Processor) FrameState() FrameState {
	return p.tracker.State()
}
