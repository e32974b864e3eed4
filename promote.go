package dclayer

// PassState is the terminal state of the per-pass promotion state machine:
//
//	NoCandidate → EvaluatingQuads → {OverlayPromoted | UnderlayPromoted | NonePromoted}
type PassState uint8

const (
	StateNoCandidate PassState = iota
	StateEvaluatingQuads
	StateOverlayPromoted
	StateUnderlayPromoted
	StateNonePromoted
)

var passStateNames = [...]string{
	StateNoCandidate:      "no_candidate",
	StateEvaluatingQuads:  "evaluating_quads",
	StateOverlayPromoted:  "overlay_promoted",
	StateUnderlayPromoted: "underlay_promoted",
	StateNonePromoted:     "none_promoted",
}

// String returns the state name.
func (s PassState) String() string {
	if int(s) < len(passStateNames) {
		return passStateNames[s]
	}
	return "unknown"
}

// Promoted reports whether the pass promoted a plane.
func (s PassState) Promoted() bool {
	return s == StateOverlayPromoted || s == StateUnderlayPromoted
}

// PassDecision is the outcome of promotion for one render pass.
type PassDecision struct {
	PassID PassID
	IsRoot bool
	State  PassState

	// Overlay is the promoted descriptor; valid only when State.Promoted().
	Overlay Overlay
	// Shared is the promoted descriptor's shared state.
	Shared SharedState
	// Occlusion describes the quads in front of the promoted quad.
	Occlusion Occlusion
	// AxisAligned and Opaque describe the promoted quad and decide whether
	// its area can be removed from the pass damage.
	AxisAligned bool
	Opaque      bool

	// Damage is the pass damage after overlay processing.
	Damage Rect
}

// promoter runs the per-pass state machine.
type promoter struct {
	classifier          Classifier
	underlays           bool
	transparentUnderlay bool
	recorder            ResultRecorder
}

// promote evaluates pass and returns its decision. Quads are evaluated in
// reverse draw order, frontmost first, and at most one quad is promoted.
func (p *promoter) promote(pc PassContext, isRoot bool) PassDecision {
	pass := pc.Pass
	d := PassDecision{PassID: pass.ID, IsRoot: isRoot, State: StateNoCandidate, Damage: pass.Damage}
	if len(pass.Quads) == 0 {
		d.State = StateNonePromoted
		return d
	}

	d.State = StateEvaluatingQuads
	for i := len(pass.Quads) - 1; i >= 0; i-- {
		q := &pass.Quads[i]

		cand, res := p.classifier.Classify(q, pc)
		if res != ResultSuccess {
			p.record(pass, i, res)
			continue
		}
		cand.QuadIndex = i

		if d.State.Promoted() {
			p.record(pass, i, ResultTooManyOverlays)
			continue
		}
		if !isRoot {
			p.record(pass, i, ResultNonRoot)
			continue
		}

		occ := ComputeOcclusion(cand.BoundsRect, pass.Quads[i+1:], pc.Display)
		if occ.Occluded {
			p.record(pass, i, ResultOccluded)
			continue
		}

		opaque := q.IsOpaque()
		shared := SharedState{
			Opacity:   q.Opacity,
			IsClipped: q.IsClipped,
			ClipRect:  q.ClipRect,
			Transform: q.QuadToTarget(),
		}
		var plane Plane
		switch {
		case occ.BoundingBox.IsEmpty():
			plane = PlaneOverlay
			shared.ZOrder = 1
		case !p.underlays:
			p.record(pass, i, ResultOccluded)
			continue
		case !opaque && !p.transparentUnderlay:
			p.record(pass, i, ResultTransparent)
			continue
		default:
			plane = PlaneUnderlay
			shared.ZOrder = -1
		}

		d.Overlay = Overlay{Candidate: cand, Plane: plane}
		if plane == PlaneUnderlay {
			d.Overlay.HoleRect = cand.BoundsRect.Enclosing()
			d.State = StateUnderlayPromoted
		} else {
			d.State = StateOverlayPromoted
		}
		d.Shared = shared
		d.Occlusion = occ
		d.AxisAligned = shared.Transform.Preserves2DAxisAlignment()
		d.Opaque = opaque
		p.record(pass, i, ResultSuccess)

		Logger().Debug("dclayer: promoted quad",
			"pass", pass.ID,
			"quad", i,
			"material", cand.Material.String(),
			"plane", plane.String(),
			"bounds", cand.BoundsRect)
	}

	if !d.State.Promoted() {
		d.State = StateNonePromoted
	}
	return d
}

func (p *promoter) record(pass *RenderPass, quad int, r Result) {
	if r != ResultSuccess {
		Logger().Debug("dclayer: quad not promoted",
			"pass", pass.ID, "quad", quad, "result", r.String())
	}
	p.recorder.RecordResult(r)
}
