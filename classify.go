package dclayer

// fullUV is the normalized source rect covering a whole texture.
var fullUV = Rect{W: 1, H: 1}

// Classifier decides whether a quad is structurally eligible to become an
// overlay candidate. It does not look at other quads; occlusion is decided
// separately.
type Classifier struct {
	Resources ResourceProvider
	// AllowComplexTransforms admits rotated, skewed and perspective quads.
	AllowComplexTransforms bool
}

// Classify evaluates q within pc. The checks run in a fixed order and the
// first failure is returned:
//
//  1. material ([ResultUnsupportedQuad])
//  2. blend mode ([ResultQuadBlendMode])
//  3. resource eligibility ([ResultTextureNotCandidate])
//  4. transform ([ResultComplexTransform])
//
// On success the returned Candidate has its content and bounds rects
// computed. Classify is deterministic and has no side effects beyond
// querying the resource provider.
func (c Classifier) Classify(q *Quad, pc PassContext) (Candidate, Result) {
	cand := Candidate{Material: q.Material(), EdgeAAMask: q.EdgeAA}
	if pc.Pass != nil {
		cand.PassID = pc.Pass.ID
	}

	source, ok := c.describeContent(q, pc, &cand)
	if !ok {
		return Candidate{}, ResultUnsupportedQuad
	}

	if !blendSupported(q) {
		return Candidate{}, ResultQuadBlendMode
	}

	for _, id := range cand.Resources {
		if c.Resources == nil || !c.Resources.IsOverlayEligible(id) {
			return Candidate{}, ResultTextureNotCandidate
		}
	}

	xform := q.QuadToTarget()
	if !xform.Preserves2DAxisAlignment() && !c.AllowComplexTransforms {
		return Candidate{}, ResultComplexTransform
	}

	cand.ContentRect = cropSource(source, q.Rect, q.Visible(), cand.YFlipped)
	cand.BoundsRect = q.TargetRect().Intersect(pc.Display)
	return cand, ResultSuccess
}

// describeContent fills the material-specific candidate fields and returns
// the content's full source rect. It reports false for unsupported quads.
func (c Classifier) describeContent(q *Quad, pc PassContext, cand *Candidate) (Rect, bool) {
	switch content := q.Content.(type) {
	case SolidColorContent:
		cand.BackgroundColor = content.Color
		if content.ForceAntiAliasingOff {
			cand.EdgeAAMask = EdgeNone
		}
		return q.Rect, true

	case TextureContent:
		cand.Resources = []ResourceID{content.Resource}
		cand.BackgroundColor = content.BackgroundColor
		uv := content.UVRect
		if uv.IsEmpty() {
			uv = fullUV
		}
		cand.YFlipped = content.YFlipped
		return uv, true

	case YUVVideoContent:
		if len(content.Planes) == 0 {
			return Rect{}, false
		}
		cand.Resources = append([]ResourceID(nil), content.Planes...)
		cand.ColorSpace = content.ColorSpace
		cand.RequireOverlay = content.RequireOverlay
		src := content.TexCoordRect
		if src.IsEmpty() {
			src = fullUV
		}
		return src, true

	case StreamVideoContent:
		cand.Resources = []ResourceID{content.Resource}
		cand.ColorSpace = content.ColorSpace
		return fullUV, true

	case RenderPassContent:
		pass, ok := pc.LookupPass(content.Pass)
		if !ok || !pass.Filters.IsSimple() || len(pass.BackdropFilters) > 0 {
			return Rect{}, false
		}
		cand.RenderPass = pass
		if content.Mask != 0 {
			cand.Resources = []ResourceID{content.Mask}
		}
		src := content.TexCoordRect
		if src.IsEmpty() {
			src = pass.OutputRect
		}
		return src, true

	case TiledContent, DebugBorderContent, SurfaceContent:
		return Rect{}, false

	default:
		return Rect{}, false
	}
}

// blendSupported reports whether the quad composites with plain source-over
// semantics: source-over at full opacity or over opaque content. BlendSrc is
// equivalent to source-over for fully opaque quads.
func blendSupported(q *Quad) bool {
	switch q.BlendMode {
	case BlendSrcOver:
		return q.Opacity == 1 || q.contentOpaque()
	case BlendSrc:
		return q.IsOpaque()
	default:
		return false
	}
}

// cropSource maps the visible part of quadRect onto the matching part of
// source. When flipped, the top of the quad samples the bottom of source.
func cropSource(source, quadRect, visible Rect, flipped bool) Rect {
	if quadRect.IsEmpty() || visible == quadRect {
		return source
	}
	sx := source.W / quadRect.W
	sy := source.H / quadRect.H
	top := visible.Y - quadRect.Y
	if flipped {
		top = quadRect.Bottom() - visible.Bottom()
	}
	return Rect{
		X: source.X + (visible.X-quadRect.X)*sx,
		Y: source.Y + top*sy,
		W: visible.W * sx,
		H: visible.H * sy,
	}
}
