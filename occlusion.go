package dclayer

// Occlusion summarizes the quads drawn in front of a candidate.
type Occlusion struct {
	// Occluded is true when the candidate's visible bounds are covered by
	// OpaqueBox, or when nothing of the candidate lies inside the display.
	Occluded bool

	// BoundingBox is the bounding union of every visible front quad's
	// overlap with the candidate. An empty BoundingBox means nothing is
	// drawn over the candidate.
	BoundingBox Rect

	// OpaqueBox is a rect that opaque, axis-aligned front quads cover
	// completely. Overlaps are merged into it only while the merged area
	// stays a rectangle.
	OpaqueBox Rect
}

// ComputeOcclusion sweeps front, the quads drawn after the candidate, in
// draw order and reports how they cover target within display.
//
// Every quad is modeled by its rectangular target bounds. A candidate is
// occluded only if its bounds are contained in the opaque box; overlapping
// it is never enough. Quads that are not axis-aligned may cover less than
// their bounds, so they never contribute to the opaque box. Opaque quads
// that leave gaps between them are not merged, so a partly visible
// candidate is never reported occluded.
func ComputeOcclusion(target Rect, front []Quad, display Rect) Occlusion {
	visible := target.Intersect(display)
	if visible.IsEmpty() {
		return Occlusion{Occluded: true}
	}

	var occ Occlusion
	for i := range front {
		q := &front[i]
		if q.IsInvisible() {
			continue
		}
		overlap := q.TargetRect().Intersect(visible)
		if overlap.IsEmpty() {
			continue
		}
		occ.BoundingBox = occ.BoundingBox.Union(overlap)
		if q.IsOpaque() && q.QuadToTarget().Preserves2DAxisAlignment() {
			occ.OpaqueBox = mergeCovered(occ.OpaqueBox, overlap)
		}
	}
	occ.Occluded = occ.OpaqueBox.ContainsRect(visible)
	return occ
}

// mergeCovered returns a rect covered by box and r together. The bounding
// union is used when it adds no uncovered area; otherwise the larger of the
// two is kept.
func mergeCovered(box, r Rect) Rect {
	if box.IsEmpty() {
		return r
	}
	if r.IsEmpty() || box.ContainsRect(r) {
		return box
	}
	u := box.Union(r)
	covered := box.Area() + r.Area() - box.Intersect(r).Area()
	if u.Area()-covered <= 1e-9*u.Area() {
		return u
	}
	if r.Area() > box.Area() {
		return r
	}
	return box
}
