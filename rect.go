package dclayer

import "math"

// Point represents a 2D point in target space.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect represents an axis-aligned rectangle with float64 coordinates.
//
// A Rect with non-positive width or height is empty. Empty rectangles never
// contribute area to a Union and are never considered to intersect anything.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromLTRB creates a Rect from its edges.
// Returns an empty Rect if right < left or bottom < top.
func RectFromLTRB(left, top, right, bottom float64) Rect {
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the area of the rectangle, or 0 when empty.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}

// Eq reports whether two rectangles are equal. All empty rectangles are
// equal to each other.
func (r Rect) Eq(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return r.IsEmpty() && other.IsEmpty()
	}
	return r == other
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect returns true if other lies entirely within r.
// An empty r contains nothing; an empty other is contained by any
// non-empty r.
func (r Rect) ContainsRect(other Rect) bool {
	if r.IsEmpty() {
		return false
	}
	if other.IsEmpty() {
		return true
	}
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Intersects returns true if two rectangles overlap with non-zero area.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.X < r.Right() && other.Right() > r.X &&
		other.Y < r.Bottom() && other.Bottom() > r.Y
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rectangle if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	if r.IsEmpty() || other.IsEmpty() {
		return Rect{}
	}
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())

	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both rectangles.
// Empty rectangles are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		if other.IsEmpty() {
			return Rect{}
		}
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return RectFromLTRB(
		math.Min(r.X, other.X),
		math.Min(r.Y, other.Y),
		math.Max(r.Right(), other.Right()),
		math.Max(r.Bottom(), other.Bottom()),
	)
}

// Subtract removes other from r when the remainder is still a rectangle.
//
// If other covers r completely the result is empty. If other spans r fully
// along one axis and overlaps one of its edges, r shrinks along the other
// axis. In every other case r is returned unchanged, so the result is always
// a superset of the exact difference.
func (r Rect) Subtract(other Rect) Rect {
	if !r.Intersects(other) {
		return r
	}
	if other.ContainsRect(r) {
		return Rect{}
	}

	left, top, right, bottom := r.X, r.Y, r.Right(), r.Bottom()
	switch {
	case other.Y <= r.Y && other.Bottom() >= r.Bottom():
		// Full overlap in y: cut a column off the left or right.
		if other.X <= r.X {
			left = other.Right()
		} else if other.Right() >= r.Right() {
			right = other.X
		}
	case other.X <= r.X && other.Right() >= r.Right():
		// Full overlap in x: cut a row off the top or bottom.
		if other.Y <= r.Y {
			top = other.Bottom()
		} else if other.Bottom() >= r.Bottom() {
			bottom = other.Y
		}
	}
	return RectFromLTRB(left, top, right, bottom)
}

// Enclosing returns the smallest integer-aligned rectangle containing r.
func (r Rect) Enclosing() Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	return RectFromLTRB(
		math.Floor(r.X),
		math.Floor(r.Y),
		math.Ceil(r.Right()),
		math.Ceil(r.Bottom()),
	)
}

// Enclosed returns the largest integer-aligned rectangle inside r.
func (r Rect) Enclosed() Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	return RectFromLTRB(
		math.Ceil(r.X),
		math.Ceil(r.Y),
		math.Floor(r.Right()),
		math.Floor(r.Bottom()),
	)
}

// symmetricDifferenceBounds returns a rectangle covering every point that
// lies in exactly one of a and b.
func symmetricDifferenceBounds(a, b Rect) Rect {
	if a.Eq(b) {
		return Rect{}
	}
	return a.Subtract(b).Union(b.Subtract(a))
}
