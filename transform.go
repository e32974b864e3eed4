package dclayer

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a quad-to-target transformation in homogeneous 2D
// coordinates. It uses a 3x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//	| g  h  i |
//
// This represents the transformation:
//
//	w  = g*x + h*y + i
//	x' = (a*x + b*y + c) / w
//	y' = (d*x + e*y + f) / w
//
// The zero value is not a valid transform; use Identity. A Quad with a
// zero Transform is treated as untransformed.
type Transform struct {
	m f64.Mat3
}

// unboundedExtent is used for rects whose projection crosses the w=0 plane.
const unboundedExtent = 1 << 30

// wEpsilon is the smallest homogeneous w treated as in front of the eye.
const wEpsilon = 1e-9

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{m: f64.Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// Translate creates a translation transform.
func Translate(x, y float64) Transform {
	return Transform{m: f64.Mat3{
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	}}
}

// Scale creates a scaling transform.
func Scale(x, y float64) Transform {
	return Transform{m: f64.Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}}
}

// Rotate creates a rotation transform (angle in radians).
func Rotate(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{m: f64.Mat3{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}}
}

// Perspective creates a transform with the given projective row (g, h).
func Perspective(g, h float64) Transform {
	return Transform{m: f64.Mat3{
		1, 0, 0,
		0, 1, 0,
		g, h, 1,
	}}
}

// TransformFromMat3 wraps a row-major 3x3 matrix.
func TransformFromMat3(m f64.Mat3) Transform {
	return Transform{m: m}
}

// Mat3 returns the row-major matrix, as consumed by platform adapters.
func (t Transform) Mat3() f64.Mat3 {
	return t.m
}

// Multiply returns t * other (other is applied first).
func (t Transform) Multiply(other Transform) Transform {
	var r f64.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += t.m[row*3+k] * other.m[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return Transform{m: r}
}

// MapPoint applies the transformation to a point. The second result is
// false when the point maps behind the eye (w <= 0).
func (t Transform) MapPoint(p Point) (Point, bool) {
	m := t.m
	w := m[6]*p.X + m[7]*p.Y + m[8]
	if w <= wEpsilon {
		return Point{}, false
	}
	return Point{
		X: (m[0]*p.X + m[1]*p.Y + m[2]) / w,
		Y: (m[3]*p.X + m[4]*p.Y + m[5]) / w,
	}, true
}

// MapRect returns the bounding box of r's mapped corners.
// If any corner maps behind the eye the result is unbounded, so callers
// that clip to a display rect keep a conservative (over-sized) bound.
func (t Transform) MapRect(r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	corners := [4]Point{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p, ok := t.MapPoint(c)
		if !ok {
			return RectFromLTRB(-unboundedExtent, -unboundedExtent, unboundedExtent, unboundedExtent)
		}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return RectFromLTRB(minX, minY, maxX, maxY)
}

// IsIdentity returns true if the transform is the identity.
func (t Transform) IsIdentity() bool {
	return t.m == Identity().m
}

// HasPerspective returns true if the projective row is not (0, 0, 1).
func (t Transform) HasPerspective() bool {
	return t.m[6] != 0 || t.m[7] != 0 || t.m[8] != 1
}

// IsIdentityOrIntegerTranslation returns true if the transform only
// translates by whole pixels.
func (t Transform) IsIdentityOrIntegerTranslation() bool {
	m := t.m
	if m[0] != 1 || m[1] != 0 || m[3] != 0 || m[4] != 1 || t.HasPerspective() {
		return false
	}
	return m[2] == math.Trunc(m[2]) && m[5] == math.Trunc(m[5])
}

// Preserves2DAxisAlignment returns true if the transform is a translation
// combined with an axis-aligned scale: no rotation, skew or perspective.
func (t Transform) Preserves2DAxisAlignment() bool {
	return t.m[1] == 0 && t.m[3] == 0 && !t.HasPerspective()
}
