package effects

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2D affine transform in the layout used by golang.org/x/image:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Matrix f64.Aff3

// Identity returns the transform that leaves every point unchanged.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0}
}

// Aff3 returns the matrix as the x/image type so it can be handed to
// draw.Transformer implementations.
func (m Matrix) Aff3() f64.Aff3 { return f64.Aff3(m) }

// Mul returns m*n, the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// Scale appends a scale to the transform.
func (m *Matrix) Scale(sx, sy float64) {
	*m = Matrix{sx, 0, 0, 0, sy, 0}.Mul(*m)
}

// Translate appends a translation to the transform.
func (m *Matrix) Translate(tx, ty float64) {
	*m = Matrix{1, 0, tx, 0, 1, ty}.Mul(*m)
}

// Rotate90 appends a clockwise rotation by the given number of quarter turns
// of an image that was w by h pixels before the rotation. The result maps the
// rotated image back onto non-negative coordinates.
func (m *Matrix) Rotate90(turns, w, h int) {
	fw, fh := float64(w), float64(h)
	var r Matrix
	switch ((turns % 4) + 4) % 4 {
	case 0:
		return
	case 1:
		r = Matrix{0, -1, fh, 1, 0, 0}
	case 2:
		r = Matrix{-1, 0, fw, 0, -1, fh}
	case 3:
		r = Matrix{0, 1, 0, -1, 0, fw}
	}
	*m = r.Mul(*m)
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// TransformPoint maps p and rounds to the nearest pixel.
func (m Matrix) TransformPoint(p image.Point) image.Point {
	x, y := m.Apply(float64(p.X), float64(p.Y))
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// TransformRect maps all four corners of r and returns their bounding box.
func (m Matrix) TransformRect(r image.Rectangle) image.Rectangle {
	pts := []image.Point{
		m.TransformPoint(r.Min),
		m.TransformPoint(image.Pt(r.Max.X, r.Min.Y)),
		m.TransformPoint(r.Max),
		m.TransformPoint(image.Pt(r.Min.X, r.Max.Y)),
	}
	out := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		out.Min.X = min(out.Min.X, p.X)
		out.Min.Y = min(out.Min.Y, p.Y)
		out.Max.X = max(out.Max.X, p.X)
		out.Max.Y = max(out.Max.Y, p.Y)
	}
	return out
}

// IsIdentity reports whether m leaves points unchanged.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
