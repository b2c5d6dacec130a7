package drawing

import "image"

// Rect is a canvas-space rectangle. Width and Height may be negative while a
// drag crosses the opposite edge.
type Rect struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RectFrom converts an image.Rectangle.
func RectFrom(r image.Rectangle) Rect {
	return Rect{Left: r.Min.X, Top: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Normalize returns the same covered area with non-negative extents.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.Left += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Top += r.Height
		r.Height = -r.Height
	}
	return r
}

// Image returns the canonical image.Rectangle for r.
func (r Rect) Image() image.Rectangle {
	n := r.Normalize()
	return image.Rect(n.Left, n.Top, n.Left+n.Width, n.Top+n.Height)
}

// Start is the corner at (Left, Top).
func (r Rect) Start() image.Point { return image.Pt(r.Left, r.Top) }

// End is the corner diagonally opposite Start.
func (r Rect) End() image.Point { return image.Pt(r.Left+r.Width, r.Top+r.Height) }

// Add translates r by p.
func (r Rect) Add(p image.Point) Rect {
	r.Left += p.X
	r.Top += p.Y
	return r
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool { return r.Width == 0 || r.Height == 0 }

func rectBetween(a, b image.Point) Rect {
	return Rect{Left: a.X, Top: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}
}
