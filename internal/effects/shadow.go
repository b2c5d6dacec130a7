package effects

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// DropShadowEffect composites the image over a blurred copy of its alpha
// channel. The canvas grows to fit the shadow; the matrix records how far the
// original content moved.
type DropShadowEffect struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// NewDropShadowEffect returns a DropShadowEffect with default parameters.
func NewDropShadowEffect() *DropShadowEffect {
	e := &DropShadowEffect{}
	e.Reset()
	return e
}

func (e *DropShadowEffect) Name() string { return "drop_shadow" }

// Reset restores a conservative shadow that works well with most screenshots.
func (e *DropShadowEffect) Reset() {
	e.Radius = 24
	e.Offset = image.Pt(16, 16)
	e.Opacity = 0.55
}

func (e *DropShadowEffect) Apply(src image.Image, m *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if e.Radius < 0 || e.Opacity < 0 || e.Opacity > 1 {
		return nil, fmt.Errorf("%w: shadow radius %d opacity %v", ErrInvalidEffectParameters, e.Radius, e.Opacity)
	}
	img := toRGBA(src)
	if e.Opacity == 0 {
		return img, nil
	}
	srcBounds := img.Bounds()
	paddedBounds := srcBounds.Inset(-e.Radius)
	shadowBounds := paddedBounds.Add(e.Offset)
	compositeBounds := srcBounds.Union(shadowBounds)
	shift := srcBounds.Min.Sub(compositeBounds.Min)
	shadowOrigin := shadowBounds.Min.Sub(compositeBounds.Min)

	mask := image.NewGray(paddedBounds.Sub(paddedBounds.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-paddedBounds.Min.X, y-paddedBounds.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlur(mask, e.Radius)

	dst := image.NewRGBA(compositeBounds.Sub(compositeBounds.Min))
	if alpha := uint8(e.Opacity*255 + 0.5); alpha > 0 {
		draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin), image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, srcBounds.Add(shift), img, srcBounds.Min, draw.Over)
	if m != nil {
		m.Translate(float64(shift.X), float64(shift.Y))
	}
	return dst, nil
}

// boxBlur runs a separable box blur using prefix sums per row and column.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	if radius <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}
	tmp := image.NewGray(b)
	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[y*src.Stride+x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(0, x-radius), min(w-1, x+radius)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(0, y-radius), min(h-1, y+radius)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
