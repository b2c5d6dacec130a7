package effects

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RotateEffect rotates clockwise by a multiple of 90 degrees.
type RotateEffect struct {
	Angle int
}

func (e *RotateEffect) Name() string { return "rotate" }

// Reset does nothing: there is no natural default rotation.
func (e *RotateEffect) Reset() {}

func (e *RotateEffect) Apply(src image.Image, m *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if e.Angle%90 != 0 {
		return nil, fmt.Errorf("%w: angle %d is not a multiple of 90", ErrInvalidEffectParameters, e.Angle)
	}
	turns := ((e.Angle / 90 % 4) + 4) % 4
	in := toRGBA(src)
	w, h := in.Bounds().Dx(), in.Bounds().Dy()
	if m != nil {
		m.Rotate90(turns, w, h)
	}
	if turns == 0 {
		return in, nil
	}
	var out *image.RGBA
	if turns == 2 {
		out = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		out = image.NewRGBA(image.Rect(0, 0, h, w))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := in.RGBAAt(x, y)
			switch turns {
			case 1:
				out.SetRGBA(h-1-y, x, c)
			case 2:
				out.SetRGBA(w-1-x, h-1-y, c)
			case 3:
				out.SetRGBA(y, w-1-x, c)
			}
		}
	}
	return out, nil
}

// ResizeCanvasEffect pads the image on each side with Background, given as
// straight (non-premultiplied) alpha.
type ResizeCanvasEffect struct {
	Left, Top, Right, Bottom int
	Background               color.RGBA
}

func (e *ResizeCanvasEffect) Name() string { return "resize_canvas" }

// Reset does nothing: padding has no natural default.
func (e *ResizeCanvasEffect) Reset() {}

func (e *ResizeCanvasEffect) Apply(src image.Image, m *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if e.Left < 0 || e.Top < 0 || e.Right < 0 || e.Bottom < 0 {
		return nil, fmt.Errorf("%w: negative padding", ErrInvalidEffectParameters)
	}
	return pad(src, e.Left, e.Top, e.Right, e.Bottom, e.Background, m), nil
}

// BorderEffect draws a solid frame of Width pixels around the image. Color is
// straight alpha, as parsed from #RRGGBBAA.
type BorderEffect struct {
	Width int
	Color color.RGBA
}

// NewBorderEffect returns a BorderEffect with default parameters.
func NewBorderEffect() *BorderEffect {
	e := &BorderEffect{}
	e.Reset()
	return e
}

func (e *BorderEffect) Name() string { return "border" }

func (e *BorderEffect) Reset() {
	e.Width = 2
	e.Color = color.RGBA{A: 255}
}

func (e *BorderEffect) Apply(src image.Image, m *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if e.Width <= 0 {
		return nil, fmt.Errorf("%w: border width %d", ErrInvalidEffectParameters, e.Width)
	}
	return pad(src, e.Width, e.Width, e.Width, e.Width, e.Color, m), nil
}

func pad(src image.Image, left, top, right, bottom int, bg color.RGBA, m *Matrix) *image.RGBA {
	sb := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, sb.Dx()+left+right, sb.Dy()+top+bottom))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.NRGBA(bg)), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(left, top, left+sb.Dx(), top+sb.Dy()), src, sb.Min, draw.Src)
	if m != nil {
		m.Translate(float64(left), float64(top))
	}
	return out
}
