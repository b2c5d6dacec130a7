package effects

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ResizeEffect scales the image to Width by Height. With MaintainAspectRatio
// the request is a bounding box and the image is scaled uniformly to fit.
type ResizeEffect struct {
	Width               int
	Height              int
	MaintainAspectRatio bool
}

// NewResizeEffect returns a configured ResizeEffect.
func NewResizeEffect(width, height int, maintainAspectRatio bool) *ResizeEffect {
	return &ResizeEffect{Width: width, Height: height, MaintainAspectRatio: maintainAspectRatio}
}

func (e *ResizeEffect) Name() string { return "editor_resize" }

// Reset does nothing: a target size has no universal default.
func (e *ResizeEffect) Reset() {}

// OutputSize computes the size Apply will produce for a source of sw by sh.
func (e *ResizeEffect) OutputSize(sw, sh int) (int, int, error) {
	if sw <= 0 || sh <= 0 {
		return 0, 0, fmt.Errorf("%w: source image %dx%d has no area", ErrInvalidEffectParameters, sw, sh)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: requested size %dx%d", ErrInvalidEffectParameters, e.Width, e.Height)
	}
	if !e.MaintainAspectRatio {
		return e.Width, e.Height, nil
	}
	scale := math.Min(float64(e.Width)/float64(sw), float64(e.Height)/float64(sh))
	w := max(1, int(math.Round(float64(sw)*scale)))
	h := max(1, int(math.Round(float64(sh)*scale)))
	return w, h, nil
}

func (e *ResizeEffect) Apply(src image.Image, m *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	sb := src.Bounds()
	w, h, err := e.OutputSize(sb.Dx(), sb.Dy())
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	if m != nil {
		m.Scale(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	}
	return dst, nil
}
