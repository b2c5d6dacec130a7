package editor

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/annotator/internal/drawing"
)

const (
	headerHeight = 24
	bottomHeight = 24

	minZoom = 0.1
	maxZoom = 16
)

// view maps between window pixels and canvas pixels.
type view struct {
	zoom float64
	// offset is in canvas coordinates so it is independent of zoom.
	offset image.Point
}

func fitZoom(canvas image.Rectangle, toolbar, winW, winH int) float64 {
	availW := winW - toolbar
	availH := winH - headerHeight - bottomHeight
	if availW <= 0 || availH <= 0 || canvas.Empty() {
		return 1
	}
	zx := float64(availW) / float64(canvas.Dx())
	zy := float64(availH) / float64(canvas.Dy())
	return clampZoom(math.Min(zx, zy))
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// imageRect returns the window rectangle the canvas is drawn into. The
// origin sits just below the header so the image does not jump when the
// canvas grows or shrinks.
func (v view) imageRect(canvas image.Rectangle, toolbar int) image.Rectangle {
	w := int(float64(canvas.Dx()) * v.zoom)
	h := int(float64(canvas.Dy()) * v.zoom)
	x0 := toolbar + int(float64(v.offset.X)*v.zoom)
	y0 := headerHeight + int(float64(v.offset.Y)*v.zoom)
	return image.Rect(x0, y0, x0+w, y0+h)
}

// toCanvas converts a window pointer event into canvas coordinates.
func (v view) toCanvas(e mouse.Event, dst image.Rectangle) mouse.Event {
	e.X = float32((float64(e.X) - float64(dst.Min.X)) / v.zoom)
	e.Y = float32((float64(e.Y) - float64(dst.Min.Y)) / v.zoom)
	return e
}

// drawCheckerboard fills rect of dst with a checkerboard of the given colours.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// backdrop caches the checkerboard drawn behind the canvas.
type backdrop struct {
	light, dark color.Color
	cache       *image.RGBA
}

func (b *backdrop) draw(dst *image.RGBA) {
	r := dst.Bounds()
	if b.cache == nil || b.cache.Bounds() != r {
		b.cache = image.NewRGBA(r)
		drawCheckerboard(b.cache, r, 8, b.light, b.dark)
	}
	draw.Draw(dst, r, b.cache, r.Min, draw.Src)
}

// canvas holds the rendered surface shared with the paint goroutine.
type canvas struct {
	mu  sync.Mutex
	img *image.RGBA
}

// update re-renders the part of the surface that changed since the last
// call. The surface must only be touched from the event loop.
func (c *canvas) update(s *drawing.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.img == nil || c.img.Bounds() != s.Bounds() {
		c.img = image.NewRGBA(s.Bounds())
		s.TakeDirty()
		s.Render(c.img, drawing.RenderEdit)
		return
	}
	r := s.TakeDirty().Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	s.Render(c.img.SubImage(r).(*image.RGBA), drawing.RenderEdit)
}
