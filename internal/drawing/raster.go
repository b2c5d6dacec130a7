package drawing

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const (
	// handleSize is the on-screen edge length of an adorner square.
	handleSize = 8
	dashLength = 4
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRect strokes the pixels just inside rect.
func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// drawDashedLine draws an axis-aligned line alternating c1 and c2 every dash
// pixels. Both end points are inclusive.
func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	step := 1
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length = -length
		step = -1
	}
	b := img.Bounds()
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		p := image.Pt(x0+i*step, y0)
		if !horiz {
			p = image.Pt(x0, y0+i*step)
		}
		if p.In(b) {
			img.Set(p.X, p.Y, col)
		}
	}
}

// drawDashedRect outlines rect with its Max corner inclusive.
func drawDashedRect(img *image.RGBA, rect image.Rectangle, c1, c2 color.Color) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dashLength, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dashLength, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dashLength, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dashLength, c1, c2)
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// pathFunc adds a path to z. Coordinates are canvas space minus (ox, oy).
type pathFunc func(z *vector.Rasterizer, ox, oy float32)

// fillPath rasterises an anti-aliased path whose canvas-space extent is box
// and composites col through it onto img.
func fillPath(img *image.RGBA, box image.Rectangle, col color.Color, path pathFunc) {
	clip := box.Intersect(img.Bounds())
	if clip.Empty() {
		return
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	path(z, float32(box.Min.X), float32(box.Min.Y))
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(img, clip, image.NewUniform(col), image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
}

const kappa = 0.5522847

// ellipsePath traces an ellipse as four cubic arcs. reverse flips the
// winding so a smaller ellipse can punch a hole in a larger one.
func ellipsePath(cx, cy, rx, ry float32, reverse bool) pathFunc {
	return func(z *vector.Rasterizer, ox, oy float32) {
		x, y := cx-ox, cy-oy
		kx, ky := rx*kappa, ry*kappa
		z.MoveTo(x+rx, y)
		if reverse {
			z.CubeTo(x+rx, y-ky, x+kx, y-ry, x, y-ry)
			z.CubeTo(x-kx, y-ry, x-rx, y-ky, x-rx, y)
			z.CubeTo(x-rx, y+ky, x-kx, y+ry, x, y+ry)
			z.CubeTo(x+kx, y+ry, x+rx, y+ky, x+rx, y)
		} else {
			z.CubeTo(x+rx, y+ky, x+kx, y+ry, x, y+ry)
			z.CubeTo(x-kx, y+ry, x-rx, y+ky, x-rx, y)
			z.CubeTo(x-rx, y-ky, x-kx, y-ry, x, y-ry)
			z.CubeTo(x+kx, y-ry, x+rx, y-ky, x+rx, y)
		}
		z.ClosePath()
	}
}

func bothPaths(a, b pathFunc) pathFunc {
	return func(z *vector.Rasterizer, ox, oy float32) {
		a(z, ox, oy)
		b(z, ox, oy)
	}
}

func polygonPath(pts ...[2]float64) pathFunc {
	return func(z *vector.Rasterizer, ox, oy float32) {
		for i, p := range pts {
			x, y := float32(p[0])-ox, float32(p[1])-oy
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
}

// fillEllipse fills the ellipse inscribed in r.
func fillEllipse(img *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	cx := float32(r.Min.X+r.Max.X) / 2
	cy := float32(r.Min.Y+r.Max.Y) / 2
	fillPath(img, r, col, ellipsePath(cx, cy, float32(r.Dx())/2, float32(r.Dy())/2, false))
}

// strokeEllipse outlines the ellipse inscribed in r with a band of width
// thick lying inside r.
func strokeEllipse(img *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	if r.Empty() || thick <= 0 {
		return
	}
	cx := float32(r.Min.X+r.Max.X) / 2
	cy := float32(r.Min.Y+r.Max.Y) / 2
	rx, ry := float32(r.Dx())/2, float32(r.Dy())/2
	t := float32(thick)
	if t >= rx || t >= ry {
		fillEllipse(img, r, col)
		return
	}
	fillPath(img, r, col, bothPaths(
		ellipsePath(cx, cy, rx, ry, false),
		ellipsePath(cx, cy, rx-t, ry-t, true),
	))
}

// arrowHead returns the three corners of the head for a line ending at (x1, y1).
func arrowHead(x0, y0, x1, y1, thick int) [3][2]float64 {
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	size := arrowHeadSize(thick)
	a1 := angle + math.Pi/6
	a2 := angle - math.Pi/6
	return [3][2]float64{
		{float64(x1), float64(y1)},
		{float64(x1) - math.Cos(a1)*size, float64(y1) - math.Sin(a1)*size},
		{float64(x1) - math.Cos(a2)*size, float64(y1) - math.Sin(a2)*size},
	}
}

func arrowHeadSize(thick int) float64 { return float64(6 + thick*3) }

// cropImage returns a copy of rect from img. Areas of rect outside img stay
// transparent.
func cropImage(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}

// luminance is used to pick a readable label colour on a filled marker.
func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
