package drawing

import (
	"image"
	"image/color"
)

// CropContainer is a pending crop selection. Everything outside the
// selection is dimmed until the crop is confirmed or cancelled.
type CropContainer struct {
	DrawableContainer
}

// NewCropContainer builds a crop selection attached to s.
func NewCropContainer(s *Surface, r Rect) *CropContainer {
	c := &CropContainer{}
	c.init(c, KindCrop, FlagConfirmable, r, Style{})
	c.Attach(s)
	return c
}

// DrawingBounds is always the whole canvas, since moving the selection
// changes the dimming everywhere.
func (c *CropContainer) DrawingBounds() image.Rectangle {
	if c.parent == nil {
		return image.Rectangle{}
	}
	return c.parent.Bounds()
}

func (c *CropContainer) HasContextMenu() bool { return false }

// Invalidate repaints the whole surface.
func (c *CropContainer) Invalidate() {
	if c.parent == nil {
		return
	}
	c.parent.Invalidate()
}

// Contains reports whether p lies inside the selection.
func (c *CropContainer) Contains(p image.Point) bool {
	return p.In(c.rect.Image())
}

// Bands returns the dimmed regions for the current selection.
func (c *CropContainer) Bands() [4]image.Rectangle {
	if c.parent == nil {
		return [4]image.Rectangle{}
	}
	return CropBands(c.parent.Bounds(), c.rect.Image())
}

// Draw dims the canvas outside the selection and outlines the selection one
// pixel outside its edges. Nothing is drawn for export.
func (c *CropContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if c.parent == nil || mode == RenderExport {
		return
	}
	th := c.parent.theme
	mask := color.NRGBA(th.CropMask)
	for _, b := range c.Bands() {
		if !b.Empty() {
			fillRect(dst, b, mask)
		}
	}
	sel := c.rect.Image()
	drawDashedRect(dst, image.Rect(sel.Min.X-1, sel.Min.Y-1, sel.Max.X, sel.Max.Y), color.NRGBA(th.SelectionLight), color.NRGBA(th.SelectionDark))
}

// CropBands splits canvas minus sel into top, left, right and bottom bands.
// The top and bottom bands span the full canvas width; the side bands span
// only the rows of the selection. Together with sel clipped to the canvas
// they tile the canvas without overlap.
func CropBands(canvas, sel image.Rectangle) [4]image.Rectangle {
	s := sel.Intersect(canvas)
	if s.Empty() {
		return [4]image.Rectangle{canvas}
	}
	return [4]image.Rectangle{
		image.Rect(canvas.Min.X, canvas.Min.Y, canvas.Max.X, s.Min.Y),
		image.Rect(canvas.Min.X, s.Min.Y, s.Min.X, s.Max.Y),
		image.Rect(s.Max.X, s.Min.Y, canvas.Max.X, s.Max.Y),
		image.Rect(canvas.Min.X, s.Max.Y, canvas.Max.X, canvas.Max.Y),
	}
}
