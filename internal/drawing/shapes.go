package drawing

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// RectangleContainer is an outlined, optionally filled box.
type RectangleContainer struct {
	DrawableContainer
}

func NewRectangleContainer(s *Surface, r Rect, st Style) *RectangleContainer {
	c := &RectangleContainer{}
	c.init(c, KindRectangle, 0, r, st)
	c.Attach(s)
	return c
}

func (c *RectangleContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() {
		return
	}
	r := c.rect.Image()
	if c.Style.FillColor.Visible() {
		fillRect(dst, r, c.Style.FillColor)
	}
	if c.Style.LineColor.Visible() {
		drawRect(dst, r, c.Style.LineColor, c.thickness())
	}
}

// EllipseContainer is the ellipse inscribed in its geometry.
type EllipseContainer struct {
	DrawableContainer
}

func NewEllipseContainer(s *Surface, r Rect, st Style) *EllipseContainer {
	c := &EllipseContainer{}
	c.init(c, KindEllipse, 0, r, st)
	c.Attach(s)
	return c
}

func (c *EllipseContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() {
		return
	}
	r := c.rect.Image()
	if c.Style.FillColor.Visible() {
		fillEllipse(dst, r, c.Style.FillColor)
	}
	if c.Style.LineColor.Visible() {
		strokeEllipse(dst, r, c.Style.LineColor, c.thickness())
	}
}

// Contains tests against the ellipse rather than its box.
func (c *EllipseContainer) Contains(p image.Point) bool {
	r := c.rect.Image().Inset(-2)
	if r.Empty() {
		return false
	}
	rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
	dx := (float64(p.X) + 0.5 - float64(r.Min.X) - rx) / rx
	dy := (float64(p.Y) + 0.5 - float64(r.Min.Y) - ry) / ry
	return dx*dx+dy*dy <= 1
}

// LineContainer runs from Bounds().Start() to Bounds().End(). Its geometry
// keeps its orientation, so it is never normalized.
type LineContainer struct {
	DrawableContainer
}

func NewLineContainer(s *Surface, r Rect, st Style) *LineContainer {
	c := &LineContainer{}
	c.init(c, KindLine, 0, r, st)
	c.Attach(s)
	return c
}

func (c *LineContainer) handleRoles() []Role {
	return []Role{RoleTopLeft, RoleBottomRight, RoleMove}
}

func (c *LineContainer) commit() {}

func (c *LineContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() || !c.Style.LineColor.Visible() {
		return
	}
	a, b := c.rect.Start(), c.rect.End()
	drawLine(dst, a.X, a.Y, b.X, b.Y, c.Style.LineColor, c.thickness())
}

func (c *LineContainer) DrawingBounds() image.Rectangle {
	a, b := c.rect.Start(), c.rect.End()
	return image.Rectangle{Min: a, Max: b}.Canon().Inset(-(c.thickness()/2 + 1))
}

// Contains reports whether p lies within a few pixels of the segment.
func (c *LineContainer) Contains(p image.Point) bool {
	return segmentDistance(p, c.rect.Start(), c.rect.End()) <= float64(c.thickness())/2+3
}

func segmentDistance(p, a, b image.Point) float64 {
	px, py := float64(p.X), float64(p.Y)
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := math.Max(0, math.Min(1, ((px-ax)*dx+(py-ay)*dy)/l2))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// ArrowContainer is a line with a filled head at its end point.
type ArrowContainer struct {
	LineContainer
}

func NewArrowContainer(s *Surface, r Rect, st Style) *ArrowContainer {
	c := &ArrowContainer{}
	c.init(c, KindArrow, 0, r, st)
	c.Attach(s)
	return c
}

func (c *ArrowContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() || !c.Style.LineColor.Visible() {
		return
	}
	a, b := c.rect.Start(), c.rect.End()
	drawLine(dst, a.X, a.Y, b.X, b.Y, c.Style.LineColor, c.thickness())
	if a == b {
		return
	}
	head := arrowHead(a.X, a.Y, b.X, b.Y, c.thickness())
	fillPath(dst, c.DrawingBounds(), c.Style.LineColor, polygonPath(head[:]...))
}

func (c *ArrowContainer) DrawingBounds() image.Rectangle {
	return c.LineContainer.DrawingBounds().Inset(-int(math.Ceil(arrowHeadSize(c.thickness()))))
}

// HighlightContainer tints its area like a marker pen.
type HighlightContainer struct {
	DrawableContainer
}

func NewHighlightContainer(s *Surface, r Rect, st Style) *HighlightContainer {
	c := &HighlightContainer{}
	c.init(c, KindHighlight, 0, r, st)
	c.Attach(s)
	return c
}

func (c *HighlightContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() {
		return
	}
	col := c.Style.FillColor
	if !col.Visible() {
		col = Color(c.parent.theme.Highlight)
	}
	fillRect(dst, c.rect.Image(), col)
}

func (c *HighlightContainer) DrawingBounds() image.Rectangle { return c.rect.Image() }

// DefaultPixelSize is the block size used by obfuscate containers.
const DefaultPixelSize = 8

// ObfuscateContainer pixelates the base image underneath it.
type ObfuscateContainer struct {
	DrawableContainer
	PixelSize int
}

func NewObfuscateContainer(s *Surface, r Rect, pixelSize int) *ObfuscateContainer {
	c := &ObfuscateContainer{PixelSize: pixelSize}
	c.init(c, KindObfuscate, 0, r, Style{})
	c.Attach(s)
	return c
}

// Draw reads from the base image rather than dst so that partial repaints
// produce the same blocks as a full render.
func (c *ObfuscateContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() {
		return
	}
	base := c.parent.Image()
	r := c.rect.Image().Intersect(base.Bounds())
	if r.Empty() {
		return
	}
	ps := c.PixelSize
	if ps < 1 {
		ps = DefaultPixelSize
	}
	small := image.NewRGBA(image.Rect(0, 0, (r.Dx()+ps-1)/ps, (r.Dy()+ps-1)/ps))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), base, r, xdraw.Src, nil)
	if !r.Overlaps(dst.Bounds()) {
		return
	}
	// Scale clips to dst while mapping blocks from the full rectangle.
	xdraw.NearestNeighbor.Scale(dst, r, small, small.Bounds(), xdraw.Src, nil)
}

func (c *ObfuscateContainer) DrawingBounds() image.Rectangle { return c.rect.Image() }

func (c *ObfuscateContainer) Record() Record {
	rec := c.DrawableContainer.Record()
	rec.PixelSize = c.PixelSize
	return rec
}
