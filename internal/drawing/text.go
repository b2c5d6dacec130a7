package drawing

import (
	"image"
	"log"

	"golang.org/x/image/font"
)

const textPadding = 4

// TextContainer is a multi-line label. Its font face is a cached resource
// rebuilt by Attach.
type TextContainer struct {
	DrawableContainer
	Text string

	face    font.Face
	editing bool
}

func NewTextContainer(s *Surface, r Rect, st Style, text string) *TextContainer {
	c := &TextContainer{Text: text}
	c.init(c, KindText, 0, r, st)
	c.Attach(s)
	c.fit()
	return c
}

// Attach rebuilds the adorners and the font face.
func (c *TextContainer) Attach(s *Surface) {
	c.DrawableContainer.Attach(s)
	face, err := faceForSize(c.Style.FontSize)
	if err != nil {
		log.Printf("text: %v", err)
		return
	}
	c.face = face
}

func (c *TextContainer) Detach() {
	c.DrawableContainer.Detach()
	c.face = nil
	c.editing = false
}

// Editing reports whether keyboard input is routed to this container.
func (c *TextContainer) Editing() bool { return c.editing }

// SetText replaces the text and grows the box to fit it.
func (c *TextContainer) SetText(text string) {
	c.Invalidate()
	c.Text = text
	c.fit()
	c.Invalidate()
}

// fit grows the geometry so the text is never clipped.
func (c *TextContainer) fit() {
	if c.face == nil {
		return
	}
	w, h, _ := measureText(c.face, c.Text)
	w += 2 * textPadding
	h += 2 * textPadding
	r := c.rect.Normalize()
	if r.Width < w {
		r.Width = w
	}
	if r.Height < h {
		r.Height = h
	}
	c.rect = r
}

func (c *TextContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() || c.face == nil {
		return
	}
	r := c.rect.Image()
	if c.Style.FillColor.Visible() {
		fillRect(dst, r, c.Style.FillColor)
	}
	drawText(dst, c.face, r.Min.X+textPadding, r.Min.Y+textPadding, c.Text, c.Style.LineColor)
	if c.editing && mode == RenderEdit {
		m := c.face.Metrics()
		w, _, lh := measureText(c.face, lastLine(c.Text))
		x := r.Min.X + textPadding + w + 1
		y := r.Min.Y + textPadding + lh*countLines(c.Text)
		drawLine(dst, x, y, x, y+m.Ascent.Ceil()+m.Descent.Ceil(), c.Style.LineColor, 1)
	}
}

func (c *TextContainer) DrawingBounds() image.Rectangle { return c.rect.Image().Inset(-2) }

func (c *TextContainer) Record() Record {
	rec := c.DrawableContainer.Record()
	rec.Text = c.Text
	return rec
}

func lastLine(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			return s[i+1:]
		}
	}
	return s
}

func countLines(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}

// StepLabelContainer is a numbered circular marker. It stays square while
// resized.
type StepLabelContainer struct {
	DrawableContainer
	Number int
}

func NewStepLabelContainer(s *Surface, r Rect, st Style, number int) *StepLabelContainer {
	c := &StepLabelContainer{Number: number}
	c.init(c, KindStepLabel, 0, r, st)
	c.Attach(s)
	return c
}

func (c *StepLabelContainer) Draw(dst *image.RGBA, mode RenderMode) {
	if !c.attached() {
		return
	}
	col := c.Style.FillColor
	if !col.Visible() {
		col = c.Style.LineColor
	}
	drawNumberBox(dst, c.rect.Image(), c.Number, col)
}

func (c *StepLabelContainer) DrawingBounds() image.Rectangle { return c.rect.Image() }

// Constrain keeps the marker square, anchored at the corner opposite the
// dragged handle.
func (c *StepLabelContainer) Constrain(role Role, r Rect) Rect {
	if role == RoleMove {
		return r
	}
	right, bottom := r.Left+r.Width, r.Top+r.Height
	side := max(abs(r.Width), abs(r.Height))
	r.Width = withSign(side, r.Width)
	r.Height = withSign(side, r.Height)
	if movesLeft(role) {
		r.Left = right - r.Width
	}
	if movesTop(role) {
		r.Top = bottom - r.Height
	}
	return r
}

func (c *StepLabelContainer) Record() Record {
	rec := c.DrawableContainer.Record()
	rec.Number = c.Number
	return rec
}

func withSign(v, sign int) int {
	if sign < 0 {
		return -v
	}
	return v
}
