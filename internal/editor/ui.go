package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState, th *theme.Theme)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state, th)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func buttonColor(th *theme.Theme, state ButtonState) color.NRGBA {
	switch state {
	case StateHover:
		return color.NRGBA(th.ButtonBackgroundHover)
	case StatePressed:
		return color.NRGBA(th.ButtonBackgroundPress)
	}
	return color.NRGBA(th.ButtonBackground)
}

// ToolButton selects the kind of container created by the next drag. The
// empty kind is the selection tool.
type ToolButton struct {
	label    string
	kind     drawing.Kind
	rect     image.Rectangle
	onSelect func(drawing.Kind)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	draw.Draw(dst, tb.rect, &image.Uniform{buttonColor(th, state)}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.NRGBA(th.ButtonText)), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle     { return tb.rect }
func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.kind)
	}
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	draw.Draw(dst, s.rect, &image.Uniform{buttonColor(th, state)}, image.Point{}, draw.Src)
	outline(dst, s.rect, color.NRGBA(th.ButtonBorder))
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.NRGBA(th.ButtonText)), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle     { return s.rect }
func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

// toolSpec pairs a toolbar label with its kind and keyboard rune.
type toolSpec struct {
	label string
	kind  drawing.Kind
	r     rune
}

var tools = []toolSpec{
	{"S:Select", "", 's'},
	{"C:Crop", drawing.KindCrop, 'c'},
	{"R:Rect", drawing.KindRectangle, 'r'},
	{"E:Ellipse", drawing.KindEllipse, 'e'},
	{"L:Line", drawing.KindLine, 'l'},
	{"A:Arrow", drawing.KindArrow, 'a'},
	{"T:Text", drawing.KindText, 't'},
	{"N:Step", drawing.KindStepLabel, 'n'},
	{"H:Mark", drawing.KindHighlight, 'h'},
	{"O:Blur", drawing.KindObfuscate, 'o'},
}

// toolForRune returns the tool bound to r.
func toolForRune(r rune) (drawing.Kind, bool) {
	for _, t := range tools {
		if t.r == r {
			return t.kind, true
		}
	}
	return "", false
}

// toolbarMinWidth is wide enough for the title and every tool label.
func toolbarMinWidth() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString("Annotator").Ceil() + 8
	for _, t := range tools {
		if lw := d.MeasureString(t.label).Ceil() + 8; lw > w {
			w = lw
		}
	}
	return w
}

const (
	toolHeight   = 24
	swatchSize   = 16
	swatchStride = 18
	optionHeight = 16
)

// region identifies a hit area in the toolbar.
type region int

const (
	regionNone region = iota
	regionTool
	regionPalette
	regionOption
)

// toolbarLayout holds the rectangles of every toolbar control. It is computed
// once per frame so drawing and hit testing agree.
type toolbarLayout struct {
	tools   []image.Rectangle
	palette []image.Rectangle
	options []image.Rectangle
}

func layoutToolbar(width, nTools, nPalette, nOptions int) toolbarLayout {
	var l toolbarLayout
	y := headerHeight
	for i := 0; i < nTools; i++ {
		l.tools = append(l.tools, image.Rect(0, y, width, y+toolHeight))
		y += toolHeight
	}
	y += 4
	x := 4
	for i := 0; i < nPalette; i++ {
		l.palette = append(l.palette, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStride
		if x+swatchSize > width && i < nPalette-1 {
			x = 4
			y += swatchStride
		}
	}
	y += swatchStride + 4
	for i := 0; i < nOptions; i++ {
		l.options = append(l.options, image.Rect(0, y, width, y+optionHeight))
		y += optionHeight
	}
	return l
}

func (l toolbarLayout) hit(p image.Point) (region, int) {
	for i, r := range l.tools {
		if p.In(r) {
			return regionTool, i
		}
	}
	for i, r := range l.palette {
		if p.In(r) {
			return regionPalette, i
		}
	}
	for i, r := range l.options {
		if p.In(r) {
			return regionOption, i
		}
	}
	return regionNone, -1
}

// PaletteColor is a named drawing colour.
type PaletteColor struct {
	Name  string
	Color drawing.Color
}

// DefaultPalette returns the colours offered in the toolbar.
func DefaultPalette() []PaletteColor {
	return []PaletteColor{
		{"Black", drawing.Color{A: 255}},
		{"White", drawing.Color{R: 255, G: 255, B: 255, A: 255}},
		{"Red", drawing.Color{R: 255, A: 255}},
		{"Lime", drawing.Color{G: 255, A: 255}},
		{"Blue", drawing.Color{B: 255, A: 255}},
		{"Yellow", drawing.Color{R: 255, G: 255, A: 255}},
		{"Cyan", drawing.Color{G: 255, B: 255, A: 255}},
		{"Magenta", drawing.Color{R: 255, B: 255, A: 255}},
		{"Maroon", drawing.Color{R: 128, A: 255}},
		{"Green", drawing.Color{G: 128, A: 255}},
		{"Navy", drawing.Color{B: 128, A: 255}},
		{"Gray", drawing.Color{R: 128, G: 128, B: 128, A: 255}},
	}
}

var (
	widths    = []int{1, 2, 4, 6, 8}
	textSizes = []float64{12, 16, 20, 24, 32}
	// pixelSizes are the obfuscation block sizes offered for new blur areas.
	pixelSizes = []int{4, 8, 12, 16, 24}
)

// ensurePaletteColor returns the index of col, appending it when missing.
func ensurePaletteColor(p []PaletteColor, col drawing.Color) ([]PaletteColor, int) {
	for i, c := range p {
		if c.Color == col {
			return p, i
		}
	}
	return append(p, PaletteColor{Name: col.String(), Color: col}), len(p)
}

func nearestIndex[T int | float64](opts []T, v T) int {
	best := 0
	for i, o := range opts {
		if absDiff(o, v) < absDiff(opts[best], v) {
			best = i
		}
	}
	return best
}

func absDiff[T int | float64](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

// optionLabels lists the secondary choices shown below the palette for the
// current tool.
func optionLabels(k drawing.Kind) []string {
	var out []string
	switch k {
	case drawing.KindText:
		for _, s := range textSizes {
			out = append(out, fmt.Sprintf("%gpt", s))
		}
	case drawing.KindObfuscate:
		for _, s := range pixelSizes {
			out = append(out, fmt.Sprintf("%dpx", s))
		}
	case drawing.KindCrop, drawing.KindStepLabel:
	default:
		for _, w := range widths {
			out = append(out, fmt.Sprintf("%d", w))
		}
	}
	return out
}

func outline(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// chrome is the state needed to draw the toolbar, header and status bar.
type chrome struct {
	title     string
	toolbar   int
	width     int
	height    int
	zoom      float64
	tool      drawing.Kind
	palette   []PaletteColor
	colorIdx  int
	optionIdx int
	hoverTool int
	hoverPal  int
	hoverOpt  int
	hoverSc   int
	shortcuts []Shortcut
	status    string
	layout    toolbarLayout
	buttons   []*CacheButton
}

func (c *chrome) draw(dst *image.RGBA, th *theme.Theme) {
	bg := &image.Uniform{color.NRGBA(th.ToolbarBackground)}
	draw.Draw(dst, image.Rect(0, 0, c.width, headerHeight), bg, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, headerHeight, c.toolbar, c.height-bottomHeight), bg, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.NRGBA(th.Foreground)), Face: basicfont.Face7x13, Dot: fixed.P(4, 16)}
	d.DrawString("Annotator")
	d.Dot = fixed.P(c.toolbar+4, 16)
	d.DrawString(fmt.Sprintf("%s  %.0f%%", c.title, c.zoom*100))

	for i, cb := range c.buttons {
		cb.SetRect(c.layout.tools[i])
		state := StateDefault
		if cb.Button.(*ToolButton).kind == c.tool {
			state = StatePressed
		} else if i == c.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state, th)
	}

	for i, r := range c.layout.palette {
		draw.Draw(dst, r, &image.Uniform{c.palette[i].Color}, image.Point{}, draw.Src)
		if i == c.hoverPal {
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if i == c.colorIdx {
			outline(dst, r, color.NRGBA(th.Foreground))
		}
	}

	col := c.palette[c.colorIdx].Color
	for i, lbl := range optionLabels(c.tool) {
		r := c.layout.options[i]
		state := StateDefault
		if i == c.optionIdx {
			state = StatePressed
		} else if i == c.hoverOpt {
			state = StateHover
		}
		draw.Draw(dst, r, &image.Uniform{buttonColor(th, state)}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.NRGBA(th.ButtonText)), Face: basicfont.Face7x13, Dot: fixed.P(4, r.Min.Y+12)}
		d.DrawString(lbl)
		if c.tool != drawing.KindText && c.tool != drawing.KindObfuscate {
			mid := r.Min.Y + optionHeight/2
			w := widths[i]
			draw.Draw(dst, image.Rect(30, mid-w/2, c.toolbar-4, mid-w/2+w), &image.Uniform{col}, image.Point{}, draw.Over)
		}
	}

	c.drawStatus(dst, th)
}

func (c *chrome) drawStatus(dst *image.RGBA, th *theme.Theme) {
	rect := image.Rect(0, c.height-bottomHeight, c.width, c.height)
	draw.Draw(dst, rect, &image.Uniform{color.NRGBA(th.StatusBackground)}, image.Point{}, draw.Src)
	for i := range c.shortcuts {
		state := StateDefault
		if i == c.hoverSc {
			state = StateHover
		}
		c.shortcuts[i].Draw(dst, state, th)
	}
	if c.status == "" {
		return
	}
	x := c.toolbar + 4
	if n := len(c.shortcuts); n > 0 {
		x = c.shortcuts[n-1].rect.Max.X + 8
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.NRGBA(th.Foreground)), Face: basicfont.Face7x13,
		Dot: fixed.P(x, c.height-bottomHeight+16)}
	d.DrawString(c.status)
}

// layoutShortcuts places the status bar hints left to right.
func layoutShortcuts(scs []Shortcut, x, height int) {
	y := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range scs {
		w := meas.MeasureString(scs[i].label).Ceil()
		scs[i].SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		x = scs[i].rect.Max.X + 8
	}
}
