package drawing

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is used for text containers without an explicit size.
const DefaultFontSize = 16

var (
	goregularFont *opentype.Font
	faces         sync.Map // map[float64]font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	goregularFont = f
}

// faceForSize returns a cached Go Regular face at the given point size.
func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	size = math.Round(size*4) / 4
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	if goregularFont == nil {
		return nil, fmt.Errorf("text font not initialised")
	}
	face, err := opentype.NewFace(goregularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// measureText returns the bounding box of text, one line per "\n", and the
// distance between baselines.
func measureText(face font.Face, text string) (width, height, lineHeight int) {
	m := face.Metrics()
	lineHeight = m.Height.Ceil()
	if lineHeight == 0 {
		lineHeight = m.Ascent.Ceil() + m.Descent.Ceil()
	}
	lines := strings.Split(text, "\n")
	d := &font.Drawer{Face: face}
	for _, l := range lines {
		if w := d.MeasureString(l).Ceil(); w > width {
			width = w
		}
	}
	height = lineHeight*(len(lines)-1) + m.Ascent.Ceil() + m.Descent.Ceil()
	return width, height, lineHeight
}

// drawText renders text with its top-left corner at (x, y).
func drawText(img *image.RGBA, face font.Face, x, y int, text string, col color.Color) {
	_, _, lineHeight := measureText(face, text)
	baseline := y + face.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
	for i, l := range strings.Split(text, "\n") {
		d.Dot = fixed.P(x, baseline+i*lineHeight)
		d.DrawString(l)
	}
}

// drawNumberBox draws a filled marker inscribed in r with num centred on it.
func drawNumberBox(img *image.RGBA, r image.Rectangle, num int, col color.Color) {
	fillEllipse(img, r, col)

	textCol := color.Color(color.Black)
	if luminance(col) < 128 {
		textCol = color.White
	}
	face := font.Face(basicfont.Face7x13)
	if r.Dy() > 28 {
		if f, err := faceForSize(float64(r.Dy()) * 0.55); err == nil {
			face = f
		}
	}
	text := fmt.Sprintf("%d", num)
	d := &font.Drawer{Dst: img, Src: image.NewUniform(textCol), Face: face}
	m := face.Metrics()
	w := d.MeasureString(text).Ceil()
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	d.Dot = fixed.P(cx-w/2, cy+(m.Ascent.Ceil()-m.Descent.Ceil())/2)
	d.DrawString(text)
}
