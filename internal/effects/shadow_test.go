package effects

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	e := &DropShadowEffect{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	m := Identity()
	out, err := e.Apply(img, &m)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 22, 20), out.Bounds())
	shadowPt := subject.Add(e.Offset)
	assert.NotZero(t, out.RGBAAt(shadowPt.X, shadowPt.Y).A, "expected shadow alpha at %v", shadowPt)
	assert.True(t, m.IsIdentity())
}

func TestDropShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	e := &DropShadowEffect{Radius: 2, Offset: image.Pt(-6, -3), Opacity: 1}
	m := Identity()
	_, err := e.Apply(img, &m)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 5), m.TransformPoint(image.Point{}))
}

func TestDropShadowZeroOpacityKeepsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	out, err := (&DropShadowEffect{Radius: 12, Offset: image.Pt(20, 10)}).Apply(img, nil)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), out.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, fill, out.RGBAAt(x, y))
		}
	}
}

func TestDropShadowBlursAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	e := &DropShadowEffect{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out, err := e.Apply(img, nil)
	require.NoError(t, err)
	// The canvas grows upwards by the blur radius, so the shadow of (0,0)
	// lands at offset + (0, radius).
	base := e.Offset.Add(image.Pt(0, e.Radius))
	assert.NotZero(t, out.RGBAAt(base.X, base.Y).A)
	assert.NotZero(t, out.RGBAAt(base.X+1, base.Y).A)
}

func TestDropShadowRejectsBadOpacity(t *testing.T) {
	_, err := (&DropShadowEffect{Opacity: 2}).Apply(image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
	assert.ErrorIs(t, err, ErrInvalidEffectParameters)
}
