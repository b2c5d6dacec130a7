package effects

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeEffectMaintainsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1600, 900))
	m := Identity()
	out, err := NewResizeEffect(800, 600, true).Apply(src, &m)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 450), out.Bounds())
	assert.Equal(t, image.Pt(800, 450), m.TransformPoint(image.Pt(1600, 900)))
}

func TestResizeEffectAspectProperty(t *testing.T) {
	sizes := []int{1, 3, 17, 99, 640, 1001}
	for _, sw := range sizes {
		for _, sh := range sizes {
			for _, rw := range []int{1, 5, 100, 333} {
				for _, rh := range []int{1, 7, 100, 250} {
					scale := math.Min(float64(rw)/float64(sw), float64(rh)/float64(sh))
					if float64(min(sw, sh))*scale < 1 {
						// clamped to one pixel, the ratio is meaningless
						continue
					}
					e := NewResizeEffect(rw, rh, true)
					ow, oh, err := e.OutputSize(sw, sh)
					require.NoError(t, err)
					assert.LessOrEqual(t, ow, rw, "src %dx%d req %dx%d", sw, sh, rw, rh)
					assert.LessOrEqual(t, oh, rh, "src %dx%d req %dx%d", sw, sh, rw, rh)
					assert.GreaterOrEqual(t, ow, 1)
					assert.GreaterOrEqual(t, oh, 1)
					// Rounding may move either side by up to half a pixel.
					want := float64(sw) / float64(sh)
					lo := (float64(ow) - 1) / (float64(oh) + 1)
					hi := (float64(ow) + 1) / math.Max(float64(oh)-1, 0.5)
					assert.True(t, want >= lo && want <= hi, "ratio %v outside [%v, %v] for %dx%d", want, lo, hi, ow, oh)
				}
			}
		}
	}
}

func TestResizeEffectExactSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 37, 11))
	for _, sz := range []image.Point{{1, 1}, {80, 20}, {5, 400}} {
		out, err := NewResizeEffect(sz.X, sz.Y, false).Apply(src, nil)
		require.NoError(t, err)
		assert.Equal(t, sz, out.Bounds().Size())
	}
}

func TestResizeEffectInvalidParameters(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for _, e := range []*ResizeEffect{
		NewResizeEffect(0, 10, false),
		NewResizeEffect(10, 0, true),
		NewResizeEffect(-5, 10, true),
	} {
		out, err := e.Apply(src, nil)
		assert.ErrorIs(t, err, ErrInvalidEffectParameters)
		assert.Nil(t, out)
	}
	out, err := NewResizeEffect(10, 10, true).Apply(image.NewRGBA(image.Rect(0, 0, 0, 10)), nil)
	assert.ErrorIs(t, err, ErrInvalidEffectParameters)
	assert.Nil(t, out)
}

func TestResizeEffectResetKeepsParameters(t *testing.T) {
	e := NewResizeEffect(320, 240, true)
	e.Reset()
	assert.Equal(t, &ResizeEffect{Width: 320, Height: 240, MaintainAspectRatio: true}, e)
	assert.Equal(t, "editor_resize", e.Name())
}
