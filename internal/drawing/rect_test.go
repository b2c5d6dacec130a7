package drawing

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectNormalize(t *testing.T) {
	for _, r := range []Rect{
		{10, 20, 30, 40},
		{100, 100, -50, -50},
		{5, 5, -10, 3},
		{0, 0, 7, -7},
		{3, 4, 0, 0},
	} {
		n := r.Normalize()
		assert.GreaterOrEqual(t, n.Width, 0, "%+v", r)
		assert.GreaterOrEqual(t, n.Height, 0, "%+v", r)
		assert.Equal(t, n, n.Normalize(), "normalize must be idempotent for %+v", r)
		assert.Equal(t, abs(r.Width)*abs(r.Height), n.Width*n.Height)
		// Both corners of the raw rect are corners of the normalized one.
		box := image.Rectangle{Min: r.Start(), Max: r.End()}.Canon()
		assert.Equal(t, box, n.Image())
	}
	assert.Equal(t, Rect{50, 50, 50, 50}, Rect{100, 100, -50, -50}.Normalize())
}

func TestRectFrom(t *testing.T) {
	r := RectFrom(image.Rect(3, 4, 10, 20))
	assert.Equal(t, Rect{3, 4, 7, 16}, r)
	assert.Equal(t, image.Rect(3, 4, 10, 20), r.Image())
	assert.True(t, Rect{1, 1, 0, 5}.Empty())
}
