package drawing

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropBandsTileCanvas(t *testing.T) {
	canvases := []image.Point{{1, 1}, {7, 5}, {20, 13}}
	for _, size := range canvases {
		canvas := image.Rectangle{Max: size}
		var sels []image.Rectangle
		for x0 := -2; x0 <= size.X+1; x0 += 3 {
			for y0 := -2; y0 <= size.Y+1; y0 += 2 {
				for _, d := range []image.Point{{1, 1}, {4, 2}, {size.X + 4, 3}, {2, size.Y + 4}} {
					sels = append(sels, image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x0+d.X, y0+d.Y)})
				}
			}
		}
		for _, sel := range sels {
			cover := make([]int, size.X*size.Y)
			mark := func(r image.Rectangle) {
				r = r.Intersect(canvas)
				for y := r.Min.Y; y < r.Max.Y; y++ {
					for x := r.Min.X; x < r.Max.X; x++ {
						cover[y*size.X+x]++
					}
				}
			}
			bands := CropBands(canvas, sel)
			for _, b := range bands {
				assert.True(t, b.Empty() || b.In(canvas), "band %v escapes canvas %v", b, canvas)
				mark(b)
			}
			mark(sel)
			for i, n := range cover {
				if !assert.Equal(t, 1, n, "canvas %v sel %v pixel (%d,%d)", canvas, sel, i%size.X, i/size.X) {
					return
				}
			}
		}
	}
}

func TestCropDrawingBoundsIsCanvas(t *testing.T) {
	s := NewSurface(whiteImage(64, 48))
	for _, r := range []Rect{{10, 10, 5, 5}, {60, 40, -70, -50}, {-10, -10, 2, 2}, {0, 0, 0, 0}} {
		c := NewCropContainer(s, r)
		assert.Equal(t, image.Rect(0, 0, 64, 48), c.DrawingBounds())
		assert.False(t, c.HasContextMenu())
		assert.True(t, c.Flags().Has(FlagConfirmable))
	}
}

func TestCropInvalidateRepaintsCanvas(t *testing.T) {
	var got []image.Rectangle
	s := NewSurface(whiteImage(64, 48), WithInvalidateListener(func(r image.Rectangle) { got = append(got, r) }))
	c := NewCropContainer(s, Rect{10, 10, 5, 5})
	c.Invalidate()
	require.Len(t, got, 1)
	assert.Equal(t, s.Bounds(), got[0])
}

func TestDetachedCropIsInert(t *testing.T) {
	s := NewSurface(whiteImage(16, 16))
	c := NewCropContainer(s, Rect{2, 2, 4, 4})
	s.Add(c)
	s.TakeDirty()
	require.True(t, s.Remove(c))
	s.TakeDirty()

	assert.Nil(t, c.Parent())
	assert.Empty(t, c.Adorners())
	assert.True(t, c.DrawingBounds().Empty())
	c.Invalidate()
	assert.True(t, s.TakeDirty().Empty())

	dst := whiteImage(16, 16)
	c.Draw(dst, RenderEdit)
	assert.Equal(t, whiteImage(16, 16).Pix, dst.Pix)
}

func TestCropInvertedDragEndToEnd(t *testing.T) {
	s := NewSurface(whiteImage(1920, 1080))
	require.NoError(t, s.SetTool(KindCrop))
	press(s, 100, 100)
	drag(s, 70, 80)
	release(s, 50, 50)

	cs := s.Containers()
	require.Len(t, cs, 1)
	crop, ok := cs[0].(*CropContainer)
	require.True(t, ok)
	assert.Equal(t, Rect{50, 50, 50, 50}, crop.Bounds().Normalize())
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), crop.DrawingBounds())

	bands := crop.Bands()
	assert.Equal(t, image.Rect(0, 0, 1920, 50), bands[0], "top")
	assert.Equal(t, image.Rect(0, 50, 50, 100), bands[1], "left")
	assert.Equal(t, image.Rect(100, 50, 1920, 100), bands[2], "right")
	assert.Equal(t, image.Rect(0, 100, 1920, 1080), bands[3], "bottom")

	out := s.RenderImage(RenderEdit)
	for _, p := range []image.Point{{10, 10}, {1900, 40}, {20, 75}, {1500, 75}, {75, 500}, {1919, 1079}} {
		assert.NotEqual(t, white, out.RGBAAt(p.X, p.Y), "expected dimming at %v", p)
	}
	for _, p := range []image.Point{{60, 60}, {75, 65}, {90, 90}} {
		assert.Equal(t, white, out.RGBAAt(p.X, p.Y), "selection must stay clear at %v", p)
	}
	// The dashed border runs one pixel outside the selection, clear of the
	// adorner squares.
	th := s.Theme()
	assert.Equal(t, th.SelectionDark, out.RGBAAt(61, 49))
	assert.Equal(t, th.SelectionDark, out.RGBAAt(100, 61))
	assert.Equal(t, white, out.RGBAAt(61, 50))

	exported := s.RenderImage(RenderExport)
	assert.Equal(t, whiteImage(1920, 1080).Pix, exported.Pix)
}

func TestCropAdornerDragKeepsRawGeometry(t *testing.T) {
	s := NewSurface(whiteImage(1920, 1080))
	c := NewCropContainer(s, Rect{Left: 100, Top: 100})
	s.Add(c)
	a := adornerFor(c, RoleBottomRight)
	require.NotNil(t, a)
	require.NoError(t, a.DragStart(image.Pt(100, 100)))
	require.NoError(t, a.DragMove(image.Pt(50, 50)))
	assert.Equal(t, Rect{100, 100, -50, -50}, c.Bounds())
	assert.Equal(t, Rect{50, 50, 50, 50}, c.Bounds().Normalize())
}
