package editor

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/mobile/event/mouse"
)

func TestFitZoom(t *testing.T) {
	canvas := image.Rect(0, 0, 200, 100)
	tests := []struct {
		name       string
		winW, winH int
		want       float64
	}{
		{"exact", 200 + 60, 100 + headerHeight + bottomHeight, 1},
		{"wide window limited by height", 1000, 50 + headerHeight + bottomHeight, 0.5},
		{"tall window limited by width", 460, 2000, 2},
		{"degenerate window", 10, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitZoom(canvas, 60, tt.winW, tt.winH); got != tt.want {
				t.Fatalf("fitZoom = %v, want %v", got, tt.want)
			}
		})
	}
	if got := fitZoom(image.Rect(0, 0, 100000, 100000), 60, 200, 200); got != minZoom {
		t.Fatalf("fitZoom not clamped: %v", got)
	}
}

func TestImageRectAnchorsBelowHeader(t *testing.T) {
	v := view{zoom: 2, offset: image.Pt(-5, 3)}
	got := v.imageRect(image.Rect(0, 0, 40, 30), 50)
	want := image.Rect(40, headerHeight+6, 120, headerHeight+66)
	if got != want {
		t.Fatalf("imageRect = %v, want %v", got, want)
	}
}

func TestToCanvasInvertsImageRect(t *testing.T) {
	v := view{zoom: 0.5}
	dst := v.imageRect(image.Rect(0, 0, 400, 300), 50)
	ev := mouse.Event{X: float32(dst.Min.X + 10), Y: float32(dst.Min.Y + 20), Button: mouse.ButtonLeft, Direction: mouse.DirPress}
	got := v.toCanvas(ev, dst)
	if got.X != 20 || got.Y != 40 {
		t.Fatalf("toCanvas = (%v,%v), want (20,40)", got.X, got.Y)
	}
	if got.Button != mouse.ButtonLeft || got.Direction != mouse.DirPress {
		t.Fatalf("toCanvas dropped event fields: %+v", got)
	}
}

func TestCheckerboard(t *testing.T) {
	light := color.RGBA{220, 220, 220, 255}
	dark := color.RGBA{192, 192, 192, 255}
	b := &backdrop{light: light, dark: dark}
	dst := image.NewRGBA(image.Rect(0, 0, 32, 16))
	b.draw(dst)
	if dst.RGBAAt(0, 0) != light || dst.RGBAAt(8, 0) != dark || dst.RGBAAt(8, 8) != light {
		t.Fatalf("unexpected checker pattern")
	}
	cached := b.cache
	b.draw(dst)
	if b.cache != cached {
		t.Fatalf("backdrop cache rebuilt for the same size")
	}
}
