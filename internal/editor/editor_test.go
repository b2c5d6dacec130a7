package editor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/effects"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewSurfaceRequiresImage(t *testing.T) {
	if _, err := New().NewSurface(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestNewSurfaceAppliesConfirmedCrop(t *testing.T) {
	e := New(WithImage(solid(120, 80, color.RGBA{255, 255, 255, 255})))
	s, err := e.NewSurface()
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if err := s.SetTool(drawing.KindCrop); err != nil {
		t.Fatalf("SetTool: %v", err)
	}
	s.HandleMouse(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	s.HandleMouse(mouse.Event{X: 50, Y: 40, Direction: mouse.DirNone})
	s.HandleMouse(mouse.Event{X: 50, Y: 40, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if !s.HandleKey(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress}) {
		t.Fatalf("enter was not consumed")
	}
	if got := s.Bounds(); got != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds after crop = %v", got)
	}
	if len(s.Containers()) != 0 {
		t.Fatalf("crop overlay still present")
	}
}

func TestNewSurfaceNotifiesRepaint(t *testing.T) {
	e := New(WithImage(solid(20, 20, color.RGBA{A: 255})))
	s, err := e.NewSurface()
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	s.Invalidate()
	s.Invalidate()
	select {
	case <-e.updateCh:
	default:
		t.Fatalf("expected a pending repaint")
	}
	select {
	case <-e.updateCh:
		t.Fatalf("repaints were not coalesced")
	default:
	}
}

func TestNewSurfaceLoadsScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")

	e := New(WithImage(solid(50, 50, color.RGBA{A: 255})), WithScene(path))
	s, err := e.NewSurface()
	if err != nil {
		t.Fatalf("missing scene should be ignored: %v", err)
	}
	s.Add(drawing.NewRectangleContainer(s, drawing.Rect{Left: 5, Top: 5, Width: 10, Height: 10}, drawing.DefaultStyle()))
	if err := drawing.SaveSceneFile(path, s.Snapshot()); err != nil {
		t.Fatalf("SaveSceneFile: %v", err)
	}

	s2, err := e.NewSurface()
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if n := len(s2.Containers()); n != 1 {
		t.Fatalf("loaded %d containers, want 1", n)
	}

	if err := os.WriteFile(path, []byte("containers:\n  - kind: bogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := e.NewSurface(); !errors.Is(err, drawing.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	closed := 0
	e := New(WithOnClose(func() { closed++ }), WithTheme(nil), WithStepSize(30), WithHistoryDepth(5))
	if e.Theme == nil || e.Theme.Name != "Default" {
		t.Fatalf("nil theme replaced the default")
	}
	if e.StepSize != 30 || e.HistoryDepth != 5 {
		t.Fatalf("options not applied: %+v", e)
	}
	e.notifyClose()
	e.notifyClose()
	if closed != 1 {
		t.Fatalf("onClose called %d times", closed)
	}
}

func TestExportAppliesPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "shot.png")
	src := solid(40, 20, color.RGBA{200, 10, 10, 255})
	p := effects.Pipeline{effects.NewResizeEffect(20, 20, true)}
	img, err := Export(context.Background(), src, p, path)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if img.Bounds().Size() != image.Pt(20, 10) {
		t.Fatalf("exported size = %v", img.Bounds().Size())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("written bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestExportSurfaceSkipsPendingCrop(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	s := drawing.NewSurface(solid(30, 30, white))
	s.Add(drawing.NewCropContainer(s, drawing.Rect{Left: 10, Top: 10, Width: 10, Height: 10}))
	path := filepath.Join(t.TempDir(), "shot.png")
	img, err := ExportSurface(context.Background(), s, nil, path)
	if err != nil {
		t.Fatalf("ExportSurface: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != white {
		t.Fatalf("crop mask leaked into the export: %v", got)
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "shot.png")
	_, err := Export(ctx, solid(4, 4, color.RGBA{A: 255}), effects.Pipeline{effects.InvertEffect{}}, path)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("cancelled export wrote a file")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	if got := DefaultOutputPath("", now); got != "annotation-20240305-140709.png" {
		t.Fatalf("DefaultOutputPath = %q", got)
	}
	if got := DefaultOutputPath("/tmp/shots", now); got != filepath.Join("/tmp/shots", "annotation-20240305-140709.png") {
		t.Fatalf("DefaultOutputPath = %q", got)
	}
}
