package editor

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/effects"
)

// Export runs p over img and writes the result to path as PNG.
func Export(ctx context.Context, img image.Image, p effects.Pipeline, path string) (image.Image, error) {
	res, err := p.ApplyContext(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("apply effects: %w", err)
	}
	if err := WritePNG(path, res.Image); err != nil {
		return nil, err
	}
	return res.Image, nil
}

// ExportSurface renders s without editor chrome or pending crops and exports
// it like Export.
func ExportSurface(ctx context.Context, s *drawing.Surface, p effects.Pipeline, path string) (image.Image, error) {
	return Export(ctx, s.RenderImage(drawing.RenderExport), p, path)
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			return fmt.Errorf("encode png: %v (closing file: %w)", err, cerr)
		}
		return fmt.Errorf("encode png: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// DefaultOutputPath returns a timestamped file name inside dir.
func DefaultOutputPath(dir string, now time.Time) string {
	name := fmt.Sprintf("annotation-%s.png", now.Format("20060102-150405"))
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
