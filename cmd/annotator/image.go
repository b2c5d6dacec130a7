package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/annotator/internal/config"
	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/theme"
)

// loadImage decodes a PNG or JPEG file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if cerr := f.Close(); cerr != nil {
		log.Printf("error closing %q: %v", f.Name(), cerr)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// parseColor accepts CSS colour names, palette names and #RRGGBB[AA] hex.
func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if spec == "none" || spec == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	for _, entry := range editor.DefaultPalette() {
		if strings.EqualFold(entry.Name, spec) {
			return color.RGBA(entry.Color), nil
		}
	}
	if strings.HasPrefix(spec, "#") {
		c, err := theme.ParseColor(spec)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// configOf returns the loaded configuration, or defaults when r is nil.
func configOf(r *root) *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func themeOf(r *root) *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

// styleFlags are the style options shared by commands that create annotations.
type styleFlags struct {
	colorSpec string
	fillSpec  string
	width     int
	textSize  float64
}

func (s *styleFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&s.colorSpec, "color", theme.FormatColor(cfg.Editor.Color), "line and text color name or hex value")
	fs.StringVar(&s.fillSpec, "fill", "none", "fill color name or hex value")
	fs.IntVar(&s.width, "width", cfg.Editor.Width, "stroke width in pixels")
	fs.Float64Var(&s.textSize, "text-size", cfg.Editor.TextSize, "text size in points")
}

func (s *styleFlags) style() (drawing.Style, error) {
	line, err := parseColor(s.colorSpec)
	if err != nil {
		return drawing.Style{}, err
	}
	fill, err := parseColor(s.fillSpec)
	if err != nil {
		return drawing.Style{}, err
	}
	st := drawing.Style{
		LineColor:     drawing.Color(line),
		FillColor:     drawing.Color(fill),
		LineThickness: s.width,
		FontSize:      s.textSize,
	}
	if st.LineThickness < 1 {
		st.LineThickness = 1
	}
	if st.FontSize <= 0 {
		st.FontSize = drawing.DefaultFontSize
	}
	return st, nil
}
