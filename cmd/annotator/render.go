package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/effects"
)

// renderCmd draws a scene onto an image and exports it without a window.
type renderCmd struct {
	*root
	fs        *flag.FlagSet
	file      string
	scene     string
	output    string
	effects   string
	applyCrop bool
	timeout   time.Duration
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	cfg := configOf(r)
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r.subcommand("render"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "input image file")
	fs.StringVar(&c.scene, "scene", "", "scene file with the annotations to draw")
	fs.StringVar(&c.output, "output", cfg.Export.Output, "output PNG path (default: timestamped name in save_dir)")
	fs.StringVar(&c.effects, "effects", cfg.Export.Effects, "effects applied after drawing")
	fs.BoolVar(&c.applyCrop, "apply-crop", true, "apply pending crops from the scene before exporting")
	fs.DurationVar(&c.timeout, "timeout", 0, "abort when rendering takes longer than this")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	if c.output == "" {
		c.output = editor.DefaultOutputPath(cfg.SaveDir, time.Now())
	}
	return c, nil
}

// surface loads the image and scene into a surface, applying pending crops
// when requested.
func (c *renderCmd) surface() (*drawing.Surface, error) {
	img, err := loadImage(c.file)
	if err != nil {
		return nil, err
	}
	if c.scene != "" {
		if _, err := os.Stat(c.scene); err != nil {
			return nil, err
		}
	}
	s, err := editor.New(
		editor.WithImage(img),
		editor.WithScene(c.scene),
		editor.WithTheme(themeOf(c.root)),
	).NewSurface()
	if err != nil {
		return nil, err
	}
	if !c.applyCrop {
		return s, nil
	}
	for {
		_, err := s.Confirm()
		if errors.Is(err, drawing.ErrNothingToConfirm) {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (c *renderCmd) Run() error {
	p, err := effects.ParsePipeline(c.effects)
	if err != nil {
		return err
	}
	s, err := c.surface()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if _, err := editor.ExportSurface(ctx, s, p, c.output); err != nil {
		return fmt.Errorf("render %s: %w", c.file, err)
	}
	saved := c.output
	if abs, err := filepath.Abs(c.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	return nil
}
