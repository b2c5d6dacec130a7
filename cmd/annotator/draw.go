package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/drawing"
)

// drawCmd appends one annotation to a scene file.
type drawCmd struct {
	*root
	fs        *flag.FlagSet
	scene     string
	image     string
	style     styleFlags
	pixelSize int
	stepSize  int
	kind      drawing.Kind
	coords    []int
	number    int
	text      string
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	cfg := configOf(r)
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r.subcommand("draw"), fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.scene, "scene", "", "scene file to append to (created when missing)")
	fs.StringVar(&d.image, "image", "", "image whose size is used for a new scene")
	fs.IntVar(&d.pixelSize, "pixel-size", drawing.DefaultPixelSize, "block size of obfuscate areas")
	fs.IntVar(&d.stepSize, "step-size", cfg.Editor.StepSize, "diameter of step labels in pixels")
	d.style.register(fs, cfg)

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	if d.scene == "" {
		return nil, fmt.Errorf("scene file is required")
	}
	d.kind, err = drawing.ParseKind(strings.ToLower(positionals[0]))
	if err != nil {
		return nil, err
	}
	remaining := positionals[1:]
	switch d.kind {
	case drawing.KindText:
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.coords, err = expectInts(remaining[:2], 2, string(d.kind))
		if err != nil {
			return nil, err
		}
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	case drawing.KindStepLabel:
		if len(remaining) != 2 && len(remaining) != 3 {
			return nil, fmt.Errorf("step requires x y and an optional number")
		}
		vals, err := expectInts(remaining, len(remaining), string(d.kind))
		if err != nil {
			return nil, err
		}
		d.coords = vals[:2]
		if len(vals) == 3 {
			d.number = vals[2]
		}
	default:
		d.coords, err = expectInts(remaining, 4, string(d.kind))
		if err != nil {
			return nil, err
		}
	}
	if _, err := d.style.style(); err != nil {
		return nil, err
	}
	if d.pixelSize < 1 {
		d.pixelSize = drawing.DefaultPixelSize
	}
	if d.stepSize < 1 {
		d.stepSize = 24
	}
	return d, nil
}

// loadScene reads the target scene or starts a new one sized to -image.
func (d *drawCmd) loadScene() (*drawing.Scene, error) {
	sc, err := drawing.LoadSceneFile(d.scene)
	if err == nil {
		if sc.Width <= 0 || sc.Height <= 0 {
			return nil, fmt.Errorf("scene %s has no size", d.scene)
		}
		return sc, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if d.image == "" {
		return nil, fmt.Errorf("scene %s does not exist; pass -image to create it", d.scene)
	}
	f, err := os.Open(d.image)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.image, err)
	}
	return &drawing.Scene{Width: cfg.Width, Height: cfg.Height}, nil
}

func (d *drawCmd) Run() error {
	sc, err := d.loadScene()
	if err != nil {
		return err
	}
	s := drawing.NewSurface(image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height)), drawing.WithTheme(themeOf(d.root)))
	if err := s.LoadScene(sc); err != nil {
		return err
	}
	st, err := d.style.style()
	if err != nil {
		return err
	}
	c := d.container(s, sc, st)
	s.Add(c)
	if err := drawing.SaveSceneFile(d.scene, s.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "added %s to %s\n", d.kind, d.scene)
	return nil
}

func (d *drawCmd) container(s *drawing.Surface, sc *drawing.Scene, st drawing.Style) drawing.Container {
	switch d.kind {
	case drawing.KindText:
		return drawing.NewTextContainer(s, drawing.Rect{Left: d.coords[0], Top: d.coords[1]}, st, d.text)
	case drawing.KindStepLabel:
		n := d.number
		if n == 0 {
			n = nextStepNumber(sc)
		}
		half := d.stepSize / 2
		r := drawing.Rect{Left: d.coords[0] - half, Top: d.coords[1] - half, Width: d.stepSize, Height: d.stepSize}
		return drawing.NewStepLabelContainer(s, r, st, n)
	}
	x0, y0, x1, y1 := d.coords[0], d.coords[1], d.coords[2], d.coords[3]
	between := drawing.Rect{Left: x0, Top: y0, Width: x1 - x0, Height: y1 - y0}
	r := between.Normalize()
	switch d.kind {
	case drawing.KindLine:
		return drawing.NewLineContainer(s, between, st)
	case drawing.KindArrow:
		return drawing.NewArrowContainer(s, between, st)
	case drawing.KindEllipse:
		return drawing.NewEllipseContainer(s, r, st)
	case drawing.KindHighlight:
		if !st.FillColor.Visible() {
			st.FillColor = drawing.Color(s.Theme().Highlight)
		}
		return drawing.NewHighlightContainer(s, r, st)
	case drawing.KindObfuscate:
		return drawing.NewObfuscateContainer(s, r, d.pixelSize)
	case drawing.KindCrop:
		return drawing.NewCropContainer(s, r)
	}
	return drawing.NewRectangleContainer(s, r, st)
}

func nextStepNumber(sc *drawing.Scene) int {
	n := 0
	for _, rec := range sc.Containers {
		if rec.Kind == drawing.KindStepLabel && rec.Number > n {
			n = rec.Number
		}
	}
	return n + 1
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", shape, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

var drawFlagNames = map[string]struct{}{
	"scene":      {},
	"image":      {},
	"color":      {},
	"fill":       {},
	"width":      {},
	"text-size":  {},
	"pixel-size": {},
	"step-size":  {},
}

var drawBoolFlags = map[string]struct{}{}

// splitDrawArgs separates flags from positionals so that negative
// coordinates are not mistaken for flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
