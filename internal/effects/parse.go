package effects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/theme"
)

// SpecHelp describes one effect spec form.
type SpecHelp struct {
	Example     string
	Description string
}

// Specs lists the accepted effect spec forms with an example of each.
var Specs = []SpecHelp{
	{"resize:800x600:aspect", "scale to fit WIDTHxHEIGHT, keeping the aspect ratio with :aspect"},
	{"grayscale", "convert to grayscale"},
	{"invert", "invert colors"},
	{"monochrome:127", "black and white at the given threshold"},
	{"adjust:brightness=0.1:contrast=0.2:gamma=1.2", "brightness and contrast in [-1,1], gamma > 0"},
	{"rotate:90", "rotate by a multiple of 90 degrees"},
	{"border:4:#000000", "add a solid border"},
	{"pad:10/10/10/10:#FFFFFF00", "grow the canvas by LEFT/TOP/RIGHT/BOTTOM"},
	{"shadow:8", "drop shadow with the given blur radius"},
}

// ParsePipeline parses a comma separated list of effect specs, for example
// "resize:800x600:aspect,border:4,drop_shadow".
func ParsePipeline(spec string) (Pipeline, error) {
	var p Pipeline
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		e, err := ParseEffect(part)
		if err != nil {
			return nil, err
		}
		p = append(p, e)
	}
	return p, nil
}

// ParseEffect parses one effect spec of the form name[:arg[:arg...]].
func ParseEffect(spec string) (Effect, error) {
	fields := strings.Split(strings.TrimSpace(spec), ":")
	name := strings.ToLower(fields[0])
	args := fields[1:]
	switch name {
	case "resize", "editor_resize":
		if len(args) < 1 {
			return nil, fmt.Errorf("resize requires WIDTHxHEIGHT")
		}
		w, h, err := parseSize(args[0])
		if err != nil {
			return nil, err
		}
		aspect := len(args) > 1 && strings.EqualFold(args[1], "aspect")
		return NewResizeEffect(w, h, aspect), nil
	case "grayscale", "greyscale":
		return GrayscaleEffect{}, nil
	case "invert":
		return InvertEffect{}, nil
	case "monochrome":
		e := NewMonochromeEffect()
		if len(args) > 0 {
			v, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid monochrome threshold %q", args[0])
			}
			e.Threshold = uint8(v)
		}
		return e, nil
	case "adjust":
		e := NewAdjustEffect()
		for _, kv := range args {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("adjust expects key=value, got %q", kv)
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid adjust value %q", v)
			}
			switch strings.ToLower(k) {
			case "brightness":
				e.Brightness = f
			case "contrast":
				e.Contrast = f
			case "gamma":
				e.Gamma = f
			default:
				return nil, fmt.Errorf("unknown adjust parameter %q", k)
			}
		}
		return e, nil
	case "rotate":
		if len(args) < 1 {
			return nil, fmt.Errorf("rotate requires an angle")
		}
		angle, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid rotate angle %q", args[0])
		}
		return &RotateEffect{Angle: angle}, nil
	case "border":
		e := NewBorderEffect()
		if len(args) > 0 {
			w, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid border width %q", args[0])
			}
			e.Width = w
		}
		if len(args) > 1 {
			c, err := theme.ParseColor(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid border color: %w", err)
			}
			e.Color = c
		}
		return e, nil
	case "pad", "resize_canvas":
		if len(args) < 1 {
			return nil, fmt.Errorf("pad requires LEFT/TOP/RIGHT/BOTTOM")
		}
		parts := strings.Split(args[0], "/")
		if len(parts) != 4 {
			return nil, fmt.Errorf("pad requires four values, got %q", args[0])
		}
		var v [4]int
		for i, s := range parts {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("invalid padding %q", s)
			}
			v[i] = n
		}
		e := &ResizeCanvasEffect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
		if len(args) > 1 {
			c, err := theme.ParseColor(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid pad color: %w", err)
			}
			e.Background = c
		}
		return e, nil
	case "shadow", "drop_shadow":
		e := NewDropShadowEffect()
		if len(args) > 0 {
			r, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid shadow radius %q", args[0])
			}
			e.Radius = r
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown effect %q", name)
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q must be WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height %q", hs)
	}
	return w, h, nil
}
