package effects

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// GrayscaleEffect removes colour information.
type GrayscaleEffect struct{}

func (GrayscaleEffect) Name() string { return "grayscale" }
func (GrayscaleEffect) Reset()       {}

func (GrayscaleEffect) Apply(src image.Image, _ *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return toRGBA(effect.Grayscale(src)), nil
}

// InvertEffect inverts every colour channel.
type InvertEffect struct{}

func (InvertEffect) Name() string { return "invert" }
func (InvertEffect) Reset()       {}

func (InvertEffect) Apply(src image.Image, _ *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return toRGBA(effect.Invert(src)), nil
}

// AdjustEffect changes brightness, contrast and gamma. Brightness and
// Contrast are relative changes in [-1, 1]; Gamma is a positive exponent.
type AdjustEffect struct {
	Brightness float64
	Contrast   float64
	Gamma      float64
}

// NewAdjustEffect returns an AdjustEffect with neutral parameters.
func NewAdjustEffect() *AdjustEffect {
	e := &AdjustEffect{}
	e.Reset()
	return e
}

func (e *AdjustEffect) Name() string { return "adjust" }

func (e *AdjustEffect) Reset() {
	e.Brightness = 0
	e.Contrast = 0
	e.Gamma = 1
}

func (e *AdjustEffect) Apply(src image.Image, _ *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if e.Gamma <= 0 {
		return nil, fmt.Errorf("%w: gamma %v must be positive", ErrInvalidEffectParameters, e.Gamma)
	}
	if e.Brightness < -1 || e.Brightness > 1 || e.Contrast < -1 || e.Contrast > 1 {
		return nil, fmt.Errorf("%w: brightness and contrast must be within [-1, 1]", ErrInvalidEffectParameters)
	}
	out := toRGBA(src)
	if e.Brightness != 0 {
		out = adjust.Brightness(out, e.Brightness)
	}
	if e.Contrast != 0 {
		out = adjust.Contrast(out, e.Contrast)
	}
	if e.Gamma != 1 {
		out = adjust.Gamma(out, e.Gamma)
	}
	return out, nil
}

// MonochromeEffect turns the image into pure black and white.
type MonochromeEffect struct {
	Threshold uint8
}

const defaultMonochromeThreshold = 127

// NewMonochromeEffect returns a MonochromeEffect with the default threshold.
func NewMonochromeEffect() *MonochromeEffect {
	return &MonochromeEffect{Threshold: defaultMonochromeThreshold}
}

func (e *MonochromeEffect) Name() string { return "monochrome" }
func (e *MonochromeEffect) Reset()       { e.Threshold = defaultMonochromeThreshold }

func (e *MonochromeEffect) Apply(src image.Image, _ *Matrix) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return toRGBA(segment.Threshold(src, e.Threshold)), nil
}
