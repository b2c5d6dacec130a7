// Package effects implements the image transforms applied when an annotated
// image is exported. Effects are composed into a Pipeline which threads a
// cumulative Matrix through every step so overlay coordinates defined against
// the original image can be mapped onto the transformed one.
package effects

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrInvalidEffectParameters is returned when an effect is configured with
// values it cannot honour or is given an empty source image.
var ErrInvalidEffectParameters = errors.New("invalid effect parameters")

// Effect is a named, parameterised image transform. Apply must not retain
// state between calls beyond the effect's own parameters.
type Effect interface {
	Name() string
	// Reset restores parameters that have a meaningful default.
	Reset()
	// Apply returns a new image and may append to m the geometric transform
	// it performed.
	Apply(src image.Image, m *Matrix) (*image.RGBA, error)
}

// Result is the output of a pipeline run.
type Result struct {
	Image  *image.RGBA
	Matrix Matrix
}

// Pipeline is an ordered list of effects.
type Pipeline []Effect

// Names lists the effect names in order.
func (p Pipeline) Names() []string {
	out := make([]string, 0, len(p))
	for _, e := range p {
		out = append(out, e.Name())
	}
	return out
}

// Apply runs every effect in order on a private copy of src.
func (p Pipeline) Apply(src image.Image) (Result, error) {
	return p.ApplyContext(context.Background(), src)
}

// ApplyContext is Apply with cancellation checked between effects. The source
// image is copied up front so the caller may keep mutating its own image on
// another goroutine.
func (p Pipeline) ApplyContext(ctx context.Context, src image.Image) (Result, error) {
	if err := checkSource(src); err != nil {
		return Result{}, err
	}
	img := toRGBA(src)
	m := Identity()
	for _, e := range p {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		out, err := e.Apply(img, &m)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", e.Name(), err)
		}
		img = out
	}
	return Result{Image: img, Matrix: m}, nil
}

// Reset resets every effect in the pipeline.
func (p Pipeline) Reset() {
	for _, e := range p {
		e.Reset()
	}
}

func checkSource(src image.Image) error {
	if src == nil {
		return fmt.Errorf("%w: nil source image", ErrInvalidEffectParameters)
	}
	if b := src.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: source image %dx%d has no area", ErrInvalidEffectParameters, b.Dx(), b.Dy())
	}
	return nil
}

// toRGBA copies src into a new RGBA image anchored at the origin.
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}
