package effects

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePipeline(t *testing.T) {
	p, err := ParsePipeline("resize:800x600:aspect, border:4:#FF0000, grayscale, rotate:90, pad:1/2/3/4, shadow:8, adjust:gamma=1.5:brightness=0.1, monochrome:100")
	require.NoError(t, err)
	require.Len(t, p, 8)
	assert.Equal(t, NewResizeEffect(800, 600, true), p[0])
	assert.Equal(t, &BorderEffect{Width: 4, Color: color.RGBA{R: 255, A: 255}}, p[1])
	assert.Equal(t, GrayscaleEffect{}, p[2])
	assert.Equal(t, &RotateEffect{Angle: 90}, p[3])
	assert.Equal(t, &ResizeCanvasEffect{Left: 1, Top: 2, Right: 3, Bottom: 4}, p[4])
	assert.Equal(t, &DropShadowEffect{Radius: 8, Offset: image.Pt(16, 16), Opacity: 0.55}, p[5])
	assert.Equal(t, &AdjustEffect{Brightness: 0.1, Gamma: 1.5}, p[6])
	assert.Equal(t, &MonochromeEffect{Threshold: 100}, p[7])
}

func TestParseEffectErrors(t *testing.T) {
	for _, spec := range []string{"", "blur", "resize", "resize:80", "resize:axb", "rotate:x", "pad:1/2", "adjust:gamma", "border:1:red"} {
		_, err := ParseEffect(spec)
		assert.Error(t, err, spec)
	}
}

func TestParsePipelineEmpty(t *testing.T) {
	p, err := ParsePipeline(" , ")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestSpecExamplesParse(t *testing.T) {
	for _, s := range Specs {
		_, err := ParseEffect(s.Example)
		assert.NoError(t, err, s.Example)
	}
}
