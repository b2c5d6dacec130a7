package drawing

import (
	"image/color"

	"github.com/example/annotator/internal/theme"
	"gopkg.in/yaml.v3"
)

// Color is a straight-alpha colour that serialises as #RRGGBB[AA].
type Color color.RGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return color.NRGBA(c).RGBA() }

// Visible reports whether c has any opacity.
func (c Color) Visible() bool { return c.A > 0 }

func (c Color) String() string { return theme.FormatColor(color.RGBA(c)) }

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) { return c.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := theme.ParseColor(s)
	if err != nil {
		return err
	}
	*c = Color(v)
	return nil
}

// Style carries the persisted appearance of a container.
type Style struct {
	LineColor     Color   `yaml:"line_color"`
	FillColor     Color   `yaml:"fill_color"`
	LineThickness int     `yaml:"line_thickness"`
	FontSize      float64 `yaml:"font_size,omitempty"`
}

// DefaultStyle is used when a surface is built without WithStyle.
func DefaultStyle() Style {
	return Style{
		LineColor:     Color{255, 0, 0, 255},
		LineThickness: 2,
		FontSize:      16,
	}
}
