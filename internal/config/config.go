package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/effects"
	"github.com/example/annotator/internal/theme"
)

// Editor holds the defaults for new annotations.
type Editor struct {
	Color    color.RGBA
	Width    int
	TextSize float64
	StepSize int
	History  int
}

// Export holds the settings used when writing the annotated image.
type Export struct {
	// Effects is a comma separated effect pipeline, for example
	// "resize:1280x720:aspect,shadow".
	Effects string
	Output  string
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Editor  Editor
	Export  Export
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Editor: Editor{
			Color:    color.RGBA{255, 0, 0, 255},
			Width:    2,
			TextSize: 16,
			StepSize: 24,
			History:  50,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Pipeline parses the configured export effects.
func (c *Config) Pipeline() (effects.Pipeline, error) {
	return effects.ParsePipeline(c.Export.Effects)
}

// LookupTheme returns a theme defined in the configuration.
func (c *Config) LookupTheme(name string) (*theme.Theme, bool) {
	t, ok := c.Themes[name]
	return t, ok
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Editor.Color))
	fmt.Fprintf(&sb, "width = %d\n", c.Editor.Width)
	fmt.Fprintf(&sb, "text_size = %s\n", strconv.FormatFloat(c.Editor.TextSize, 'g', -1, 64))
	fmt.Fprintf(&sb, "step_size = %d\n", c.Editor.StepSize)
	fmt.Fprintf(&sb, "history = %d\n", c.Editor.History)
	sb.WriteString("\n")

	if c.Export != (Export{}) {
		sb.WriteString("[export]\n")
		if c.Export.Effects != "" {
			fmt.Fprintf(&sb, "effects = %s\n", c.Export.Effects)
		}
		if c.Export.Output != "" {
			fmt.Fprintf(&sb, "output = %s\n", c.Export.Output)
		}
		sb.WriteString("\n")
	}

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f[0], f[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
