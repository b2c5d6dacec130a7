package theme

import (
	"image/color"
)

// Theme defines the colours used by the editor window and by the annotation
// chrome drawn on the canvas. Colours are straight (non-premultiplied) alpha,
// as written in theme files; convert through color.NRGBA before compositing.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the canvas
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Annotation chrome
	SelectionLight color.RGBA // Dashed selection border, first dash
	SelectionDark  color.RGBA // Dashed selection border, second dash
	AdornerFill    color.RGBA
	AdornerBorder  color.RGBA
	CropMask       color.RGBA // Dimming outside a pending crop
	Highlight      color.RGBA // Default highlighter fill
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		StatusBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		SelectionLight:        color.RGBA{255, 255, 255, 255},
		SelectionDark:         color.RGBA{0, 0, 0, 255},
		AdornerFill:           color.RGBA{255, 255, 255, 255},
		AdornerBorder:         color.RGBA{0, 0, 0, 255},
		CropMask:              color.RGBA{150, 150, 100, 100},
		Highlight:             color.RGBA{255, 255, 0, 96},
	}
}
