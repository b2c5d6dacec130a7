package drawing

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

var white = color.RGBA{255, 255, 255, 255}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func press(s *Surface, x, y float32) {
	s.HandleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func drag(s *Surface, x, y float32) {
	s.HandleMouse(mouse.Event{X: x, Y: y, Direction: mouse.DirNone})
}

func release(s *Surface, x, y float32) {
	s.HandleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func typeKey(s *Surface, code key.Code, mods key.Modifiers) bool {
	return s.HandleKey(key.Event{Code: code, Modifiers: mods, Rune: -1, Direction: key.DirPress})
}

func typeRune(s *Surface, r rune) bool {
	return s.HandleKey(key.Event{Rune: r, Direction: key.DirPress})
}

func adornerFor(c Container, role Role) *Adorner {
	for _, a := range c.Adorners() {
		if a.Role() == role {
			return a
		}
	}
	return nil
}
