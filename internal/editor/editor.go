// Package editor hosts a drawing surface in a shiny window with a toolbar,
// palette and status bar.
package editor

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"golang.org/x/exp/shiny/driver"

	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/effects"
	"github.com/example/annotator/internal/theme"
)

// ErrNoImage is returned when the editor is started without an image.
var ErrNoImage = errors.New("no image to edit")

// Editor holds the configuration of an editing session.
type Editor struct {
	Image        image.Image
	Output       string
	SaveDir      string
	ScenePath    string
	Theme        *theme.Theme
	Style        drawing.Style
	StepSize     int
	HistoryDepth int
	Effects      effects.Pipeline

	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithImage sets the image being annotated.
func WithImage(img image.Image) Option { return func(e *Editor) { e.Image = img } }

// WithOutput sets the file written on export. When empty a timestamped name
// inside the save directory is used.
func WithOutput(path string) Option { return func(e *Editor) { e.Output = path } }

// WithSaveDir sets the directory for exports without an explicit output.
func WithSaveDir(dir string) Option { return func(e *Editor) { e.SaveDir = dir } }

// WithScene loads annotations from path on start and saves them back on request.
func WithScene(path string) Option { return func(e *Editor) { e.ScenePath = path } }

func WithTheme(t *theme.Theme) Option {
	return func(e *Editor) {
		if t != nil {
			e.Theme = t
		}
	}
}

// WithStyle sets the initial style for new containers.
func WithStyle(st drawing.Style) Option { return func(e *Editor) { e.Style = st } }

func WithStepSize(px int) Option { return func(e *Editor) { e.StepSize = px } }

func WithHistoryDepth(n int) Option { return func(e *Editor) { e.HistoryDepth = n } }

// WithEffects sets the pipeline applied on export and by the apply effects
// shortcut.
func WithEffects(p effects.Pipeline) Option { return func(e *Editor) { e.Effects = p } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// New returns an Editor configured by opts.
func New(opts ...Option) *Editor {
	e := &Editor{
		Theme:        theme.Default(),
		Style:        drawing.DefaultStyle(),
		StepSize:     24,
		HistoryDepth: drawing.DefaultHistoryDepth,
		updateCh:     make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// notify schedules a repaint. Multiple requests before the next frame
// collapse into one.
func (e *Editor) notify() {
	select {
	case e.updateCh <- struct{}{}:
	default:
	}
}

func (e *Editor) notifyClose() {
	e.closeOnce.Do(func() {
		if e.onClose != nil {
			e.onClose()
		}
	})
}

// NewSurface builds the surface edited in the window. Confirmed crops are
// applied to the base image and a configured scene file is loaded when it
// exists.
func (e *Editor) NewSurface(extra ...drawing.Option) (*drawing.Surface, error) {
	if e.Image == nil {
		return nil, ErrNoImage
	}
	var s *drawing.Surface
	opts := []drawing.Option{
		drawing.WithTheme(e.Theme),
		drawing.WithStyle(e.Style),
		drawing.WithStepSize(e.StepSize),
		drawing.WithHistoryDepth(e.HistoryDepth),
		drawing.WithInvalidateListener(func(image.Rectangle) { e.notify() }),
		drawing.WithConfirmHandler(func(ev drawing.ConfirmEvent) error {
			if ev.Kind != drawing.KindCrop {
				return nil
			}
			return s.ApplyCrop(ev.Rect)
		}),
	}
	s = drawing.NewSurface(e.Image, append(opts, extra...)...)
	if e.ScenePath == "" {
		return s, nil
	}
	sc, err := drawing.LoadSceneFile(e.ScenePath)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", e.ScenePath, err)
	}
	if err := s.LoadScene(sc); err != nil {
		return nil, fmt.Errorf("load scene %s: %w", e.ScenePath, err)
	}
	return s, nil
}

// Run opens the window and blocks until it is closed.
func (e *Editor) Run() { driver.Main(e.Main) }
