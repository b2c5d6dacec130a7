package editor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/annotator/internal/drawing"
	"github.com/example/annotator/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// KeyShortcut describes a keyboard combination that triggers an action.
// Either Rune or Code identifies the key.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// exportDone is delivered to the event loop when a background export ends.
type exportDone struct {
	path string
	err  error
}

type paintState struct {
	width, height int
	view          view
	chrome        chrome
	message       string
	messageUntil  time.Time
}

// Main runs the editor event loop on s until the window closes.
func (e *Editor) Main(scr screen.Screen) {
	var cursor drawing.Cursor
	var hasMenu bool
	s, err := e.NewSurface(
		drawing.WithCursorListener(func(c drawing.Cursor) {
			cursor = c
			e.notify()
		}),
		drawing.WithMenuListener(func(b bool) { hasMenu = b }),
	)
	if err != nil {
		log.Printf("editor: %v", err)
		return
	}

	toolbar := toolbarMinWidth()
	width := s.Width() + toolbar
	height := s.Height() + headerHeight + bottomHeight
	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Annotator"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer e.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-e.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	th := e.Theme
	title := e.Output
	if title == "" {
		title = "untitled"
	}
	v := view{zoom: fitZoom(s.Bounds(), toolbar, width, height)}
	s.SetZoom(v.zoom)
	cv := &canvas{}
	bd := &backdrop{light: color.NRGBA(th.CheckerLight), dark: color.NRGBA(th.CheckerDark)}

	palette, colorIdx := ensurePaletteColor(DefaultPalette(), e.Style.LineColor)
	widthIdx := nearestIndex(widths, e.Style.LineThickness)
	sizeIdx := nearestIndex(textSizes, e.Style.FontSize)
	pixelIdx := nearestIndex(pixelSizes, s.PixelSize())
	hoverTool, hoverPal, hoverOpt, hoverSc := -1, -1, -1, -1
	var message string
	var messageUntil time.Time
	var exportCancel context.CancelFunc
	var shortcuts []Shortcut
	var layout toolbarLayout
	quit := false

	flash := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(2 * time.Second)
		log.Print(msg)
	}

	applyStyle := func() {
		st := s.Style()
		st.LineColor = palette[colorIdx].Color
		st.LineThickness = widths[widthIdx]
		st.FontSize = textSizes[sizeIdx]
		s.SetStyle(st)
		s.SetPixelSize(pixelSizes[pixelIdx])
	}
	applyStyle()

	optionIdx := func() *int {
		switch s.Tool() {
		case drawing.KindText:
			return &sizeIdx
		case drawing.KindObfuscate:
			return &pixelIdx
		}
		return &widthIdx
	}

	selectTool := func(k drawing.Kind) {
		if err := s.SetTool(k); err != nil {
			log.Printf("tool: %v", err)
		}
		hoverOpt = -1
	}
	var buttons []*CacheButton
	for _, t := range tools {
		buttons = append(buttons, &CacheButton{Button: &ToolButton{label: t.label, kind: t.kind, onSelect: selectTool}})
	}

	setZoom := func(z float64) {
		v.zoom = clampZoom(z)
		s.SetZoom(v.zoom)
	}

	actions := map[string]func(){}
	keyboardAction := map[KeyShortcut]string{}
	register := func(name string, keys []KeyShortcut, fn func()) {
		actions[name] = fn
		for _, k := range keys {
			keyboardAction[k] = name
		}
	}

	register("export", []KeyShortcut{{Code: key.CodeS, Modifiers: key.ModControl}}, func() {
		if exportCancel != nil {
			exportCancel()
		}
		ctx, cancel := context.WithCancel(context.Background())
		exportCancel = cancel
		out := e.Output
		if out == "" {
			out = DefaultOutputPath(e.SaveDir, time.Now())
		}
		img := s.RenderImage(drawing.RenderExport)
		p := e.Effects
		go func() {
			defer cancel()
			_, err := Export(ctx, img, p, out)
			w.Send(exportDone{path: out, err: err})
		}()
		flash("exporting " + out)
	})
	register("scene", []KeyShortcut{{Code: key.CodeS, Modifiers: key.ModControl | key.ModShift}}, func() {
		if e.ScenePath == "" {
			flash("no scene file configured")
			return
		}
		if err := drawing.SaveSceneFile(e.ScenePath, s.Snapshot()); err != nil {
			log.Printf("save scene: %v", err)
			flash("saving scene failed")
			return
		}
		flash("saved " + e.ScenePath)
	})
	register("effects", []KeyShortcut{{Code: key.CodeE, Modifiers: key.ModControl}}, func() {
		if len(e.Effects) == 0 {
			flash("no effects configured")
			return
		}
		if err := s.ApplyEffects(context.Background(), e.Effects); err != nil {
			log.Printf("effects: %v", err)
			flash("applying effects failed")
			return
		}
		flash(fmt.Sprintf("applied %d effects", len(e.Effects)))
	})
	register("flatten", []KeyShortcut{{Code: key.CodeF, Modifiers: key.ModControl}}, func() { s.Flatten() })
	register("undo", []KeyShortcut{{Code: key.CodeZ, Modifiers: key.ModControl}}, func() { s.Undo() })
	register("redo", []KeyShortcut{{Code: key.CodeY, Modifiers: key.ModControl}}, func() { s.Redo() })
	register("confirm", []KeyShortcut{{Code: key.CodeReturnEnter}}, func() {
		s.HandleKey(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})
	})
	register("cancel", []KeyShortcut{{Code: key.CodeEscape}}, func() {
		s.HandleKey(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	})
	register("delete", []KeyShortcut{{Code: key.CodeDeleteForward}}, func() { s.DeleteSelected() })
	register("duplicate", nil, func() { s.Duplicate() })
	register("front", []KeyShortcut{{Rune: ']'}}, func() {
		for _, c := range s.Selection() {
			s.BringToFront(c)
		}
	})
	register("back", []KeyShortcut{{Rune: '['}}, func() {
		for _, c := range s.Selection() {
			s.SendToBack(c)
		}
	})
	register("zoomin", []KeyShortcut{{Rune: '+'}, {Rune: '='}}, func() { setZoom(v.zoom * 1.25) })
	register("zoomout", []KeyShortcut{{Rune: '-'}}, func() { setZoom(v.zoom / 1.25) })
	register("fit", []KeyShortcut{{Rune: '0'}}, func() {
		v.offset = image.Point{}
		setZoom(fitZoom(s.Bounds(), toolbar, width, height))
	})
	register("quit", []KeyShortcut{{Rune: 'q'}}, func() { quit = true })

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	refresh := func() {
		layout = layoutToolbar(toolbar, len(tools), len(palette), len(optionLabels(s.Tool())))
		shortcuts = statusShortcuts(s, hasMenu, v.zoom, handleShortcut)
		layoutShortcuts(shortcuts, toolbar+4, height)
	}
	refresh()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, scr, w, cv, bd, th, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stop := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
		if exportCancel != nil {
			exportCancel()
		}
	}

	for !quit {
		switch ev := w.NextEvent().(type) {
		case exportDone:
			if ev.err != nil {
				log.Printf("export: %v", ev.err)
				flash("export failed")
			} else {
				flash("saved " + ev.path)
			}
			w.Send(paint.Event{})
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				stop()
				return
			}
		case size.Event:
			width, height = ev.WidthPx, ev.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			cv.update(s)
			refresh()
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				width:  width,
				height: height,
				view:   v,
				chrome: chrome{
					title:     title,
					toolbar:   toolbar,
					width:     width,
					height:    height,
					zoom:      v.zoom,
					tool:      s.Tool(),
					palette:   palette,
					colorIdx:  colorIdx,
					optionIdx: *optionIdx(),
					hoverTool: hoverTool,
					hoverPal:  hoverPal,
					hoverOpt:  hoverOpt,
					hoverSc:   hoverSc,
					shortcuts: append([]Shortcut(nil), shortcuts...),
					status:    statusText(s, cursor),
					layout:    layout,
					buttons:   buttons,
				},
				message:      message,
				messageUntil: messageUntil,
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			p := image.Pt(int(ev.X), int(ev.Y))
			press := ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirPress
			if message != "" && time.Now().Before(messageUntil) && press {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			switch ev.Button {
			case mouse.ButtonWheelUp:
				setZoom(v.zoom * 1.1)
				continue
			case mouse.ButtonWheelDown:
				setZoom(v.zoom / 1.1)
				continue
			}
			if s.ActiveAdorner() == nil {
				if p.Y >= height-bottomHeight {
					hoverSc = -1
					for i := range shortcuts {
						if p.In(shortcuts[i].rect) {
							hoverSc = i
							if press {
								shortcuts[i].Activate()
							}
							break
						}
					}
					w.Send(paint.Event{})
					continue
				}
				if p.Y < headerHeight {
					continue
				}
				if p.X < toolbar {
					reg, idx := layout.hit(p)
					hoverTool, hoverPal, hoverOpt = -1, -1, -1
					switch reg {
					case regionTool:
						hoverTool = idx
						if press {
							buttons[idx].Activate()
						}
					case regionPalette:
						hoverPal = idx
						if press {
							colorIdx = idx
							applyStyle()
						}
					case regionOption:
						hoverOpt = idx
						if press {
							*optionIdx() = idx
							applyStyle()
						}
					}
					w.Send(paint.Event{})
					continue
				}
			}
			dst := v.imageRect(s.Bounds(), toolbar)
			s.HandleMouse(v.toCanvas(ev, dst))
		case key.Event:
			if ev.Direction == key.DirRelease {
				continue
			}
			if s.HandleKey(ev) {
				w.Send(paint.Event{})
				continue
			}
			if action, ok := lookupShortcut(keyboardAction, ev); ok {
				handleShortcut(action)
				continue
			}
			if ev.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) == 0 {
				if k, ok := toolForRune(unicode.ToLower(ev.Rune)); ok {
					selectTool(k)
					w.Send(paint.Event{})
					continue
				}
			}
			if pan(&v, ev) {
				w.Send(paint.Event{})
			}
		}
	}
	stop()
}

// lookupShortcut finds the action bound to ev, matching by key code first and
// then by the typed rune.
func lookupShortcut(m map[KeyShortcut]string, ev key.Event) (string, bool) {
	if a, ok := m[KeyShortcut{Code: ev.Code, Modifiers: ev.Modifiers}]; ok {
		return a, true
	}
	if ev.Rune <= 0 {
		return "", false
	}
	a, ok := m[KeyShortcut{Rune: unicode.ToLower(ev.Rune), Modifiers: ev.Modifiers &^ key.ModShift}]
	return a, ok
}

// pan scrolls the view with the arrow keys when nothing is selected.
func pan(v *view, ev key.Event) bool {
	step := 10
	if ev.Modifiers&key.ModShift != 0 {
		step = 100
	}
	switch ev.Code {
	case key.CodeLeftArrow:
		v.offset.X += step
	case key.CodeRightArrow:
		v.offset.X -= step
	case key.CodeUpArrow:
		v.offset.Y += step
	case key.CodeDownArrow:
		v.offset.Y -= step
	default:
		return false
	}
	return true
}

func statusShortcuts(s *drawing.Surface, hasMenu bool, zoom float64, trigger func(string)) []Shortcut {
	scs := []Shortcut{
		{label: "^S:export", action: func() { trigger("export") }},
		{label: "^Z:undo", action: func() { trigger("undo") }},
		{label: "^Y:redo", action: func() { trigger("redo") }},
		{label: fmt.Sprintf("+/-:zoom (%.0f%%)", zoom*100), action: func() { trigger("fit") }},
	}
	if pendingConfirm(s) {
		scs = append(scs,
			Shortcut{label: "Enter:crop", action: func() { trigger("confirm") }},
			Shortcut{label: "Esc:cancel", action: func() { trigger("cancel") }},
		)
	}
	if hasMenu {
		scs = append(scs,
			Shortcut{label: "Del:delete", action: func() { trigger("delete") }},
			Shortcut{label: "^D:dup", action: func() { trigger("duplicate") }},
			Shortcut{label: "[ ]:order", action: func() { trigger("front") }},
		)
	}
	return append(scs, Shortcut{label: "Q:quit", action: func() { trigger("quit") }})
}

func pendingConfirm(s *drawing.Surface) bool {
	for _, c := range s.Containers() {
		if c.Flags().Has(drawing.FlagConfirmable) {
			return true
		}
	}
	return false
}

func statusText(s *drawing.Surface, c drawing.Cursor) string {
	tool := "select"
	if k := s.Tool(); k != "" {
		tool = string(k)
	}
	return fmt.Sprintf("%s  %dx%d  %s", tool, s.Width(), s.Height(), c)
}

func drawFrame(ctx context.Context, scr screen.Screen, w screen.Window, cv *canvas, bd *backdrop, th *theme.Theme, st paintState) {
	b, err := scr.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	bd.draw(b.RGBA())
	if ctx.Err() != nil {
		return
	}

	cv.mu.Lock()
	if cv.img != nil {
		dst := st.view.imageRect(cv.img.Bounds(), st.chrome.toolbar)
		xdraw.NearestNeighbor.Scale(b.RGBA(), dst, cv.img, cv.img.Bounds(), draw.Over, nil)
	}
	cv.mu.Unlock()
	if ctx.Err() != nil {
		return
	}

	st.chrome.draw(b.RGBA(), th)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: b.RGBA(), Src: image.NewUniform(color.NRGBA(th.Foreground)), Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		bg := th.Background
		bg.A = 230
		draw.Draw(b.RGBA(), rect, &image.Uniform{color.NRGBA(bg)}, image.Point{}, draw.Over)
		outline(b.RGBA(), rect, color.NRGBA(th.ButtonBorder))
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
