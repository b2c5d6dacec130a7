package drawing

import (
	"image"
	"log"
	"math"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// HandleMouse processes a pointer event whose coordinates are already in
// canvas space.
func (s *Surface) HandleMouse(e mouse.Event) {
	p := image.Pt(int(math.Floor(float64(e.X))), int(math.Floor(float64(e.Y))))
	switch e.Direction {
	case mouse.DirPress:
		if e.Button == mouse.ButtonLeft {
			s.press(p)
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			s.release(p)
		}
	case mouse.DirNone:
		s.move(p)
	}
}

func (s *Surface) press(p image.Point) {
	if s.active != nil {
		return
	}
	if s.editing != nil && !s.editing.Contains(p) {
		s.endTextEdit()
	}
	if s.tool != "" {
		s.startCreate(p)
		return
	}
	for i := len(s.selection) - 1; i >= 0; i-- {
		for _, a := range s.selection[i].Adorners() {
			if a.Role() != RoleMove && a.HitTest(p, s.zoom) {
				s.startDrag(a, p)
				return
			}
		}
	}
	c := s.ContainerAt(p)
	if c == nil {
		s.ClearSelection()
		return
	}
	if !s.IsSelected(c) {
		s.ClearSelection()
		s.Select(c)
	}
	if a := moveAdorner(c); a != nil {
		s.startDrag(a, p)
	}
}

func moveAdorner(c Container) *Adorner {
	for _, a := range c.Adorners() {
		if a.Role() == RoleMove {
			return a
		}
	}
	return nil
}

func (s *Surface) startDrag(a *Adorner, p image.Point) {
	m := s.memento()
	if err := a.DragStart(p); err != nil {
		log.Printf("drag: %v", err)
		return
	}
	s.pending = &m
	s.setCursor(a.Cursor())
}

// startCreate adds a zero-sized container of the current tool at p and
// drags its end corner.
func (s *Surface) startCreate(p image.Point) {
	m := s.memento()
	s.displaced = false
	if s.tool == KindCrop {
		s.displaced = s.CancelConfirmable()
	}
	c := s.newContainer(s.tool, Rect{Left: p.X, Top: p.Y})
	s.ClearSelection()
	s.add(c)
	s.Select(c)
	if t, ok := c.(*TextContainer); ok {
		s.history.push(m)
		s.beginTextEdit(t)
		return
	}
	s.creating = c
	for _, a := range c.Adorners() {
		if a.Role() == RoleBottomRight {
			s.startDrag(a, p)
		}
	}
	s.pending = &m
}

func (s *Surface) newContainer(k Kind, r Rect) Container {
	st := s.style
	switch k {
	case KindCrop:
		return NewCropContainer(s, r)
	case KindEllipse:
		return NewEllipseContainer(s, r, st)
	case KindLine:
		return NewLineContainer(s, r, st)
	case KindArrow:
		return NewArrowContainer(s, r, st)
	case KindText:
		return NewTextContainer(s, r, st, "")
	case KindStepLabel:
		return NewStepLabelContainer(s, r, st, s.nextStep())
	case KindHighlight:
		st.FillColor = Color(s.theme.Highlight)
		return NewHighlightContainer(s, r, st)
	case KindObfuscate:
		return NewObfuscateContainer(s, r, s.pixels)
	}
	return NewRectangleContainer(s, r, st)
}

func (s *Surface) nextStep() int {
	n := 0
	for _, c := range s.containers {
		if sl, ok := c.(*StepLabelContainer); ok && sl.Number > n {
			n = sl.Number
		}
	}
	return n + 1
}

func (s *Surface) move(p image.Point) {
	if s.active != nil {
		if err := s.active.DragMove(p); err != nil {
			log.Printf("drag: %v", err)
		}
		return
	}
	s.setCursor(s.cursorAt(p))
}

func (s *Surface) cursorAt(p image.Point) Cursor {
	if s.tool != "" {
		return CursorCrosshair
	}
	for i := len(s.selection) - 1; i >= 0; i-- {
		for _, a := range s.selection[i].Adorners() {
			if a.Role() != RoleMove && a.HitTest(p, s.zoom) {
				return a.Cursor()
			}
		}
	}
	if c := s.ContainerAt(p); c != nil {
		if c == Container(s.editing) {
			return CursorText
		}
		return CursorMove
	}
	return CursorDefault
}

func (s *Surface) release(p image.Point) {
	a := s.active
	if a == nil {
		return
	}
	if err := a.DragMove(p); err != nil {
		log.Printf("drag: %v", err)
	}
	moved := a.Owner().Bounds() != a.startRect
	a.DragEnd()
	owner := a.Owner()
	if s.creating == owner {
		s.creating = nil
		if owner.Bounds().Empty() {
			if sl, ok := owner.(*StepLabelContainer); ok {
				d := s.stepSize
				sl.SetBounds(Rect{Left: p.X - d/2, Top: p.Y - d/2, Width: d, Height: d})
				moved = true
			} else {
				s.abandonCreate(owner)
				s.setCursor(s.cursorAt(p))
				return
			}
		} else {
			moved = true
		}
	}
	if moved && s.pending != nil {
		s.history.push(*s.pending)
	}
	s.pending = nil
	s.displaced = false
	s.setCursor(s.cursorAt(p))
}

// abandonCreate drops a container that was never given a size. A pending
// crop it displaced is brought back.
func (s *Surface) abandonCreate(c Container) {
	if s.displaced && s.pending != nil {
		s.restore(*s.pending)
	} else {
		s.remove(c)
	}
	s.creating = nil
	s.pending = nil
	s.displaced = false
}

// CancelDrag aborts the active drag, restoring the pre-drag geometry. A
// container still being created is removed.
func (s *Surface) CancelDrag() bool {
	a := s.active
	if a == nil {
		return false
	}
	a.Cancel()
	if s.creating == a.Owner() {
		s.abandonCreate(a.Owner())
	}
	s.creating = nil
	s.pending = nil
	s.displaced = false
	return true
}

func (s *Surface) beginTextEdit(t *TextContainer) {
	t.editing = true
	s.editing = t
	t.Invalidate()
}

// EditText routes keyboard input to t.
func (s *Surface) EditText(t *TextContainer) {
	if t.Parent() != s || s.editing == t {
		return
	}
	s.endTextEdit()
	s.checkpoint()
	s.beginTextEdit(t)
}

// endTextEdit stops routing keys to the edited text container. An empty
// container is dropped.
func (s *Surface) endTextEdit() {
	t := s.editing
	if t == nil {
		return
	}
	s.editing = nil
	t.editing = false
	t.Invalidate()
	if t.Text == "" {
		s.remove(t)
	}
}

// HandleKey processes a keyboard event. It reports whether the event was
// consumed.
func (s *Surface) HandleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if s.editing != nil {
		return s.editKey(e)
	}
	ctrl := e.Modifiers&key.ModControl != 0
	shift := e.Modifiers&key.ModShift != 0
	switch e.Code {
	case key.CodeEscape:
		switch {
		case s.CancelDrag():
		case s.CancelConfirmable():
		case len(s.selection) > 0:
			s.ClearSelection()
		case s.tool != "":
			s.SetTool("")
		default:
			return false
		}
		return true
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if _, err := s.Confirm(); err != nil {
			if err != ErrNothingToConfirm {
				log.Printf("confirm: %v", err)
			}
			return false
		}
		return true
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		return s.DeleteSelected() > 0
	case key.CodeLeftArrow, key.CodeRightArrow, key.CodeUpArrow, key.CodeDownArrow:
		step := 1
		if shift {
			step = 10
		}
		return s.nudge(e.Code, step)
	case key.CodeZ:
		if ctrl && shift {
			return s.Redo()
		}
		if ctrl {
			return s.Undo()
		}
	case key.CodeY:
		if ctrl {
			return s.Redo()
		}
	case key.CodeD:
		if ctrl {
			return len(s.Duplicate()) > 0
		}
	}
	return false
}

func (s *Surface) nudge(code key.Code, step int) bool {
	if len(s.selection) == 0 || s.active != nil {
		return false
	}
	var dx, dy int
	switch code {
	case key.CodeLeftArrow:
		dx = -step
	case key.CodeRightArrow:
		dx = step
	case key.CodeUpArrow:
		dy = -step
	case key.CodeDownArrow:
		dy = step
	}
	s.checkpoint()
	for _, c := range s.selection {
		c.MoveBy(dx, dy)
	}
	return true
}

func (s *Surface) editKey(e key.Event) bool {
	t := s.editing
	switch e.Code {
	case key.CodeEscape:
		s.endTextEdit()
		return true
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if e.Modifiers&key.ModShift != 0 {
			t.SetText(t.Text + "\n")
		} else {
			s.endTextEdit()
		}
		return true
	case key.CodeDeleteBackspace:
		if r := []rune(t.Text); len(r) > 0 {
			t.SetText(string(r[:len(r)-1]))
		}
		return true
	}
	if e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
		return false
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		t.SetText(t.Text + string(e.Rune))
		return true
	}
	return false
}
