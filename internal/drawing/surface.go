package drawing

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"slices"

	"github.com/example/annotator/internal/effects"
	"github.com/example/annotator/internal/theme"
)

// ConfirmEvent is emitted when a confirmable container is committed.
type ConfirmEvent struct {
	Kind Kind
	Rect image.Rectangle
}

// Surface owns the base image and the annotations drawn on it.
type Surface struct {
	image      *image.RGBA
	containers []Container
	selection  []Container
	active     *Adorner
	dirty      image.Rectangle
	zoom       float64

	theme    *theme.Theme
	style    Style
	stepSize int
	pixels   int
	tool     Kind
	history  *History
	editing  *TextContainer
	creating Container
	pending  *memento
	cursor   Cursor
	hasMenu  bool

	// displaced is set when starting a crop removed an earlier pending crop.
	displaced bool
	// batching suppresses checkpoints while a confirm handler runs.
	batching  bool

	onInvalidate func(image.Rectangle)
	onCursor     func(Cursor)
	onMenu       func(bool)
	onConfirm    func(ConfirmEvent) error
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithTheme sets the colours used for chrome and defaults.
func WithTheme(t *theme.Theme) Option { return func(s *Surface) { s.theme = t } }

// WithStyle sets the style given to newly drawn containers.
func WithStyle(st Style) Option { return func(s *Surface) { s.style = st } }

// WithStepSize sets the default diameter of step labels.
func WithStepSize(px int) Option { return func(s *Surface) { s.stepSize = px } }

// WithHistoryDepth bounds the undo stack.
func WithHistoryDepth(n int) Option { return func(s *Surface) { s.history = NewHistory(n) } }

// WithInvalidateListener registers a callback for every repaint request.
func WithInvalidateListener(fn func(image.Rectangle)) Option {
	return func(s *Surface) { s.onInvalidate = fn }
}

// WithCursorListener registers a callback for cursor hint changes.
func WithCursorListener(fn func(Cursor)) Option { return func(s *Surface) { s.onCursor = fn } }

// WithMenuListener registers a callback told whether the selection offers a
// context menu.
func WithMenuListener(fn func(bool)) Option { return func(s *Surface) { s.onMenu = fn } }

// WithConfirmHandler registers the collaborator that applies a confirmed
// container to the image.
func WithConfirmHandler(fn func(ConfirmEvent) error) Option {
	return func(s *Surface) { s.onConfirm = fn }
}

// NewSurface creates a surface over a copy of img.
func NewSurface(img image.Image, opts ...Option) *Surface {
	s := &Surface{
		image:    toRGBA(img),
		zoom:     1,
		theme:    theme.Default(),
		style:    DefaultStyle(),
		stepSize: 24,
		pixels:   DefaultPixelSize,
	}
	for _, o := range opts {
		o(s)
	}
	if s.history == nil {
		s.history = NewHistory(DefaultHistoryDepth)
	}
	return s
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Image returns the current base image. It is replaced, not modified, by
// crops and effects.
func (s *Surface) Image() *image.RGBA { return s.image }

// Bounds is the canvas rectangle, always anchored at the origin.
func (s *Surface) Bounds() image.Rectangle { return s.image.Bounds() }

func (s *Surface) Width() int  { return s.image.Bounds().Dx() }
func (s *Surface) Height() int { return s.image.Bounds().Dy() }

func (s *Surface) Theme() *theme.Theme { return s.theme }

// Style is the style used for new containers.
func (s *Surface) Style() Style { return s.style }

func (s *Surface) SetStyle(st Style) { s.style = st }

// PixelSize is the block size given to new obfuscate containers.
func (s *Surface) PixelSize() int { return s.pixels }

func (s *Surface) SetPixelSize(n int) {
	if n < 1 {
		n = DefaultPixelSize
	}
	s.pixels = n
}

// Zoom is the screen pixels per canvas pixel used to size adorners.
func (s *Surface) Zoom() float64 { return s.zoom }

func (s *Surface) SetZoom(z float64) {
	if z <= 0 {
		z = 1
	}
	if z != s.zoom {
		s.zoom = z
		s.Invalidate()
	}
}

// History exposes the undo state.
func (s *Surface) History() *History { return s.history }

// ActiveAdorner returns the adorner holding the pointer, if any.
func (s *Surface) ActiveAdorner() *Adorner { return s.active }

// Add attaches c and places it on top.
func (s *Surface) Add(c Container) {
	s.checkpoint()
	s.add(c)
}

func (s *Surface) add(c Container) {
	if c.Parent() != s {
		c.Attach(s)
	}
	s.containers = append(s.containers, c)
	c.Invalidate()
}

// Remove detaches c. It reports false if c is not on the surface.
func (s *Surface) Remove(c Container) bool {
	if s.indexOf(c) < 0 {
		return false
	}
	s.checkpoint()
	s.remove(c)
	return true
}

func (s *Surface) remove(c Container) {
	i := s.indexOf(c)
	if i < 0 {
		return
	}
	if s.active != nil && s.active.Owner() == c {
		s.active.Cancel()
	}
	if s.editing == c {
		s.editing = nil
	}
	if s.creating == c {
		s.creating = nil
	}
	c.Invalidate()
	s.containers = append(s.containers[:i], s.containers[i+1:]...)
	s.deselect(c)
	c.Detach()
	s.notifyMenu()
}

func (s *Surface) indexOf(c Container) int {
	for i, o := range s.containers {
		if o == c {
			return i
		}
	}
	return -1
}

// Containers returns the containers in paint order, back to front.
func (s *Surface) Containers() []Container {
	return append([]Container(nil), s.containers...)
}

// ContainerAt returns the topmost container hit by p.
func (s *Surface) ContainerAt(p image.Point) Container {
	for i := len(s.containers) - 1; i >= 0; i-- {
		if s.containers[i].Contains(p) {
			return s.containers[i]
		}
	}
	return nil
}

// Select adds c to the selection.
func (s *Surface) Select(c Container) {
	if s.indexOf(c) < 0 || s.IsSelected(c) {
		return
	}
	s.selection = append(s.selection, c)
	c.Invalidate()
	s.notifyMenu()
}

func (s *Surface) Deselect(c Container) {
	if s.deselect(c) {
		s.notifyMenu()
	}
}

func (s *Surface) deselect(c Container) bool {
	for i, o := range s.selection {
		if o == c {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			c.Invalidate()
			return true
		}
	}
	return false
}

func (s *Surface) ClearSelection() {
	if len(s.selection) == 0 {
		return
	}
	for _, c := range s.selection {
		c.Invalidate()
	}
	s.selection = nil
	s.notifyMenu()
}

// Selection returns the selected containers in selection order.
func (s *Surface) Selection() []Container {
	return append([]Container(nil), s.selection...)
}

func (s *Surface) IsSelected(c Container) bool {
	for _, o := range s.selection {
		if o == c {
			return true
		}
	}
	return false
}

// DeleteSelected removes every selected container and returns how many were
// removed.
func (s *Surface) DeleteSelected() int {
	sel := s.Selection()
	if len(sel) == 0 {
		return 0
	}
	s.checkpoint()
	for _, c := range sel {
		s.remove(c)
	}
	return len(sel)
}

// BringToFront moves c to the top of the paint order.
func (s *Surface) BringToFront(c Container) {
	i := s.indexOf(c)
	if i < 0 || i == len(s.containers)-1 {
		return
	}
	s.checkpoint()
	s.containers = append(append(s.containers[:i:i], s.containers[i+1:]...), c)
	c.Invalidate()
}

// SendToBack moves c to the bottom of the paint order.
func (s *Surface) SendToBack(c Container) {
	i := s.indexOf(c)
	if i <= 0 {
		return
	}
	s.checkpoint()
	rest := append(s.containers[:i:i], s.containers[i+1:]...)
	s.containers = append([]Container{c}, rest...)
	c.Invalidate()
}

// Duplicate copies the selected non-confirmable containers, offset by ten
// pixels, and selects the copies.
func (s *Surface) Duplicate() []Container {
	var recs []Record
	for _, c := range s.selection {
		if !c.Flags().Has(FlagConfirmable) {
			recs = append(recs, c.Record())
		}
	}
	if len(recs) == 0 {
		return nil
	}
	s.checkpoint()
	s.ClearSelection()
	var out []Container
	for _, rec := range copyRecords(recs) {
		rec.Rect = rec.Rect.Add(image.Pt(10, 10))
		c, err := fromRecord(rec)
		if err != nil {
			continue
		}
		s.add(c)
		s.Select(c)
		out = append(out, c)
	}
	return out
}

// InvalidateRect requests a repaint of r, widened by the adorner margin and
// clipped to the canvas.
func (s *Surface) InvalidateRect(r image.Rectangle) {
	r = r.Inset(-s.chromeMargin()).Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	s.dirty = s.dirty.Union(r)
	if s.onInvalidate != nil {
		s.onInvalidate(r)
	}
}

// Invalidate requests a repaint of the whole canvas.
func (s *Surface) Invalidate() { s.InvalidateRect(s.Bounds()) }

// TakeDirty returns the accumulated repaint region and resets it.
func (s *Surface) TakeDirty() image.Rectangle {
	d := s.dirty
	s.dirty = image.Rectangle{}
	return d
}

func (s *Surface) chromeMargin() int {
	return int(handleSize/s.zoom) + 2
}

// Render paints the base image and containers into dst, limited to
// dst.Bounds(). Export mode skips confirmable containers and chrome.
func (s *Surface) Render(dst *image.RGBA, mode RenderMode) {
	clip := dst.Bounds()
	draw.Draw(dst, clip, s.image, clip.Min, draw.Src)
	for _, c := range s.containers {
		if mode == RenderExport && c.Flags().Has(FlagConfirmable) {
			continue
		}
		if !c.DrawingBounds().Overlaps(clip) {
			continue
		}
		c.Draw(dst, mode)
	}
	if mode == RenderEdit {
		for _, c := range s.selection {
			s.drawChrome(dst, c)
		}
	}
}

// RenderImage renders the whole canvas into a new image.
func (s *Surface) RenderImage(mode RenderMode) *image.RGBA {
	dst := image.NewRGBA(s.Bounds())
	s.Render(dst, mode)
	return dst
}

func (s *Surface) drawChrome(dst *image.RGBA, c Container) {
	if c.Kind() != KindCrop {
		r := c.Bounds().Image()
		if c.Kind() == KindLine || c.Kind() == KindArrow {
			r = image.Rectangle{}
		}
		if !r.Empty() {
			drawDashedRect(dst, image.Rect(r.Min.X-1, r.Min.Y-1, r.Max.X, r.Max.Y), color.NRGBA(s.theme.SelectionLight), color.NRGBA(s.theme.SelectionDark))
		}
	}
	for _, a := range c.Adorners() {
		if a.Role() == RoleMove {
			continue
		}
		h := a.HitRect(s.zoom)
		fillRect(dst, h, color.NRGBA(s.theme.AdornerFill))
		drawRect(dst, h, color.NRGBA(s.theme.AdornerBorder), 1)
	}
}

// Flatten burns the committed annotations into the base image and removes
// them. Pending confirmable containers stay on the surface.
func (s *Surface) Flatten() {
	img := s.RenderImage(RenderExport)
	s.checkpoint()
	s.image = img
	for _, c := range s.Containers() {
		if !c.Flags().Has(FlagConfirmable) {
			s.remove(c)
		}
	}
	s.Invalidate()
}

// SetTool selects the kind created by the next press. The empty kind selects
// and moves existing containers.
func (s *Surface) SetTool(k Kind) error {
	if k != "" {
		if _, err := ParseKind(string(k)); err != nil {
			return err
		}
	}
	s.endTextEdit()
	s.tool = k
	if k == "" {
		s.setCursor(CursorDefault)
	} else {
		s.setCursor(CursorCrosshair)
	}
	return nil
}

func (s *Surface) Tool() Kind { return s.tool }

// Confirm commits the selected confirmable container, or the topmost one if
// none is selected. The container is removed and the event is passed to the
// confirm handler. The removal and whatever the handler changes form a single
// undo step. When the handler fails, the container is put back where it was;
// handlers must fail before changing the surface.
func (s *Surface) Confirm() (ConfirmEvent, error) {
	var target Container
	for _, c := range s.selection {
		if c.Flags().Has(FlagConfirmable) {
			target = c
		}
	}
	for i := len(s.containers) - 1; target == nil && i >= 0; i-- {
		if s.containers[i].Flags().Has(FlagConfirmable) {
			target = s.containers[i]
		}
	}
	if target == nil {
		return ConfirmEvent{}, ErrNothingToConfirm
	}
	if s.active != nil && s.active.Owner() == target {
		s.active.DragEnd()
	}
	ev := ConfirmEvent{Kind: target.Kind(), Rect: target.Bounds().Image()}
	before := s.memento()
	idx := s.indexOf(target)
	selected := s.IsSelected(target)
	s.remove(target)
	if s.onConfirm != nil {
		s.batching = true
		err := s.onConfirm(ev)
		s.batching = false
		if err != nil {
			s.image = before.image
			s.insert(idx, target)
			if selected {
				s.Select(target)
			}
			return ev, fmt.Errorf("confirm %s: %w", ev.Kind, err)
		}
	}
	s.history.push(before)
	return ev, nil
}

// insert attaches c at position i of the paint order.
func (s *Surface) insert(i int, c Container) {
	if c.Parent() != s {
		c.Attach(s)
	}
	s.containers = slices.Insert(s.containers, min(i, len(s.containers)), c)
	c.Invalidate()
}

// CancelConfirmable removes every pending confirmable container without
// touching the image. It reports whether anything was removed.
func (s *Surface) CancelConfirmable() bool {
	removed := false
	for _, c := range s.Containers() {
		if c.Flags().Has(FlagConfirmable) {
			s.remove(c)
			removed = true
		}
	}
	return removed
}

// ApplyCrop clips the base image to r and shifts the remaining containers so
// they keep their place on the image. Pixels are not resampled.
func (s *Surface) ApplyCrop(r image.Rectangle) error {
	r = r.Canon().Intersect(s.Bounds())
	if r.Empty() {
		return ErrEmptyCrop
	}
	s.checkpoint()
	img := cropImage(s.image, r)
	for _, c := range s.containers {
		c.MoveBy(-r.Min.X, -r.Min.Y)
	}
	s.image = img
	s.dirty = image.Rectangle{}
	s.Invalidate()
	return nil
}

// ApplyEffects runs p over the base image and maps every container through
// the resulting matrix.
func (s *Surface) ApplyEffects(ctx context.Context, p effects.Pipeline) error {
	if len(p) == 0 {
		return nil
	}
	res, err := p.ApplyContext(ctx, s.image)
	if err != nil {
		return err
	}
	s.checkpoint()
	s.image = res.Image
	for _, c := range s.containers {
		r := c.Bounds()
		c.SetBounds(rectBetween(res.Matrix.TransformPoint(r.Start()), res.Matrix.TransformPoint(r.End())))
	}
	s.dirty = image.Rectangle{}
	s.Invalidate()
	return nil
}

// Snapshot returns the persisted state of every container.
func (s *Surface) Snapshot() *Scene {
	return &Scene{Width: s.Width(), Height: s.Height(), Containers: s.records()}
}

// LoadScene replaces the containers with those in sc. The base image is
// kept.
func (s *Surface) LoadScene(sc *Scene) error {
	built, err := s.build(sc.Containers)
	if err != nil {
		return err
	}
	s.checkpoint()
	s.replace(built)
	return nil
}

func (s *Surface) records() []Record {
	recs := make([]Record, 0, len(s.containers))
	for _, c := range s.containers {
		recs = append(recs, c.Record())
	}
	return copyRecords(recs)
}

func (s *Surface) build(recs []Record) ([]Container, error) {
	out := make([]Container, 0, len(recs))
	for i, rec := range recs {
		c, err := fromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// replace swaps the container list and runs the attach step on each new
// container.
func (s *Surface) replace(cs []Container) {
	if s.active != nil {
		s.active.Cancel()
	}
	for _, c := range s.containers {
		c.Detach()
	}
	s.selection = nil
	s.editing = nil
	s.creating = nil
	s.pending = nil
	s.displaced = false
	s.containers = cs
	for _, c := range cs {
		c.Attach(s)
	}
	s.notifyMenu()
	s.Invalidate()
}

func (s *Surface) memento() memento {
	return memento{image: s.image, records: s.records()}
}

func (s *Surface) checkpoint() {
	if s.batching {
		return
	}
	s.history.push(s.memento())
}

func (s *Surface) restore(m memento) {
	built, err := s.build(m.records)
	if err != nil {
		log.Printf("history: %v", err)
		return
	}
	s.image = m.image
	s.dirty = image.Rectangle{}
	s.replace(built)
}

// Undo restores the previous snapshot.
func (s *Surface) Undo() bool {
	s.endTextEdit()
	m, ok := s.history.undoStep(s.memento())
	if ok {
		s.restore(m)
	}
	return ok
}

// Redo reapplies the most recently undone change.
func (s *Surface) Redo() bool {
	s.endTextEdit()
	m, ok := s.history.redoStep(s.memento())
	if ok {
		s.restore(m)
	}
	return ok
}

func (s *Surface) setCursor(c Cursor) {
	if c == s.cursor {
		return
	}
	s.cursor = c
	if s.onCursor != nil {
		s.onCursor(c)
	}
}

// Cursor is the last cursor hint reported.
func (s *Surface) Cursor() Cursor { return s.cursor }

func (s *Surface) notifyMenu() {
	has := false
	for _, c := range s.selection {
		if c.HasContextMenu() {
			has = true
		}
	}
	if has == s.hasMenu {
		return
	}
	s.hasMenu = has
	if s.onMenu != nil {
		s.onMenu(has)
	}
}
