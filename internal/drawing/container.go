package drawing

import "image"

// Container is one annotation element on a Surface.
type Container interface {
	Kind() Kind
	// Bounds returns the raw geometry, which may have negative extents.
	Bounds() Rect
	SetBounds(r Rect)
	MoveBy(dx, dy int)
	// DrawingBounds is the canvas region to repaint when the container changes.
	DrawingBounds() image.Rectangle
	// Draw paints onto dst, clipped to dst.Bounds(). It must not mutate the container.
	Draw(dst *image.RGBA, mode RenderMode)
	HasContextMenu() bool
	Flags() ElementFlag
	Invalidate()
	Adorners() []*Adorner
	Contains(p image.Point) bool
	Parent() *Surface
	// Record returns the persisted state.
	Record() Record
	// Attach links the container to s and rebuilds transient state.
	Attach(s *Surface)
	// Detach drops the surface link and the adorners.
	Detach()

	base() *DrawableContainer
	commit()
}

// Constrainer is implemented by containers that restrict geometry proposed
// by an adorner drag.
type Constrainer interface {
	Constrain(role Role, r Rect) Rect
}

// handleLayout lets a variant choose which adorners it exposes.
type handleLayout interface {
	handleRoles() []Role
}

// DrawableContainer is the state and default behaviour shared by every
// variant. Variants embed it and call init with themselves as this.
type DrawableContainer struct {
	this     Container
	parent   *Surface
	kind     Kind
	rect     Rect
	flags    ElementFlag
	adorners []*Adorner

	Style Style
}

func (d *DrawableContainer) init(this Container, kind Kind, flags ElementFlag, r Rect, st Style) {
	d.this = this
	d.kind = kind
	d.flags = flags
	d.rect = r
	d.Style = st
}

func (d *DrawableContainer) base() *DrawableContainer { return d }

func (d *DrawableContainer) Kind() Kind         { return d.kind }
func (d *DrawableContainer) Bounds() Rect       { return d.rect }
func (d *DrawableContainer) Flags() ElementFlag { return d.flags }
func (d *DrawableContainer) Parent() *Surface   { return d.parent }
func (d *DrawableContainer) HasContextMenu() bool {
	return true
}

// Adorners returns the handles owned by the container. Detached containers
// have none.
func (d *DrawableContainer) Adorners() []*Adorner { return d.adorners }

// SetBounds replaces the geometry and repaints both the old and new area.
func (d *DrawableContainer) SetBounds(r Rect) {
	if r == d.rect {
		return
	}
	d.this.Invalidate()
	d.rect = r
	d.this.Invalidate()
}

func (d *DrawableContainer) MoveBy(dx, dy int) {
	d.SetBounds(d.rect.Add(image.Pt(dx, dy)))
}

// DrawingBounds defaults to the normalized geometry widened by the stroke.
func (d *DrawableContainer) DrawingBounds() image.Rectangle {
	r := d.rect.Image()
	if t := d.Style.LineThickness; t > 1 {
		r = r.Inset(-(t + 1) / 2)
	}
	return r
}

// Invalidate asks the owning surface to repaint DrawingBounds.
func (d *DrawableContainer) Invalidate() {
	if d.parent == nil {
		return
	}
	d.parent.InvalidateRect(d.this.DrawingBounds())
}

// Contains reports whether p hits the container body.
func (d *DrawableContainer) Contains(p image.Point) bool {
	return p.In(d.rect.Image().Inset(-2))
}

// commit normalizes geometry once a drag ends.
func (d *DrawableContainer) commit() {
	d.rect = d.rect.Normalize()
}

func (d *DrawableContainer) Attach(s *Surface) {
	if s == nil {
		d.parent = nil
		d.adorners = nil
		return
	}
	d.parent = s
	roles := resizeRoles
	if hl, ok := d.this.(handleLayout); ok {
		roles = hl.handleRoles()
	}
	d.adorners = make([]*Adorner, 0, len(roles))
	for _, role := range roles {
		d.adorners = append(d.adorners, &Adorner{owner: d.this, role: role})
	}
}

// Detach drops the surface link and the adorners. An adorner still holding
// the pointer gives it back first.
func (d *DrawableContainer) Detach() {
	for _, a := range d.adorners {
		if a.active {
			a.release()
		}
	}
	d.parent = nil
	d.adorners = nil
}

// Record returns the persisted fields common to every variant.
func (d *DrawableContainer) Record() Record {
	return Record{Kind: d.kind, Rect: d.rect, Flags: d.flags, Style: d.Style}
}

func (d *DrawableContainer) attached() bool { return d.parent != nil }

func (d *DrawableContainer) thickness() int {
	if d.Style.LineThickness < 1 {
		return 1
	}
	return d.Style.LineThickness
}
