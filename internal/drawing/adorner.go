package drawing

import (
	"image"
	"math"
)

// Role is the geometric meaning of an adorner.
type Role int

const (
	RoleTopLeft Role = iota
	RoleTop
	RoleTopRight
	RoleRight
	RoleBottomRight
	RoleBottom
	RoleBottomLeft
	RoleLeft
	// RoleMove drags the whole container. Its hit region is the container body.
	RoleMove
)

var resizeRoles = []Role{RoleTopLeft, RoleTop, RoleTopRight, RoleRight, RoleBottomRight, RoleBottom, RoleBottomLeft, RoleLeft, RoleMove}

var roleNames = [...]string{"top-left", "top", "top-right", "right", "bottom-right", "bottom", "bottom-left", "left", "move"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// Cursor is the pointer shape a host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorMove
	CursorResizeNWSE
	CursorResizeNESW
	CursorResizeNS
	CursorResizeEW
	CursorText
)

var cursorNames = [...]string{"default", "crosshair", "move", "nwse-resize", "nesw-resize", "ns-resize", "ew-resize", "text"}

func (c Cursor) String() string {
	if c < 0 || int(c) >= len(cursorNames) {
		return "unknown"
	}
	return cursorNames[c]
}

// Adorner is a drag handle owned by exactly one container.
type Adorner struct {
	owner     Container
	role      Role
	active    bool
	start     image.Point
	startRect Rect
}

func (a *Adorner) Owner() Container { return a.owner }
func (a *Adorner) Role() Role       { return a.role }

// Active reports whether the adorner currently holds the pointer.
func (a *Adorner) Active() bool { return a.active }

// Cursor is the hint shown while hovering or dragging the adorner.
func (a *Adorner) Cursor() Cursor {
	switch a.role {
	case RoleTopLeft, RoleBottomRight:
		return CursorResizeNWSE
	case RoleTopRight, RoleBottomLeft:
		return CursorResizeNESW
	case RoleTop, RoleBottom:
		return CursorResizeNS
	case RoleLeft, RoleRight:
		return CursorResizeEW
	}
	return CursorMove
}

// Location is the canvas-space centre of the handle. It follows the raw
// geometry so a handle stays under the pointer when a drag inverts the rect.
func (a *Adorner) Location() image.Point {
	r := a.owner.Bounds()
	x0, y0 := r.Left, r.Top
	x1, y1 := r.Left+r.Width, r.Top+r.Height
	cx, cy := (x0+x1)/2, (y0+y1)/2
	switch a.role {
	case RoleTopLeft:
		return image.Pt(x0, y0)
	case RoleTop:
		return image.Pt(cx, y0)
	case RoleTopRight:
		return image.Pt(x1, y0)
	case RoleRight:
		return image.Pt(x1, cy)
	case RoleBottomRight:
		return image.Pt(x1, y1)
	case RoleBottom:
		return image.Pt(cx, y1)
	case RoleBottomLeft:
		return image.Pt(x0, y1)
	case RoleLeft:
		return image.Pt(x0, cy)
	}
	return image.Pt(cx, cy)
}

// HitRect is the canvas-space square that accepts the pointer. Its size is
// constant in screen pixels, so it shrinks on the canvas as zoom grows.
func (a *Adorner) HitRect(zoom float64) image.Rectangle {
	if zoom <= 0 {
		zoom = 1
	}
	hs := int(math.Ceil(handleSize / zoom / 2))
	c := a.Location()
	return image.Rect(c.X-hs, c.Y-hs, c.X+hs, c.Y+hs)
}

// HitTest reports whether p, in canvas space, grabs the adorner.
func (a *Adorner) HitTest(p image.Point, zoom float64) bool {
	if a.role == RoleMove {
		return a.owner.Contains(p)
	}
	return p.In(a.HitRect(zoom))
}

// DragStart captures the pointer at canvas point p.
func (a *Adorner) DragStart(p image.Point) error {
	s := a.owner.Parent()
	if s == nil {
		return ErrDetachedContainer
	}
	if s.active != nil {
		return ErrAdornerFocusConflict
	}
	s.active = a
	a.active = true
	a.start = p
	a.startRect = a.owner.Bounds()
	return nil
}

// DragMove recomputes the geometry from the pre-drag rectangle and the total
// pointer delta. The result is never clamped.
func (a *Adorner) DragMove(p image.Point) error {
	if !a.active {
		return nil
	}
	if a.owner.Parent() == nil {
		a.active = false
		return ErrDetachedContainer
	}
	r := resize(a.startRect, a.role, p.Sub(a.start))
	if c, ok := a.owner.(Constrainer); ok {
		r = c.Constrain(a.role, r)
	}
	a.owner.SetBounds(r)
	return nil
}

// DragEnd commits the geometry and releases the pointer.
func (a *Adorner) DragEnd() error {
	if !a.active {
		return nil
	}
	a.owner.commit()
	a.release()
	return nil
}

// Cancel restores the pre-drag geometry and releases the pointer.
func (a *Adorner) Cancel() error {
	if !a.active {
		return nil
	}
	a.owner.SetBounds(a.startRect)
	a.release()
	return nil
}

func (a *Adorner) release() {
	a.active = false
	if s := a.owner.Parent(); s != nil && s.active == a {
		s.active = nil
	}
}

// resize applies delta d to r as the given role would.
func resize(r Rect, role Role, d image.Point) Rect {
	switch role {
	case RoleMove:
		return r.Add(d)
	case RoleTopLeft, RoleLeft, RoleBottomLeft:
		r.Left += d.X
		r.Width -= d.X
	case RoleTopRight, RoleRight, RoleBottomRight:
		r.Width += d.X
	}
	switch role {
	case RoleTopLeft, RoleTop, RoleTopRight:
		r.Top += d.Y
		r.Height -= d.Y
	case RoleBottomLeft, RoleBottom, RoleBottomRight:
		r.Height += d.Y
	}
	return r
}

// movesLeft reports whether role drags the Left edge.
func movesLeft(role Role) bool {
	return role == RoleTopLeft || role == RoleLeft || role == RoleBottomLeft
}

func movesTop(role Role) bool {
	return role == RoleTopLeft || role == RoleTop || role == RoleTopRight
}
