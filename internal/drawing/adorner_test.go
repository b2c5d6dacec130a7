package drawing

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdornerResizeRoles(t *testing.T) {
	start := Rect{10, 20, 30, 40}
	d := image.Pt(5, -3)
	want := map[Role]Rect{
		RoleTopLeft:     {15, 17, 25, 43},
		RoleTop:         {10, 17, 30, 43},
		RoleTopRight:    {10, 17, 35, 43},
		RoleRight:       {10, 20, 35, 40},
		RoleBottomRight: {10, 20, 35, 37},
		RoleBottom:      {10, 20, 30, 37},
		RoleBottomLeft:  {15, 20, 25, 37},
		RoleLeft:        {15, 20, 25, 40},
		RoleMove:        {15, 17, 30, 40},
	}
	for role, r := range want {
		assert.Equal(t, r, resize(start, role, d), role.String())
	}
}

func TestAdornerDragCrossesOppositeEdge(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	c := NewRectangleContainer(s, Rect{20, 20, 10, 10}, DefaultStyle())
	s.Add(c)
	a := adornerFor(c, RoleTopLeft)
	require.NoError(t, a.DragStart(image.Pt(20, 20)))
	require.NoError(t, a.DragMove(image.Pt(45, 50)))
	assert.Equal(t, Rect{45, 50, -15, -20}, c.Bounds(), "geometry is not clamped mid-drag")
	require.NoError(t, a.DragEnd())
	assert.Equal(t, Rect{30, 30, 15, 20}, c.Bounds())
	assert.Nil(t, s.ActiveAdorner())
}

func TestAdornerCancelRestoresExactRect(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	orig := Rect{-7, 13, 31, -9}
	c := NewRectangleContainer(s, orig, DefaultStyle())
	s.Add(c)
	for _, role := range resizeRoles {
		a := adornerFor(c, role)
		require.NotNil(t, a, role.String())
		require.NoError(t, a.DragStart(image.Pt(3, 3)))
		require.NoError(t, a.DragMove(image.Pt(70, -40)))
		require.NoError(t, a.DragMove(image.Pt(-13, 99)))
		require.NoError(t, a.Cancel())
		assert.Equal(t, orig, c.Bounds(), role.String())
		assert.False(t, a.Active())
	}
	assert.Nil(t, s.ActiveAdorner())
}

func TestAdornerFocusConflict(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	a1 := adornerFor(NewRectangleContainer(s, Rect{0, 0, 10, 10}, DefaultStyle()), RoleRight)
	a2 := adornerFor(NewEllipseContainer(s, Rect{50, 50, 10, 10}, DefaultStyle()), RoleLeft)

	require.NoError(t, a1.DragStart(image.Pt(10, 5)))
	assert.ErrorIs(t, a2.DragStart(image.Pt(50, 55)), ErrAdornerFocusConflict)
	assert.False(t, a2.Active())
	assert.Same(t, a1, s.ActiveAdorner())

	require.NoError(t, a1.DragEnd())
	require.NoError(t, a2.DragStart(image.Pt(50, 55)))
	assert.Same(t, a2, s.ActiveAdorner())
}

func TestDetachReleasesFocus(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	c1 := NewRectangleContainer(s, Rect{0, 0, 10, 10}, DefaultStyle())
	c2 := NewRectangleContainer(s, Rect{50, 50, 10, 10}, DefaultStyle())
	a1 := adornerFor(c1, RoleBottomRight)
	require.NoError(t, a1.DragStart(image.Pt(10, 10)))

	c1.Detach()
	assert.False(t, a1.Active())
	assert.Nil(t, s.ActiveAdorner())
	require.NoError(t, adornerFor(c2, RoleMove).DragStart(image.Pt(55, 55)))
}

func TestAdornerDetachedOwner(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	c := NewRectangleContainer(s, Rect{0, 0, 10, 10}, DefaultStyle())
	s.Add(c)
	a := adornerFor(c, RoleBottomRight)
	s.Remove(c)
	assert.ErrorIs(t, a.DragStart(image.Pt(10, 10)), ErrDetachedContainer)
	assert.Empty(t, c.Adorners())
}

func TestAdornerDragInvalidatesOldAndNew(t *testing.T) {
	var got []image.Rectangle
	s := NewSurface(whiteImage(200, 200), WithInvalidateListener(func(r image.Rectangle) { got = append(got, r) }))
	st := DefaultStyle()
	st.LineThickness = 1
	c := NewRectangleContainer(s, Rect{50, 50, 20, 20}, st)
	a := adornerFor(c, RoleMove)
	require.NoError(t, a.DragStart(image.Pt(60, 60)))
	got = nil
	require.NoError(t, a.DragMove(image.Pt(100, 60)))
	require.Len(t, got, 2)
	m := s.chromeMargin()
	assert.Equal(t, image.Rect(50, 50, 70, 70).Inset(-m), got[0])
	assert.Equal(t, image.Rect(90, 50, 110, 70).Inset(-m), got[1])
}

func TestAdornerHitRegionScalesWithZoom(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	c := NewRectangleContainer(s, Rect{40, 40, 20, 20}, DefaultStyle())
	a := adornerFor(c, RoleBottomRight)
	assert.Equal(t, image.Pt(60, 60), a.Location())
	assert.Equal(t, image.Rect(56, 56, 64, 64), a.HitRect(1))
	assert.Equal(t, image.Rect(58, 58, 62, 62), a.HitRect(2))
	assert.True(t, a.HitTest(image.Pt(63, 63), 1))
	assert.False(t, a.HitTest(image.Pt(63, 63), 2))
	assert.Equal(t, CursorResizeNWSE, a.Cursor())
	assert.Equal(t, CursorMove, adornerFor(c, RoleMove).Cursor())
}

func TestStepLabelStaysSquare(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	c := NewStepLabelContainer(s, Rect{0, 0, 20, 20}, DefaultStyle(), 1)

	assert.Equal(t, Rect{0, 0, 50, 50}, c.Constrain(RoleBottomRight, Rect{0, 0, 50, 30}))
	assert.Equal(t, Rect{-20, -20, 40, 40}, c.Constrain(RoleTopLeft, Rect{10, -20, 10, 40}))
	assert.Equal(t, Rect{5, 5, 20, 10}, c.Constrain(RoleMove, Rect{5, 5, 20, 10}))

	a := adornerFor(c, RoleBottomRight)
	require.NoError(t, a.DragStart(image.Pt(20, 20)))
	require.NoError(t, a.DragMove(image.Pt(50, 30)))
	r := c.Bounds()
	assert.Equal(t, abs(r.Width), abs(r.Height))
}

func TestLineExposesEndpointAdorners(t *testing.T) {
	s := NewSurface(whiteImage(100, 100))
	c := NewArrowContainer(s, Rect{80, 80, -60, -30}, DefaultStyle())
	roles := []Role{}
	for _, a := range c.Adorners() {
		roles = append(roles, a.Role())
	}
	assert.Equal(t, []Role{RoleTopLeft, RoleBottomRight, RoleMove}, roles)

	a := adornerFor(c, RoleBottomRight)
	require.NoError(t, a.DragStart(image.Pt(20, 50)))
	require.NoError(t, a.DragMove(image.Pt(10, 40)))
	require.NoError(t, a.DragEnd())
	assert.Equal(t, Rect{80, 80, -70, -40}, c.Bounds(), "lines keep their direction")
	assert.True(t, c.Contains(image.Pt(45, 60)))
	assert.False(t, c.Contains(image.Pt(80, 10)))
}
