package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/geom"
)

// Grabber is the pointer-drag half of physics.Space.
type Grabber interface {
	Grab(x, y float64) bool
	MoveGrab(x, y float64)
	Release()
	Dragging() bool
}

// DragSystem lets the left mouse button pick up and throw blocks. Presses
// outside area (the form strip) are left to the UI.
type DragSystem struct {
	grabber Grabber
	area    geom.Rect
}

func NewDragSystem(grabber Grabber, area geom.Rect) *DragSystem {
	return &DragSystem{grabber: grabber, area: area}
}

func (d *DragSystem) Update(w *ecs.World) {
	if d == nil || d.grabber == nil {
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && d.area.Contains(x, y) {
		d.grabber.Grab(x, y)
	}

	if !d.grabber.Dragging() {
		return
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		d.grabber.Release()
		return
	}
	d.grabber.MoveGrab(x, y)
}
