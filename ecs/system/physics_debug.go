package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/physics"
)

// DebugDrawable is a physics space that can run its own debug pass.
type DebugDrawable interface {
	DrawDebug(c physics.Canvas, verbose bool)
}

// PhysicsDebugSystem is the engine's own render pass. It fills the static
// boundaries. With Verbose set it also outlines every collision box and shows
// the pointer-drag joint and contact points.
type PhysicsDebugSystem struct {
	space   DebugDrawable
	Verbose bool
}

func NewPhysicsDebugSystem(space DebugDrawable, verbose bool) *PhysicsDebugSystem {
	return &PhysicsDebugSystem{space: space, Verbose: verbose}
}

func (p *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if p == nil || p.space == nil || screen == nil {
		return
	}
	p.space.DrawDebug(screenCanvas{screen}, p.Verbose)
}

// screenCanvas draws debug primitives straight onto an ebiten image.
type screenCanvas struct {
	dst *ebiten.Image
}

func (c screenCanvas) StrokeLine(a, b cp.Vector, clr cp.FColor) {
	vector.StrokeLine(c.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, toNRGBA(clr), true)
}

func (c screenCanvas) FillPolygon(verts []cp.Vector, clr cp.FColor) {
	var path vector.Path
	path.MoveTo(float32(verts[0].X), float32(verts[0].Y))
	for _, v := range verts[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()
	fillPath(c.dst, &path, toNRGBA(clr))
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
