package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	debugOutline    = cp.FColor{R: 0.2, G: 0.2, B: 0.2, A: 1}
	debugStatic     = cp.FColor{R: 0.35, G: 0.35, B: 0.38, A: 1}
	debugDynamic    = cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
	debugConstraint = cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
	debugContact    = cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
)

// Canvas receives the primitives of a debug pass in world coordinates.
type Canvas interface {
	StrokeLine(a, b cp.Vector, clr cp.FColor)
	FillPolygon(verts []cp.Vector, clr cp.FColor)
}

// DebugDrawer adapts a Canvas to cp.Drawer. Static boundaries are always
// filled. Dynamic shapes get a transparent color and are skipped entirely
// unless Verbose is set, since the block renderer draws them itself. Verbose
// also shows constraints and contact points.
type DebugDrawer struct {
	Canvas  Canvas
	Verbose bool
}

var _ cp.Drawer = (*DebugDrawer)(nil)

// DrawDebug runs the engine's debug pass for the whole space onto c.
func (s *Space) DrawDebug(c Canvas, verbose bool) {
	if s == nil || s.space == nil || c == nil {
		return
	}
	cp.DrawSpace(s.space, &DebugDrawer{Canvas: c, Verbose: verbose})
}

func (d *DebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 || fill.A == 0 {
		return
	}
	d.outline(circlePoints(pos, radius), outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.Canvas.StrokeLine(pos, end, outline)
}

// DrawSegment is only called for constraints and contact points.
func (d *DebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	if !d.Verbose {
		return
	}
	d.Canvas.StrokeLine(a, b, fill)
}

func (d *DebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if fill.A == 0 {
		return
	}
	d.Canvas.StrokeLine(a, b, outline)
	if radius > 0 {
		d.outline(circlePoints(a, radius), outline)
		d.outline(circlePoints(b, radius), outline)
	}
}

func (d *DebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 || fill.A == 0 {
		return
	}
	verts = verts[:count]
	if len(verts) >= 3 {
		d.Canvas.FillPolygon(verts, fill)
	}
	d.outline(verts, outline)
}

// DrawDot is only called for constraint anchors.
func (d *DebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if !d.Verbose {
		return
	}
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.Canvas.StrokeLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.Canvas.StrokeLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

// Flags is advisory. cp.DrawSpace walks constraints and contacts regardless,
// so DrawSegment and DrawDot gate on Verbose themselves.
func (d *DebugDrawer) Flags() uint {
	if d.Verbose {
		return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS | cp.DRAW_COLLISION_POINTS
	}
	return cp.DRAW_SHAPES
}

func (d *DebugDrawer) OutlineColor() cp.FColor {
	return debugOutline
}

func (d *DebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Body().GetType() == cp.BODY_STATIC {
		return debugStatic
	}
	if d.Verbose {
		return debugDynamic
	}
	return cp.FColor{}
}

func (d *DebugDrawer) ConstraintColor() cp.FColor {
	return debugConstraint
}

func (d *DebugDrawer) CollisionPointColor() cp.FColor {
	return debugContact
}

func (d *DebugDrawer) Data() interface{} {
	return nil
}

func (d *DebugDrawer) outline(verts []cp.Vector, clr cp.FColor) {
	for i := range verts {
		d.Canvas.StrokeLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func circlePoints(center cp.Vector, radius float64) []cp.Vector {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	return points
}
