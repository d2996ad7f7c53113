package geom

import "math"

// Op is a path drawing command.
type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Cmd is one path command. MoveTo and LineTo use (X, Y). QuadTo uses the
// control point (CX, CY) and ends at (X, Y). Close uses nothing.
type Cmd struct {
	Op     Op
	CX, CY float64
	X, Y   float64
}

// Path is a renderer-independent list of commands. Renderers replay it onto
// their own path type.
type Path []Cmd

// RoundRect builds a closed rectangle contour with quarter-circle corners of
// radius r: four straight edges joined by four quadratic arcs, starting at the
// end of the top-left corner and running clockwise in screen space.
// The radius is clamped to half the shorter side.
func RoundRect(x, y, w, h, r float64) Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))

	return Path{
		{Op: OpMoveTo, X: x + r, Y: y},
		{Op: OpLineTo, X: x + w - r, Y: y},
		{Op: OpQuadTo, CX: x + w, CY: y, X: x + w, Y: y + r},
		{Op: OpLineTo, X: x + w, Y: y + h - r},
		{Op: OpQuadTo, CX: x + w, CY: y + h, X: x + w - r, Y: y + h},
		{Op: OpLineTo, X: x + r, Y: y + h},
		{Op: OpQuadTo, CX: x, CY: y + h, X: x, Y: y + h - r},
		{Op: OpLineTo, X: x, Y: y + r},
		{Op: OpQuadTo, CX: x, CY: y, X: x + r, Y: y},
		{Op: OpClose},
	}
}

// Closed reports whether the path ends with a Close command and its last
// drawn point returns to the starting point.
func (p Path) Closed() bool {
	if len(p) < 2 || p[0].Op != OpMoveTo || p[len(p)-1].Op != OpClose {
		return false
	}
	last := p[len(p)-2]
	return last.X == p[0].X && last.Y == p[0].Y
}

// Bounds returns the box spanned by every point and control point in the
// path. A quadratic segment never leaves the hull of its control polygon, so
// the box always contains the contour. For RoundRect it is exact since the
// straight edges touch all four sides.
func (p Path) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, c := range p {
		switch c.Op {
		case OpMoveTo, OpLineTo:
			grow(c.X, c.Y)
		case OpQuadTo:
			grow(c.CX, c.CY)
			grow(c.X, c.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
