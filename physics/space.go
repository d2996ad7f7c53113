package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/msgfall/geom"
)

const (
	collisionTypeBoundary cp.CollisionType = iota + 1
	collisionTypeBlock
)

const (
	defaultIterations    = 20
	defaultThickness     = 60.0
	defaultDragMaxForce  = 50000.0
	defaultDragStiffness = 0.2
	grabRadius           = 5.0
)

// Config controls the one-time setup of a Space.
type Config struct {
	Gravity           float64
	Iterations        int
	BoundaryThickness float64
	DragStiffness     float64
	DragMaxForce      float64
}

// Space is the Chipmunk implementation of Engine. It owns the cp.Space, the
// static boundaries and the pointer-drag constraint.
type Space struct {
	space     *cp.Space
	viewport  geom.Rect
	bodies    []*body
	byCP      map[*cp.Body]*body
	afterStep []func()

	dragStiffness float64
	dragMaxForce  float64
	mouseBody     *cp.Body
	mouseJoint    *cp.Constraint
}

var _ Engine = (*Space)(nil)

type body struct {
	cp     *cp.Body
	shape  *cp.Shape
	static bool
	data   any
}

func (b *body) Position() (float64, float64) {
	p := b.cp.Position()
	return p.X, p.Y
}

func (b *body) Angle() float64 {
	return b.cp.Angle()
}

func (b *body) Static() bool {
	return b.static
}

func (b *body) UserData() any {
	return b.data
}

func (b *body) SetUserData(v any) {
	b.data = v
}

// NewSpace creates a Chipmunk space with downward gravity and three static
// boundaries (ground, left wall, right wall) sized to viewport. The
// boundaries keep this geometry for the life of the space.
func NewSpace(cfg Config, viewport geom.Rect) *Space {
	if cfg.Iterations <= 0 {
		cfg.Iterations = defaultIterations
	}
	if cfg.BoundaryThickness <= 0 {
		cfg.BoundaryThickness = defaultThickness
	}
	if cfg.DragStiffness <= 0 || cfg.DragStiffness > 1 {
		cfg.DragStiffness = defaultDragStiffness
	}
	if cfg.DragMaxForce <= 0 {
		cfg.DragMaxForce = defaultDragMaxForce
	}

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	s := &Space{
		space:         space,
		viewport:      viewport,
		byCP:          make(map[*cp.Body]*body),
		dragStiffness: cfg.DragStiffness,
		dragMaxForce:  cfg.DragMaxForce,
		mouseBody:     cp.NewKinematicBody(),
	}
	s.buildBoundaries(cfg.BoundaryThickness)
	return s
}

// Viewport returns the rectangle the boundaries were built for.
func (s *Space) Viewport() geom.Rect {
	return s.viewport
}

// SetGravity changes the vertical gravity of the space.
func (s *Space) SetGravity(g float64) {
	if s == nil || s.space == nil {
		return
	}
	s.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// Gravity returns the vertical gravity of the space.
func (s *Space) Gravity() float64 {
	return s.space.Gravity().Y
}

// CreateBody adds a dynamic box body to the space.
func (s *Space) CreateBody(shape Box, material Material) Body {
	density := material.Density
	if density <= 0 {
		density = 0.001
	}
	mass := density * shape.Width * shape.Height
	moment := cp.MomentForBox(mass, shape.Width, shape.Height)

	cpBody := s.space.AddBody(cp.NewBody(mass, moment))
	cpBody.SetPosition(cp.Vector{X: shape.X, Y: shape.Y})

	cpShape := s.space.AddShape(cp.NewBox(cpBody, shape.Width, shape.Height, 0))
	cpShape.SetElasticity(material.Elasticity)
	cpShape.SetFriction(material.Friction)
	cpShape.SetCollisionType(collisionTypeBlock)

	b := &body{cp: cpBody, shape: cpShape}
	s.bodies = append(s.bodies, b)
	s.byCP[cpBody] = b
	return b
}

// Step advances the simulation by dt seconds and then runs the after-step hooks.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil {
		return
	}
	s.space.Step(dt)
	for _, fn := range s.afterStep {
		fn()
	}
}

// Bodies returns every body in creation order, boundaries first.
func (s *Space) Bodies() []Body {
	out := make([]Body, 0, len(s.bodies))
	for _, b := range s.bodies {
		out = append(out, b)
	}
	return out
}

// OnAfterStep registers fn to run at the end of every Step.
func (s *Space) OnAfterStep(fn func()) {
	if fn == nil {
		return
	}
	s.afterStep = append(s.afterStep, fn)
}

func (s *Space) buildBoundaries(thickness float64) {
	vp := s.viewport
	boxes := []cp.BB{
		// ground: top edge on the viewport bottom
		{L: vp.X - thickness, B: vp.Bottom(), R: vp.Right() + thickness, T: vp.Bottom() + thickness},
		// left wall
		{L: vp.X - thickness, B: vp.Y - thickness, R: vp.X, T: vp.Bottom() + thickness},
		// right wall
		{L: vp.Right(), B: vp.Y - thickness, R: vp.Right() + thickness, T: vp.Bottom() + thickness},
	}
	for _, bb := range boxes {
		cpBody := cp.NewStaticBody()
		s.space.AddBody(cpBody)
		shape := cp.NewBox2(cpBody, bb, 0)
		// Chipmunk multiplies the coefficients of both shapes, so the
		// boundaries use 1 and leave each block's own values in charge.
		shape.SetElasticity(1)
		shape.SetFriction(1)
		shape.SetCollisionType(collisionTypeBoundary)
		s.space.AddShape(shape)

		b := &body{cp: cpBody, shape: shape, static: true}
		s.bodies = append(s.bodies, b)
		s.byCP[cpBody] = b
	}
	log.Printf("PhysicsWorld: built %d boundaries for viewport %.0fx%.0f", len(boxes), vp.Width, vp.Height)
}

// Grab attaches the pointer constraint to the dynamic body nearest to (x, y).
// It reports whether a body was grabbed. Static bodies are never grabbed.
func (s *Space) Grab(x, y float64) bool {
	if s == nil || s.space == nil {
		return false
	}
	if s.mouseJoint != nil {
		return true
	}

	point := cp.Vector{X: x, Y: y}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES}
	info := s.space.PointQueryNearest(point, grabRadius, filter)
	if info == nil || info.Shape == nil {
		return false
	}
	target, ok := s.byCP[info.Shape.Body()]
	if !ok || target.static {
		return false
	}

	nearest := point
	if info.Distance > 0 {
		nearest = info.Point
	}

	s.mouseBody.SetPosition(point)
	s.mouseBody.SetVelocityVector(cp.Vector{})
	joint := cp.NewPivotJoint2(s.mouseBody, target.cp, cp.Vector{}, target.cp.WorldToLocal(nearest))
	joint.SetMaxForce(s.dragMaxForce)
	// Chipmunk's error bias is the fraction of error left after one second.
	// Keeping 1-stiffness per step at 60 steps a second matches a spring
	// that closes dragStiffness of the gap every step.
	joint.SetErrorBias(math.Pow(1-s.dragStiffness, 60))
	s.space.AddConstraint(joint)
	s.mouseJoint = joint
	return true
}

// MoveGrab moves the pointer anchor towards (x, y).
func (s *Space) MoveGrab(x, y float64) {
	if s == nil || s.mouseBody == nil {
		return
	}
	target := cp.Vector{X: x, Y: y}
	pos := s.mouseBody.Position()
	next := pos.Lerp(target, 0.25)
	s.mouseBody.SetVelocityVector(next.Sub(pos).Mult(60))
	s.mouseBody.SetPosition(next)
}

// Release drops the pointer constraint, if any.
func (s *Space) Release() {
	if s == nil || s.mouseJoint == nil {
		return
	}
	s.space.RemoveConstraint(s.mouseJoint)
	s.mouseJoint = nil
}

// Dragging reports whether a body is currently held by the pointer.
func (s *Space) Dragging() bool {
	return s != nil && s.mouseJoint != nil
}
