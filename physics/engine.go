// Package physics wraps the 2D physics engine behind a small capability
// interface. Game code only creates bodies, steps the world, lists bodies
// and hooks the end of a step, so any compliant engine can stand in.
package physics

// Box is a rectangular collision shape centered on (X, Y).
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Material holds the surface and mass properties of a body.
type Material struct {
	Density    float64
	Elasticity float64
	Friction   float64
}

// Body is an engine-owned rigid body.
type Body interface {
	Position() (x, y float64)
	Angle() float64
	Static() bool
	UserData() any
	SetUserData(v any)
}

// Engine is the capability set the game needs from a physics library.
type Engine interface {
	CreateBody(shape Box, material Material) Body
	Step(dt float64)
	Bodies() []Body
	OnAfterStep(fn func())
}
