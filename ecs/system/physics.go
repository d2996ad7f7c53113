package system

import (
	"github.com/milk9111/msgfall/common"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/physics"
)

// PhysicsSystem advances the engine by one fixed tick per Update and copies
// body poses into Transform components once the step is done.
type PhysicsSystem struct {
	engine physics.Engine
	dt     float64
	world  *ecs.World
}

func NewPhysicsSystem(engine physics.Engine) *PhysicsSystem {
	return &PhysicsSystem{
		engine: engine,
		dt:     1.0 / common.TPS,
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.engine == nil || w == nil {
		return
	}

	if ps.world == nil {
		ps.world = w
		ps.engine.OnAfterStep(ps.syncTransforms)
	}

	ps.engine.Step(ps.dt)
}

func (ps *PhysicsSystem) syncTransforms() {
	ecs.ForEach2(ps.world, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Body.Static() {
			return
		}
		t.X, t.Y = pb.Body.Position()
		t.Rotation = pb.Body.Angle()
	})
}
