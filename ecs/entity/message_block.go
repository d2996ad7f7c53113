package entity

import (
	"fmt"

	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/physics"
)

// NewMessageBlock creates the entity for an already spawned message body and
// stores the entity in the body's user data.
func NewMessageBlock(w *ecs.World, body physics.Body, block component.MessageBlock) (ecs.Entity, error) {
	if body == nil {
		return 0, fmt.Errorf("message block: nil body")
	}

	e := ecs.CreateEntity(w)

	x, y := body.Position()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Rotation: body.Angle()}); err != nil {
		return 0, fmt.Errorf("message block: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.MessageBlockComponent.Kind(), &block); err != nil {
		return 0, fmt.Errorf("message block: add block: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
		return 0, fmt.Errorf("message block: add physics body: %w", err)
	}

	body.SetUserData(e)
	return e, nil
}
