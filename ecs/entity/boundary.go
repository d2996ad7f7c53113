package entity

import (
	"fmt"

	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/physics"
)

// NewBoundaries registers every static engine body as a boundary entity.
// Boundary entities carry no MessageBlock, so the block overlay skips them.
func NewBoundaries(w *ecs.World, engine physics.Engine) ([]ecs.Entity, error) {
	var out []ecs.Entity
	for _, body := range engine.Bodies() {
		if !body.Static() || body.UserData() != nil {
			continue
		}

		e := ecs.CreateEntity(w)
		x, y := body.Position()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Rotation: body.Angle()}); err != nil {
			return nil, fmt.Errorf("boundary: add transform: %w", err)
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
			return nil, fmt.Errorf("boundary: add physics body: %w", err)
		}
		if err := ecs.Add(w, e, component.BoundaryTagComponent.Kind(), &component.BoundaryTag{}); err != nil {
			return nil, fmt.Errorf("boundary: add tag: %w", err)
		}
		body.SetUserData(e)
		out = append(out, e)
	}
	return out, nil
}
