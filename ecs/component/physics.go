package component

import "github.com/milk9111/msgfall/physics"

// PhysicsBody links an entity to its engine body.
type PhysicsBody struct {
	Body physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
