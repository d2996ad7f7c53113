package component

// Transform is the world-space pose of an entity, copied from its physics
// body after every step.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
