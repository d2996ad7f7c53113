package component

// BoundaryTag marks the static ground and wall entities.
type BoundaryTag struct{}

var BoundaryTagComponent = NewComponent[BoundaryTag]()
