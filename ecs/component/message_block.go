package component

import "image/color"

// MessageBlock is the client-side metadata of a message body. The engine
// only knows the collision box; everything here is for drawing.
type MessageBlock struct {
	// ID is the store identifier, empty for anonymous blocks.
	ID     string
	Text   string
	Width  float64
	Height float64
	Color  color.NRGBA
}

var MessageBlockComponent = NewComponent[MessageBlock]()
