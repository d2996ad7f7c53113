package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// FormHeight is the strip at the bottom of the window reserved for the
	// submission form. The simulation viewport is everything above it.
	FormHeight = 80

	TPS = 60
)
