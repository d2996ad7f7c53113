package ecs

import "strconv"

// Entity is a slot id handed out by a World. Message blocks and boundaries
// live for the whole session, so slots are never recycled.
type Entity uint32

type entityID uint32

func (e Entity) id() entityID {
	return entityID(e)
}

func (e Entity) String() string {
	return "e" + strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether e was ever handed out by a World.
func (e Entity) Valid() bool {
	return e.id() > 0
}
