package ecs

// entityStore hands out slot ids in creation order. Slot ids start at 1 so
// the zero Entity is never valid.
type entityStore struct {
	count int
}

func (s *entityStore) create() Entity {
	s.count++
	return Entity(s.count)
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	return id > 0 && int(id) <= s.count
}

// entity returns the live handle for a slot id.
func (s *entityStore) entity(id entityID) (Entity, bool) {
	e := Entity(id)
	if !s.isAlive(e) {
		return 0, false
	}
	return e, true
}
