package ecs

// entityStore tracks entity generations and free ids. Slot ids start at 1 so
// the zero Entity stays invalid.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []entityID
	live  []Entity
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	s.alive[id-1] = true
	e := makeEntity(id, s.gen[id-1])
	s.live = append(s.live, e)
	return e
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.id())
	for i, le := range s.live {
		if le == e {
			s.live = append(s.live[:i], s.live[i+1:]...)
			break
		}
	}
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) entities() []Entity {
	out := make([]Entity, len(s.live))
	copy(out, s.live)
	return out
}
