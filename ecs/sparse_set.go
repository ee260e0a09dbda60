package ecs

// SparseSet stores one component type keyed by entity slot id. Values are
// kept as `any` and cast back by the generic accessors in generics.go.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int
}

// Has returns true if the entity currently owns a value in the set.
func (s *SparseSet) Has(e Entity) bool {
	if s == nil {
		return false
	}
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	if !s.Has(e) {
		return nil
	}
	return s.denseValues[s.sparse[int(e.id())-1]]
}

// Set inserts or updates a component for e.
func (s *SparseSet) Set(e Entity, v any) {
	if s == nil || !e.Valid() {
		return
	}
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx].id() == e.id() {
		// Same slot: either an update or a stale generation being replaced.
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the component for e if present. Dense order is kept so
// iteration stays in insertion order.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	idx := s.sparse[int(e.id())-1]
	copy(s.denseEntities[idx:], s.denseEntities[idx+1:])
	copy(s.denseValues[idx:], s.denseValues[idx+1:])
	last := len(s.denseEntities) - 1
	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	for i := idx; i < last; i++ {
		s.sparse[int(s.denseEntities[i].id())-1] = i
	}
	s.sparse[int(e.id())-1] = -1
	return true
}

// Len returns the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns a copy of the dense entity list, safe to range over while
// the set is being mutated.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	out := make([]Entity, len(s.denseEntities))
	copy(out, s.denseEntities)
	return out
}
