package ecs

import "github.com/milk9111/corgi/ecs/component"

// Add attaches value to e, replacing any previous value of the same kind.
// Components are stored by pointer so systems mutate them in place.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// First returns the first entity owning kind; used for singletons such as
// the player, the camera and the run counters.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s.Len() == 0 {
		return 0, false
	}
	return s.denseEntities[0], true
}

// Count returns how many entities own kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}

// ForEach visits every entity owning kind. It ranges over a snapshot, so fn
// may create or destroy entities; entities destroyed mid-loop are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(ka.ID(), false).Entities() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(ka.ID(), false).Entities() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
