package system

import (
	"math/rand"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// HazardSystem damages the player on every tick they overlap a hazard's
// tightened contact box.
type HazardSystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewHazardSystem(t *prefabs.Tuning, rng *rand.Rand) *HazardSystem {
	return &HazardSystem{tuning: t, rng: rng}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}

	ecs.ForEach3(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, h *component.Hazard, tr *component.Transform, body *component.Body) {
			contact := component.Bounds(tr, body).Inset(h.Inset, h.Inset)
			if p.bounds().Inset(h.Inset, h.Inset).Intersects(contact) {
				damagePlayer(w, s.tuning, s.rng, p, tr.X)
			}
		})
}
