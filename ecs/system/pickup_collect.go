package system

import (
	"math/rand"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// PickupCollectSystem collects pickups the player touches. Collected pickups
// stay in the world but are inert.
type PickupCollectSystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewPickupCollectSystem(t *prefabs.Tuning, rng *rand.Rand) *PickupCollectSystem {
	return &PickupCollectSystem{tuning: t, rng: rng}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	run := currentRun(w)
	colors := s.tuning.Particles.Colors
	count := s.tuning.Particles.Burst.Count

	ecs.ForEach3(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, pickup *component.Pickup, tr *component.Transform, body *component.Body) {
			if pickup.Collected || !p.bounds().Intersects(component.Bounds(tr, body)) {
				return
			}
			pickup.Collected = true
			switch pickup.Kind {
			case component.PickupLifeToken:
				run.Lives++
				run.Score += s.tuning.Scoring.LifeToken
				burst(w, s.tuning, s.rng, tr.X, tr.Y, colors.LifeToken, count)
			default:
				run.Score += s.tuning.Scoring.Bone
				burst(w, s.tuning, s.rng, tr.X, tr.Y, colors.Bone, count)
			}
		})
}
