package system

import (
	"math/rand"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// ProjectileSystem flies projectiles under gravity. A projectile ends on the
// player (damaging them), on a platform, or below the world.
type ProjectileSystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewProjectileSystem(t *prefabs.Tuning, rng *rand.Rand) *ProjectileSystem {
	return &ProjectileSystem{tuning: t, rng: rng}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, havePlayer := findPlayer(w)
	platforms := solids(w)
	c := s.tuning.Particles.Colors.Projectile
	count := s.tuning.Particles.Burst.Count

	ecs.ForEach3(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, proj *component.Projectile, tr *component.Transform, vel *component.Velocity) {
			body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
			if !ok {
				ecs.DestroyEntity(w, e)
				return
			}
			tr.X += vel.X
			tr.Y += vel.Y
			vel.Y += proj.Gravity
			r := component.Bounds(tr, body)

			if havePlayer && p.bounds().Intersects(r) {
				damagePlayer(w, s.tuning, s.rng, p, tr.X)
				ecs.DestroyEntity(w, e)
				burst(w, s.tuning, s.rng, tr.X, tr.Y, c, count)
				return
			}

			hitGround := false
			for _, plat := range platforms {
				if r.Intersects(plat.rect) {
					hitGround = true
					break
				}
			}
			if hitGround {
				ecs.DestroyEntity(w, e)
				burst(w, s.tuning, s.rng, tr.X, tr.Y, c, count)
			} else if tr.Y > s.tuning.World.Height {
				ecs.DestroyEntity(w, e)
			}
		})
}
