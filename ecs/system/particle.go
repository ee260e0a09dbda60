package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
)

// ParticleSystem integrates particles and retires spent ones.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem { return &ParticleSystem{} }

func (s *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.ParticleComponent.Kind(), func(e ecs.Entity, p *component.Particle) {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel = p.Vel.Add(cp.Vector{Y: p.Gravity})
		p.Life -= p.Decay
		if p.Life <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
