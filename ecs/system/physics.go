package system

import (
	"math/rand"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/prefabs"
)

// PhysicsSystem moves the player one axis at a time and resolves overlaps
// with platforms after each axis.
type PhysicsSystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewPhysicsSystem(t *prefabs.Tuning, rng *rand.Rand) *PhysicsSystem {
	return &PhysicsSystem{tuning: t, rng: rng}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	platforms := solids(w)
	s.moveHorizontal(p, platforms)
	s.moveVertical(w, p, platforms)
}

func (s *PhysicsSystem) moveHorizontal(p playerRefs, platforms []solid) {
	p.tr.X += p.vel.X
	if p.tr.X < 0 {
		p.tr.X = 0
		p.vel.X = 0
	}

	for _, plat := range platforms {
		if !p.bounds().Intersects(plat.rect) {
			continue
		}
		if p.vel.X > 0 {
			p.tr.X = plat.rect.X - p.body.Width
			p.vel.X = 0
		} else if p.vel.X < 0 {
			p.tr.X = plat.rect.Right()
			p.vel.X = 0
		}
	}
}

func (s *PhysicsSystem) moveVertical(w *ecs.World, p playerRefs, platforms []solid) {
	pl := s.tuning.Player
	st := p.state

	if p.input.Jump && st.Grounded {
		p.vel.Y = pl.JumpVelocity
		st.Grounded = false
		burst(w, s.tuning, s.rng, p.tr.X+p.body.Width/2, p.tr.Y+p.body.Height, s.tuning.Particles.Colors.Jump, s.tuning.Particles.Burst.Count)
	}
	if !st.Grounded && p.vel.Y < 0 && !p.input.Jump {
		p.vel.Y *= pl.JumpCut
	}

	p.vel.Y += pl.Gravity
	p.tr.Y += p.vel.Y
	st.Grounded = false

	for _, plat := range platforms {
		if !p.bounds().Intersects(plat.rect) {
			continue
		}
		if p.vel.Y > 0 {
			p.tr.Y = plat.rect.Y - p.body.Height
			p.vel.Y = 0
			st.Grounded = true
			if plat.platform.Checkpoint() {
				st.CheckpointX = p.tr.X
				st.CheckpointY = p.tr.Y
			}
		} else if p.vel.Y < 0 {
			p.tr.Y = plat.rect.Bottom()
			p.vel.Y = 0
		}
	}
}
