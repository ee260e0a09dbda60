package system

import (
	"math"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/prefabs"
)

// PlayerControllerSystem runs the attack timers and turns horizontal input
// into velocity.
type PlayerControllerSystem struct {
	tuning *prefabs.Tuning
}

func NewPlayerControllerSystem(t *prefabs.Tuning) *PlayerControllerSystem {
	return &PlayerControllerSystem{tuning: t}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	pl := s.tuning.Player
	at := s.tuning.Attack
	st := p.state

	if st.AttackCooldown > 0 {
		st.AttackCooldown--
	}
	if st.AttackTimer > 0 {
		st.AttackTimer--
	} else {
		st.Attacking = false
	}
	if p.input.AttackPressed && st.AttackCooldown <= 0 {
		st.Attacking = true
		st.AttackTimer = at.DurationTicks
		st.AttackCooldown = at.CooldownTicks
	}

	switch {
	case p.input.MoveX > 0:
		if p.vel.X < pl.MaxSpeed {
			p.vel.X = math.Min(p.vel.X+pl.Acceleration, pl.MaxSpeed)
		}
		st.FacingRight = true
	case p.input.MoveX < 0:
		if p.vel.X > -pl.MaxSpeed {
			p.vel.X = math.Max(p.vel.X-pl.Acceleration, -pl.MaxSpeed)
		}
		st.FacingRight = false
	default:
		p.vel.X *= pl.Friction
	}
}
