package system

import (
	"math/rand"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/entity"
	"github.com/milk9111/corgi/prefabs"
)

// FireworkSystem occasionally sets off a firework somewhere on screen.
type FireworkSystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewFireworkSystem(t *prefabs.Tuning, rng *rand.Rand) *FireworkSystem {
	return &FireworkSystem{tuning: t, rng: rng}
}

func (s *FireworkSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	f := s.tuning.Particles.Firework
	if s.rng.Float64() >= f.Chance {
		return
	}
	camX := 0.0
	if cam, ok := cameraOf(w); ok {
		camX = cam.X
	}
	x := camX + s.rng.Float64()*f.SpawnWidth
	y := s.rng.Float64()*f.SpawnYRange + f.SpawnYMin
	entity.SpawnFirework(w, s.rng, f, x, y)
}
