package entity

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// SpawnBurst scatters count particles from (x, y) in a square spread.
func SpawnBurst(w *ecs.World, rng *rand.Rand, b prefabs.BurstTuning, x, y float64, c color.NRGBA, count int) {
	for i := 0; i < count; i++ {
		vel := cp.Vector{X: (rng.Float64() - 0.5) * b.Speed, Y: (rng.Float64() - 0.5) * b.Speed}
		spawnParticle(w, &component.Particle{
			Kind:    component.ParticleBurst,
			Pos:     cp.Vector{X: x, Y: y},
			Vel:     vel,
			Life:    b.Life,
			Decay:   b.Decay,
			Gravity: b.Gravity,
			Size:    rng.Float64()*b.SizeRange + b.SizeMin,
			Color:   c,
		})
	}
}

// SpawnFirework bursts a ring of one random colour from (x, y).
func SpawnFirework(w *ecs.World, rng *rand.Rand, f prefabs.FireworkTuning, x, y float64) {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if len(f.Colors) > 0 {
		c = f.Colors[rng.Intn(len(f.Colors))].NRGBA
	}
	for i := 0; i < f.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64()*(f.Speed) + f.SpeedMin
		spawnParticle(w, &component.Particle{
			Kind:    component.ParticleFirework,
			Pos:     cp.Vector{X: x, Y: y},
			Vel:     cp.ForAngle(angle).Mult(speed),
			Life:    f.Life,
			Decay:   f.Decay,
			Gravity: f.Gravity,
			Size:    rng.Float64()*f.SizeRange + f.SizeMin,
			Color:   c,
		})
	}
}

func spawnParticle(w *ecs.World, p *component.Particle) {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.ParticleComponent.Kind(), p)
}
