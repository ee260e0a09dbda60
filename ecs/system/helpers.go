package system

import (
	"math/rand"

	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/ecs/entity"
	"github.com/milk9111/corgi/prefabs"
)

// playerRefs bundles the player's components for one system pass.
type playerRefs struct {
	entity ecs.Entity
	tr     *component.Transform
	vel    *component.Velocity
	body   *component.Body
	state  *component.Player
	input  *component.Input
}

func findPlayer(w *ecs.World) (playerRefs, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return playerRefs{}, false
	}
	p := playerRefs{entity: e}
	if p.tr, ok = ecs.Get(w, e, component.TransformComponent.Kind()); !ok {
		return playerRefs{}, false
	}
	if p.vel, ok = ecs.Get(w, e, component.VelocityComponent.Kind()); !ok {
		return playerRefs{}, false
	}
	if p.body, ok = ecs.Get(w, e, component.BodyComponent.Kind()); !ok {
		return playerRefs{}, false
	}
	if p.state, ok = ecs.Get(w, e, component.PlayerComponent.Kind()); !ok {
		return playerRefs{}, false
	}
	if p.input, ok = ecs.Get(w, e, component.InputComponent.Kind()); !ok {
		p.input = &component.Input{}
	}
	return p, true
}

func (p playerRefs) bounds() common.Rect {
	return component.Bounds(p.tr, p.body)
}

type solid struct {
	rect     common.Rect
	platform *component.Platform
}

func solids(w *ecs.World) []solid {
	var out []solid
	ecs.ForEach3(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, p *component.Platform, t *component.Transform, b *component.Body) {
			out = append(out, solid{rect: component.Bounds(t, b), platform: p})
		})
	return out
}

func currentTick(w *ecs.World) uint64 {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	c, _ := ecs.Get(w, e, component.ClockComponent.Kind())
	return c.Tick
}

func currentRun(w *ecs.World) *component.Run {
	e, ok := ecs.First(w, component.RunComponent.Kind())
	if !ok {
		return &component.Run{}
	}
	r, ok := ecs.Get(w, e, component.RunComponent.Kind())
	if !ok {
		return &component.Run{}
	}
	return r
}

func cameraOf(w *ecs.World) (*component.Camera, bool) {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.CameraComponent.Kind())
}

// damagePlayer applies the contact damage rule. Invulnerability is the only
// guard: within the window nothing happens. Reports whether a life was lost.
func damagePlayer(w *ecs.World, t *prefabs.Tuning, rng *rand.Rand, p playerRefs, fromX float64) bool {
	tick := currentTick(w)
	if tick <= p.state.InvulnerableUntil {
		return false
	}
	run := currentRun(w)
	run.Lives--
	p.state.InvulnerableUntil = tick + uint64(t.Player.InvulnerableTicks)
	p.vel.Y = t.Player.KnockbackY
	if p.tr.X < fromX {
		p.vel.X = -t.Player.KnockbackX
	} else {
		p.vel.X = t.Player.KnockbackX
	}
	burst(w, t, rng, p.tr.X, p.tr.Y, t.Particles.Colors.PlayerHurt, t.Particles.Burst.Count)
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerDamaged, Data: run.Lives})
	return true
}

func burst(w *ecs.World, t *prefabs.Tuning, rng *rand.Rand, x, y float64, c prefabs.YAMLColor, count int) {
	entity.SpawnBurst(w, rng, t.Particles.Burst, x, y, c.NRGBA, count)
}
