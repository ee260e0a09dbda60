package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/ecs/entity"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
	"github.com/stretchr/testify/require"
)

var meadow = levels.PlatformDecl{X: 0, Y: 500, Width: 600, Type: levels.SurfaceGrass}

// newTestWorld loads a level made of d on top of a plain ground strip and
// advances the clock to tick 1 so damage can land.
func newTestWorld(t *testing.T, d levels.Description) (*ecs.World, *prefabs.Tuning, *rand.Rand) {
	t.Helper()
	if len(d.Platforms) == 0 {
		d.Platforms = []levels.PlatformDecl{meadow}
	}
	tuning := prefabs.DefaultTuning()
	rng := rand.New(rand.NewSource(7))
	w := ecs.NewWorld()
	require.NoError(t, entity.LoadLevelToWorld(w, &d, tuning, rng, component.Run{Lives: tuning.Player.StartLives}))
	NewClockSystem().Update(w)
	return w, tuning, rng
}

func player(t *testing.T, w *ecs.World) playerRefs {
	t.Helper()
	p, ok := findPlayer(w)
	require.True(t, ok, "player missing")
	return p
}

// placePlayer puts the player standing on the ground strip at x.
func placePlayer(p playerRefs, x float64) {
	p.tr.X = x
	p.tr.Y = meadow.Y - p.body.Height
	p.vel.X, p.vel.Y = 0, 0
	p.state.Grounded = true
}

func enemies(w *ecs.World) []*component.Enemy {
	var out []*component.Enemy
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(_ ecs.Entity, e *component.Enemy) {
		out = append(out, e)
	})
	return out
}

func enemyTransform(t *testing.T, w *ecs.World, id int) (*component.Transform, *component.Velocity) {
	t.Helper()
	var tr *component.Transform
	var vel *component.Velocity
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		if en.ID == id {
			tr, _ = ecs.Get(w, e, component.TransformComponent.Kind())
			vel, _ = ecs.Get(w, e, component.VelocityComponent.Kind())
		}
	})
	require.NotNil(t, tr, "enemy %d missing", id)
	return tr, vel
}

func eventTypes(w *ecs.World) []ecs.EventType {
	var out []ecs.EventType
	for _, evt := range w.Events().Drain() {
		out = append(out, evt.Type)
	}
	return out
}
