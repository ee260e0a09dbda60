package system

import (
	"testing"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkerTurnsAtLedge(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 500, Y: 500, Type: "cat"}},
	})
	placePlayer(player(t, w), 0)
	ai := NewEnemyAISystem(tuning, rng)
	tr, vel := enemyTransform(t, w, 0)

	turned := false
	for i := 0; i < 100; i++ {
		ai.Update(w)
		require.LessOrEqual(t, tr.X+tuning.Enemies.Walker.Width, meadow.X+meadow.Width)
		if vel.X < 0 {
			turned = true
		}
	}
	assert.True(t, turned)
}

func TestWalkerTurnsAtWall(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Platforms: []levels.PlatformDecl{meadow, {X: 300, Y: 440, Width: 50, Type: levels.SurfaceStone}},
		Enemies:   []levels.EnemyDecl{{X: 200, Y: 500, Type: "cat"}},
	})
	placePlayer(player(t, w), 0)
	ai := NewEnemyAISystem(tuning, rng)
	tr, vel := enemyTransform(t, w, 0)

	turned := false
	for i := 0; i < 100; i++ {
		ai.Update(w)
		require.LessOrEqual(t, tr.X+tuning.Enemies.Walker.Width, 300.0)
		if vel.X < 0 {
			turned = true
		}
	}
	assert.True(t, turned)
}

func TestFlierStaysNearPatrol(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 300, Y: 300, Type: "bat"}},
	})
	ai := NewEnemyAISystem(tuning, rng)
	clock := NewClockSystem()
	tr, _ := enemyTransform(t, w, 0)
	require.Equal(t, 300-tuning.Enemies.Flier.Height, tr.Y, "fliers are not snapped")

	half := tuning.Enemies.PatrolHalfWidth
	speed := tuning.Enemies.Flier.Speed
	for i := 0; i < 400; i++ {
		clock.Update(w)
		ai.Update(w)
		require.GreaterOrEqual(t, tr.X, 300-half-speed)
		require.LessOrEqual(t, tr.X, 300+half+speed)
	}
}

func TestRangedEnemyFiresWithinRange(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 400, Y: 500, Type: "squirrel"}},
	})
	placePlayer(player(t, w), 100)
	squirrel := enemies(w)[0].Kind.(*component.Ranged)
	squirrel.Cooldown = 0

	NewEnemyAISystem(tuning, rng).Update(w)

	var shots []*component.Velocity
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.VelocityComponent.Kind(),
		func(_ ecs.Entity, _ *component.Projectile, v *component.Velocity) {
			shots = append(shots, v)
		})
	require.Len(t, shots, 1)
	rt := tuning.Enemies.Ranged
	assert.Equal(t, -rt.ProjectileSpeed, shots[0].X)
	assert.GreaterOrEqual(t, shots[0].Y, rt.MinLaunchVY)
	assert.LessOrEqual(t, shots[0].Y, rt.MaxLaunchVY)
	assert.GreaterOrEqual(t, squirrel.Cooldown, rt.CooldownBase)
	assert.Less(t, squirrel.Cooldown, rt.CooldownBase+rt.CooldownJitter)
}

func TestRangedEnemyHoldsFireOutOfRange(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Platforms: []levels.PlatformDecl{{X: 0, Y: 500, Width: 2000, Type: levels.SurfaceGrass}},
		Enemies:   []levels.EnemyDecl{{X: 1500, Y: 500, Type: "squirrel"}},
	})
	placePlayer(player(t, w), 100)
	enemies(w)[0].Kind.(*component.Ranged).Cooldown = 0

	NewEnemyAISystem(tuning, rng).Update(w)

	assert.Zero(t, ecs.Count(w, component.ProjectileComponent.Kind()))
}

func TestBossChargesAlongGround(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 300, Y: 500, Type: "bear"}},
	})
	placePlayer(player(t, w), 100)
	tr, vel := enemyTransform(t, w, 0)
	startY := tr.Y

	NewEnemyAISystem(tuning, rng).Update(w)

	assert.Equal(t, 300-tuning.Enemies.Boss.ChargeSpeed, tr.X)
	assert.Equal(t, -tuning.Enemies.Boss.ChargeSpeed, vel.X)
	assert.Equal(t, startY, tr.Y)
}

func TestBossStopsInMeleeRange(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 300, Y: 500, Type: "bear"}},
	})
	placePlayer(player(t, w), 330)
	tr, vel := enemyTransform(t, w, 0)

	NewEnemyAISystem(tuning, rng).Update(w)

	assert.Equal(t, 300.0, tr.X)
	assert.Equal(t, 0.0, vel.X)
}

func TestUnknownEnemyTypeStaysPut(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 300, Y: 500, Type: "dragon"}},
	})
	placePlayer(player(t, w), 0)
	ai := NewEnemyAISystem(tuning, rng)
	tr, vel := enemyTransform(t, w, 0)
	startY := tr.Y

	for i := 0; i < 10; i++ {
		ai.Update(w)
	}

	assert.Equal(t, 300.0, tr.X)
	assert.Equal(t, startY, tr.Y)
	assert.Equal(t, tuning.Enemies.Walker.Speed, vel.X)
	walker, ok := enemies(w)[0].Kind.(*component.Walker)
	require.True(t, ok)
	assert.True(t, walker.Inert)
}

func TestBossStaysOnLedgeAbovePlayer(t *testing.T) {
	ledge := levels.PlatformDecl{X: 400, Y: 300, Width: 300, Type: levels.SurfaceStone}
	w, tuning, rng := newTestWorld(t, levels.Description{
		Platforms: []levels.PlatformDecl{{X: 0, Y: 500, Width: 1000, Type: levels.SurfaceGrass}, ledge},
		Enemies:   []levels.EnemyDecl{{X: 450, Y: 300, Type: "bear"}},
	})
	placePlayer(player(t, w), 100)
	ai := NewEnemyAISystem(tuning, rng)
	tr, vel := enemyTransform(t, w, 0)
	bt := tuning.Enemies.Boss
	require.Equal(t, ledge.Y-bt.Height, tr.Y)

	for i := 0; i < 200; i++ {
		ai.Update(w)
		require.GreaterOrEqual(t, tr.X+bt.Width/2, ledge.X, "boss walked off the ledge")
		require.Equal(t, ledge.Y-bt.Height, tr.Y)
	}
	assert.Less(t, tr.X, 450.0)
	assert.Equal(t, -0.01, vel.X)
}

func TestBossFallsWithoutGround(t *testing.T) {
	w, tuning, rng := newTestWorld(t, levels.Description{
		Enemies: []levels.EnemyDecl{{X: 300, Y: 500, Type: "bear"}},
	})
	placePlayer(player(t, w), 100)
	tr, _ := enemyTransform(t, w, 0)
	tr.Y = 200

	NewEnemyAISystem(tuning, rng).Update(w)

	assert.Equal(t, 300.0, tr.X)
	assert.Equal(t, 200+tuning.Enemies.Boss.FallSpeed, tr.Y)
}
