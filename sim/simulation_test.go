package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/input"
	"github.com/milk9111/corgi/levelgen"
	"github.com/milk9111/corgi/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, d *levels.Description, gen *levelgen.Service) *Simulation {
	t.Helper()
	s, err := New(Options{Seed: 1, Level: d, Generator: gen})
	require.NoError(t, err)
	return s
}

func setLives(s *Simulation, lives int) {
	e, _ := ecs.First(s.World(), component.RunComponent.Kind())
	r, _ := ecs.Get(s.World(), e, component.RunComponent.Kind())
	r.Lives = lives
}

func setScore(s *Simulation, score int) {
	e, _ := ecs.First(s.World(), component.RunComponent.Kind())
	r, _ := ecs.Get(s.World(), e, component.RunComponent.Kind())
	r.Score = score
}

func count[T any](s *Simulation, h component.ComponentHandle[T]) int {
	return ecs.Count(s.World(), h.Kind())
}

func flat(extra func(d *levels.Description)) *levels.Description {
	d := &levels.Description{
		ThemeName: "Flat",
		Platforms: []levels.PlatformDecl{{X: 0, Y: 500, Width: 2000, Type: levels.SurfaceGrass}},
	}
	if extra != nil {
		extra(d)
	}
	return d
}

func TestNewStartsInMenu(t *testing.T) {
	s := newSim(t, nil, nil)
	assert.Equal(t, StateMenu, s.State())
	assert.Equal(t, "Corgi Meadow", s.Level().ThemeName)
	assert.Equal(t, component.Run{Lives: 3}, s.Run())

	s.Tick(input.Controls{Held: input.MoveRight})
	assert.Zero(t, s.Snapshot().Tick, "menu runs no simulation")
}

func TestInstantiationMatchesDeclaredCounts(t *testing.T) {
	d := levels.Default()
	s := newSim(t, d, nil)

	check := func() {
		assert.Equal(t, len(d.Platforms), count(s, component.PlatformComponent))
		assert.Equal(t, len(d.Enemies), count(s, component.EnemyComponent))
		assert.Equal(t, len(d.Obstacles), count(s, component.HazardComponent))
		assert.Equal(t, len(d.Collectibles)+len(d.TennisBalls), count(s, component.PickupComponent))
		assert.Equal(t, 1, count(s, component.GoalTagComponent))
		assert.Equal(t, 1, count(s, component.PlayerTagComponent))
		assert.Zero(t, count(s, component.ProjectileComponent))
		assert.Zero(t, count(s, component.ParticleComponent))
	}

	require.NoError(t, s.Start())
	check()
	for i := 0; i < 120; i++ {
		s.Tick(input.Controls{Held: input.MoveRight | input.Jump})
	}
	require.NoError(t, s.ReturnToMenu())
	require.NoError(t, s.Start())
	check()
}

func TestStartResetsRun(t *testing.T) {
	s := newSim(t, flat(nil), nil)
	require.NoError(t, s.Start())
	setLives(s, 1)
	s.Tick(input.Controls{})
	require.Equal(t, uint64(1), s.Snapshot().Tick)

	setLives(s, 0)
	s.Tick(input.Controls{})
	require.Equal(t, StateGameOver, s.State())
	require.NoError(t, s.Restart())

	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, component.Run{Lives: 3}, s.Run())
	assert.Zero(t, s.Snapshot().Tick)
}

func TestLivesExhaustedOnNextTick(t *testing.T) {
	s := newSim(t, flat(func(d *levels.Description) {
		d.Obstacles = []levels.ObstacleDecl{{X: 100, Y: 500, Type: "spike"}}
	}), nil)
	require.NoError(t, s.Start())
	setLives(s, 1)

	for i := 0; i < 100 && s.Run().Lives > 0; i++ {
		s.Tick(input.Controls{})
	}
	require.Zero(t, s.Run().Lives)
	assert.Equal(t, StatePlaying, s.State(), "the damaging tick completes")

	tick := s.Snapshot().Tick
	assert.Nil(t, s.Tick(input.Controls{}))
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, tick, s.Snapshot().Tick, "no rules ran on the transition tick")

	s.Tick(input.Controls{})
	assert.Equal(t, tick, s.Snapshot().Tick)
}

func TestReachingGoalCompletesLevel(t *testing.T) {
	s := newSim(t, flat(func(d *levels.Description) {
		d.Goal = &levels.Point{X: 120, Y: 500}
	}), nil)
	require.NoError(t, s.Start())

	for i := 0; i < 60 && s.State() == StatePlaying; i++ {
		s.Tick(input.Controls{})
	}
	require.Equal(t, StateLevelComplete, s.State())

	tick := s.Snapshot().Tick
	fireworks := false
	for i := 0; i < 600; i++ {
		s.Tick(input.Controls{Held: input.MoveRight})
		fireworks = fireworks || count(s, component.ParticleComponent) > 0
	}
	assert.Equal(t, tick, s.Snapshot().Tick, "celebration does not advance the rules")
	assert.True(t, fireworks)

	require.NoError(t, s.Start())
	assert.Equal(t, StatePlaying, s.State())
}

func TestBossBlocksGoal(t *testing.T) {
	s := newSim(t, flat(func(d *levels.Description) {
		d.Goal = &levels.Point{X: 300, Y: 500}
		d.Enemies = []levels.EnemyDecl{{X: 1800, Y: 500, Type: "bear"}}
	}), nil)
	require.NoError(t, s.Start())

	for i := 0; i < 100; i++ {
		s.Tick(input.Controls{Held: input.MoveRight})
		require.Equal(t, StatePlaying, s.State())
	}
	snap := s.Snapshot()
	require.NotNil(t, snap.Goal)
	assert.True(t, snap.GoalLocked)
}

func TestInvalidTransitions(t *testing.T) {
	s := newSim(t, flat(nil), nil)
	assert.ErrorIs(t, s.Restart(), ErrInvalidTransition)
	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, s.RequestGeneration(context.Background(), levelgen.DefaultParams()), ErrInvalidTransition)
	require.NoError(t, s.ReturnToMenu())
	assert.ErrorIs(t, s.RequestGeneration(context.Background(), levelgen.DefaultParams()), ErrNoGenerator)
}

func TestSetLevelWhilePlayingKeepsRun(t *testing.T) {
	s := newSim(t, flat(nil), nil)
	require.NoError(t, s.Start())
	setLives(s, 2)

	require.NoError(t, s.SetLevel(levels.Default()))

	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 2, s.Run().Lives)
	assert.Equal(t, "Corgi Meadow", s.Snapshot().Theme)
}

func TestSetLevelOnEndScreenKeepsScore(t *testing.T) {
	s := newSim(t, flat(func(d *levels.Description) {
		d.Goal = &levels.Point{X: 120, Y: 500}
	}), nil)
	require.NoError(t, s.Start())
	setScore(s, 1234)
	for i := 0; i < 60 && s.State() == StatePlaying; i++ {
		s.Tick(input.Controls{})
	}
	require.Equal(t, StateLevelComplete, s.State())

	require.NoError(t, s.SetLevel(levels.Default()))
	assert.Equal(t, StateLevelComplete, s.State())
	assert.Equal(t, 1234, s.Run().Score)
	assert.Equal(t, 1234, s.Snapshot().Score)

	require.NoError(t, s.Start())
	setScore(s, 77)
	setLives(s, 0)
	s.Tick(input.Controls{})
	require.Equal(t, StateGameOver, s.State())

	require.NoError(t, s.SetLevel(flat(nil)))
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, component.Run{Score: 77}, s.Run())
}

func TestSetLevelInMenuResetsRun(t *testing.T) {
	s := newSim(t, flat(nil), nil)
	setScore(s, 50)
	require.NoError(t, s.SetLevel(levels.Default()))
	assert.Equal(t, component.Run{Lives: 3}, s.Run())
}

type gatedGenerator struct {
	release chan struct{}
	calls   atomic.Int32
	err     error
}

func (g *gatedGenerator) Name() string { return "gated" }

func (g *gatedGenerator) Generate(ctx context.Context, p levelgen.Params) (*levels.Description, error) {
	g.calls.Add(1)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	return &levels.Description{
		ThemeName: p.Theme,
		Platforms: []levels.PlatformDecl{{X: 0, Y: 500, Width: 900, Type: levels.SurfaceStone}},
	}, nil
}

func pollUntilDone(t *testing.T, s *Simulation) levelgen.Result {
	t.Helper()
	var res levelgen.Result
	require.Eventually(t, func() bool {
		var ok bool
		res, ok = s.PollGeneration()
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	return res
}

func TestGenerationIsNotReentrant(t *testing.T) {
	gen := &gatedGenerator{release: make(chan struct{})}
	s := newSim(t, nil, levelgen.NewService(gen))
	p := levelgen.DefaultParams()
	p.Theme = "Snowy peaks"

	require.NoError(t, s.RequestGeneration(context.Background(), p))
	assert.Equal(t, StateGenerating, s.State())
	assert.ErrorIs(t, s.RequestGeneration(context.Background(), p), ErrGenerationInProgress)
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	_, ok := s.PollGeneration()
	assert.False(t, ok)

	close(gen.release)
	res := pollUntilDone(t, s)

	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, StateMenu, s.State())
	assert.NoError(t, res.Err)
	assert.Equal(t, "gated", res.Source)
	assert.Equal(t, "Snowy peaks", s.Level().ThemeName)
	last, ok := s.LastGeneration()
	require.True(t, ok)
	assert.Equal(t, res.Source, last.Source)

	require.NoError(t, s.Start())
	assert.Equal(t, 1, count(s, component.PlatformComponent))
}

func TestGenerationFailureFallsBack(t *testing.T) {
	gen := &gatedGenerator{release: make(chan struct{}), err: errors.New("boom")}
	close(gen.release)
	s := newSim(t, flat(nil), levelgen.NewService(gen))

	require.NoError(t, s.RequestGeneration(context.Background(), levelgen.DefaultParams()))
	res := pollUntilDone(t, s)

	assert.Error(t, res.Err)
	assert.Equal(t, levelgen.FallbackSource, res.Source)
	assert.Equal(t, levels.Default().ThemeName, s.Level().ThemeName)
	assert.Equal(t, StateMenu, s.State())
}

func TestSnapshotCullsAndCopies(t *testing.T) {
	s := newSim(t, nil, nil)
	require.NoError(t, s.Start())
	snap := s.Snapshot()

	require.True(t, snap.HasPlayer)
	assert.Equal(t, "Corgi Meadow", snap.Theme)
	assert.Equal(t, 3, snap.Lives)
	assert.Len(t, snap.Enemies, 1, "only the first cat is near the camera")
	assert.Len(t, snap.Pickups, 2)
	assert.Empty(t, snap.Hazards)
	require.NotNil(t, snap.Goal)
	assert.False(t, snap.GoalLocked)
	assert.Nil(t, snap.Boss)
	assert.NotEmpty(t, snap.Decorations)

	snap.Player.X = 9999
	snap.Enemies[0].X = 9999
	again := s.Snapshot()
	assert.NotEqual(t, 9999.0, again.Player.X)
	assert.NotEqual(t, 9999.0, again.Enemies[0].X)
}

func TestSnapshotShowsNearbyBoss(t *testing.T) {
	s := newSim(t, flat(func(d *levels.Description) {
		d.Enemies = []levels.EnemyDecl{{X: 600, Y: 500, Type: "bear"}}
	}), nil)
	require.NoError(t, s.Start())

	snap := s.Snapshot()
	require.NotNil(t, snap.Boss)
	assert.Equal(t, s.Tuning().Enemies.Boss.HP, snap.Boss.HP)
	assert.Equal(t, snap.Boss.HP, snap.Boss.MaxHP)
}

func TestEventsReachCaller(t *testing.T) {
	s := newSim(t, flat(func(d *levels.Description) {
		d.Obstacles = []levels.ObstacleDecl{{X: 100, Y: 500, Type: "spike"}}
	}), nil)
	require.NoError(t, s.Start())

	var got []ecs.EventType
	for i := 0; i < 60; i++ {
		for _, evt := range s.Tick(input.Controls{}) {
			got = append(got, evt.Type)
		}
	}
	assert.Contains(t, got, ecs.EventPlayerDamaged)
}
