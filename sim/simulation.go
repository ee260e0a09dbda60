package sim

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/ecs/entity"
	"github.com/milk9111/corgi/ecs/system"
	"github.com/milk9111/corgi/input"
	"github.com/milk9111/corgi/levelgen"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
)

var (
	ErrInvalidTransition    = errors.New("sim: invalid state transition")
	ErrGenerationInProgress = errors.New("sim: level generation already in progress")
	ErrNoGenerator          = errors.New("sim: no level generator configured")
)

type Options struct {
	Seed      int64
	Tuning    *prefabs.Tuning
	Level     *levels.Description
	Generator *levelgen.Service
	Debug     bool
}

// Simulation owns the world and every rule that mutates it. All methods
// are meant to be called from one goroutine; level generation is the only
// work that runs elsewhere, and its result is handed back via
// PollGeneration.
type Simulation struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
	world  *ecs.World
	state  State
	debug  bool

	level *levels.Description

	input       *system.InputSystem
	playing     *ecs.Scheduler
	celebrating *ecs.Scheduler

	generator *levelgen.Service
	results   chan levelgen.Result
	lastGen   *levelgen.Result
}

// New builds a simulation sitting in the menu with the level (or the
// built-in one) already instantiated behind it.
func New(opts Options) (*Simulation, error) {
	t := opts.Tuning
	if t == nil {
		t = prefabs.DefaultTuning()
	}
	d := opts.Level
	if d == nil {
		d = levels.Default()
	}

	s := &Simulation{
		tuning:    t,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		world:     ecs.NewWorld(),
		state:     StateMenu,
		debug:     opts.Debug,
		level:     d.Clone(),
		input:     system.NewInputSystem(),
		generator: opts.Generator,
		results:   make(chan levelgen.Result, 1),
	}
	s.playing = ecs.NewScheduler(
		system.NewClockSystem(),
		s.input,
		system.NewPlayerControllerSystem(t),
		system.NewPhysicsSystem(t, s.rng),
		system.NewEnemyAISystem(t, s.rng),
		system.NewCombatSystem(t, s.rng),
		system.NewProjectileSystem(t, s.rng),
		system.NewHazardSystem(t, s.rng),
		system.NewPickupCollectSystem(t, s.rng),
		system.NewGoalSystem(t),
		system.NewParticleSystem(),
		system.NewCameraSystem(),
		system.NewRespawnSystem(t),
	)
	s.celebrating = ecs.NewScheduler(
		system.NewFireworkSystem(t, s.rng),
		system.NewParticleSystem(),
	)

	if err := s.instantiate(s.freshRun()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) State() State { return s.state }

func (s *Simulation) Tuning() *prefabs.Tuning { return s.tuning }

// World exposes the ECS world for tests and debugging tools. Hosts draw
// from Snapshot instead.
func (s *Simulation) World() *ecs.World { return s.world }

// Level returns a copy of the level the simulation instantiates on Start.
func (s *Simulation) Level() *levels.Description { return s.level.Clone() }

// Run returns the current score and lives.
func (s *Simulation) Run() component.Run {
	if e, ok := ecs.First(s.world, component.RunComponent.Kind()); ok {
		if r, ok := ecs.Get(s.world, e, component.RunComponent.Kind()); ok {
			return *r
		}
	}
	return component.Run{}
}

// Tick advances one step with the controls sampled for it and returns the
// events the rules raised.
func (s *Simulation) Tick(controls input.Controls) []ecs.Event {
	switch s.state {
	case StatePlaying:
		if s.Run().Lives <= 0 {
			s.transition(StateGameOver)
			return nil
		}
		s.input.SetControls(controls)
		s.playing.Update(s.world)
	case StateLevelComplete:
		s.celebrating.Update(s.world)
	default:
		return nil
	}

	events := s.world.Events().Drain()
	for _, evt := range events {
		if evt.Type == ecs.EventLevelComplete && s.state == StatePlaying {
			s.transition(StateLevelComplete)
		}
	}
	return events
}

// Start begins a fresh run of the current level: score zero, full lives,
// every entity rebuilt. Valid from the menu and both end screens.
func (s *Simulation) Start() error {
	switch s.state {
	case StateMenu, StateGameOver, StateLevelComplete:
	default:
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	if err := s.instantiate(s.freshRun()); err != nil {
		return err
	}
	s.transition(StatePlaying)
	return nil
}

// Restart is Start from an end screen.
func (s *Simulation) Restart() error {
	if s.state != StateGameOver && s.state != StateLevelComplete {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, s.state)
	}
	return s.Start()
}

// ReturnToMenu abandons whatever was in flight and rebuilds the level
// behind the menu.
func (s *Simulation) ReturnToMenu() error {
	switch s.state {
	case StatePlaying, StateGameOver, StateLevelComplete:
	case StateMenu:
		return nil
	default:
		return fmt.Errorf("%w: menu from %s", ErrInvalidTransition, s.state)
	}
	if err := s.instantiate(s.freshRun()); err != nil {
		return err
	}
	s.transition(StateMenu)
	return nil
}

// SetLevel replaces the level. The world is rebuilt in place; while playing
// or on an end screen the run keeps its score and lives, and the next Start
// uses the new level.
func (s *Simulation) SetLevel(d *levels.Description) error {
	if d == nil {
		return fmt.Errorf("sim: set level: nil description")
	}
	if s.state == StateGenerating {
		return ErrGenerationInProgress
	}
	s.level = d.Clone()
	run := s.freshRun()
	switch s.state {
	case StatePlaying, StateGameOver, StateLevelComplete:
		run = s.Run()
	}
	return s.instantiate(run)
}

func (s *Simulation) freshRun() component.Run {
	return component.Run{Lives: s.tuning.Player.StartLives}
}

func (s *Simulation) instantiate(run component.Run) error {
	if err := entity.LoadLevelToWorld(s.world, s.level, s.tuning, s.rng, run); err != nil {
		return fmt.Errorf("sim: instantiate %q: %w", s.level.ThemeName, err)
	}
	return nil
}

func (s *Simulation) transition(next State) {
	if s.debug {
		log.Printf("sim: %s -> %s", s.state, next)
	}
	s.state = next
}
