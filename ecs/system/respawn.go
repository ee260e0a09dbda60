package system

import (
	"math"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/prefabs"
)

// RespawnSystem returns a player who fell out of the world to the last
// checkpoint at the cost of a life. Running out of lives is left to the
// next tick's entry check.
type RespawnSystem struct {
	tuning *prefabs.Tuning
}

func NewRespawnSystem(t *prefabs.Tuning) *RespawnSystem { return &RespawnSystem{tuning: t} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	if p.tr.Y <= s.tuning.World.Height+s.tuning.World.FallMargin {
		return
	}

	p.tr.X = p.state.CheckpointX
	p.tr.Y = p.state.CheckpointY
	p.vel.X, p.vel.Y = 0, 0
	if cam, ok := cameraOf(w); ok {
		cam.X = math.Max(0, p.tr.X-cam.Lead)
	}
	run := currentRun(w)
	run.Lives--
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerRespawned, Data: run.Lives})
}
