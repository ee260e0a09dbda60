package entity

import (
	"fmt"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// NewPlayer spawns the player at the tuned spawn point, facing right, with
// the checkpoint on the spawn point.
func NewPlayer(w *ecs.World, t *prefabs.Tuning) (ecs.Entity, error) {
	return NewPlayerAt(w, t, t.Player.SpawnX, t.Player.SpawnY)
}

func NewPlayerAt(w *ecs.World, t *prefabs.Tuning, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: t.Player.Width, Height: t.Player.Height}); err != nil {
		return 0, fmt.Errorf("player: add body: %w", err)
	}
	player := &component.Player{
		FacingRight: true,
		CheckpointX: x,
		CheckpointY: y,
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), player); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	return e, nil
}
