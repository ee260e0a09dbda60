package entity

import (
	"fmt"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
)

// NewPickup places an uncollected pickup with its top-left corner at p.
func NewPickup(w *ecs.World, t *prefabs.Tuning, kind component.PickupKind, p levels.Point) (ecs.Entity, error) {
	size := t.Items.CollectibleSize
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: kind}); err != nil {
		return 0, fmt.Errorf("pickup: add %s: %w", kind, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}); err != nil {
		return 0, fmt.Errorf("pickup: add %s transform: %w", kind, err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: size, Height: size}); err != nil {
		return 0, fmt.Errorf("pickup: add %s body: %w", kind, err)
	}
	return e, nil
}

// NewGoal places the doghouse standing on p.
func NewGoal(w *ecs.World, t *prefabs.Tuning, p levels.Point) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.GoalTagComponent.Kind(), &component.GoalTag{}); err != nil {
		return 0, fmt.Errorf("goal: add tag: %w", err)
	}
	tr := &component.Transform{X: p.X, Y: p.Y - t.Items.GoalHeight}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, fmt.Errorf("goal: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: t.Items.GoalWidth, Height: t.Items.GoalHeight}); err != nil {
		return 0, fmt.Errorf("goal: add body: %w", err)
	}
	return e, nil
}
