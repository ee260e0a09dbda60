package entity

import (
	"fmt"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
)

// NewSpike places a hazard standing on the surface point of decl. The
// contact box is the square shrunk by the tuned inset.
func NewSpike(w *ecs.World, t *prefabs.Tuning, decl levels.ObstacleDecl) (ecs.Entity, error) {
	size := t.Items.HazardSize
	if size <= 0 {
		size = 48
	}
	kind := decl.Type
	if kind == "" {
		kind = "spike"
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Kind: kind, Inset: t.Items.HazardInset}); err != nil {
		return 0, fmt.Errorf("spike: add hazard: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: decl.X, Y: decl.Y - size}); err != nil {
		return 0, fmt.Errorf("spike: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: size, Height: size}); err != nil {
		return 0, fmt.Errorf("spike: add body: %w", err)
	}
	return e, nil
}
