package entity

import (
	"fmt"

	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// NewCamera adds the camera singleton at the left edge of the level.
func NewCamera(w *ecs.World, t *prefabs.Tuning) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	smooth := t.Camera.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 0.1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Lead:       t.Camera.Lead,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
