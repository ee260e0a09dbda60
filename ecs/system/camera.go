package system

import (
	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
)

// CameraSystem eases the camera toward the player, leading by Camera.Lead.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		cam.X = common.Lerp(cam.X, p.tr.X-cam.Lead, cam.Smoothness)
		if cam.X < 0 {
			cam.X = 0
		}
	})
}
