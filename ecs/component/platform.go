package component

import "github.com/milk9111/corgi/levels"

// Platform is immutable solid ground.
type Platform struct {
	Surface levels.Surface
}

// Checkpoint reports whether landing here may move the respawn point.
func (p *Platform) Checkpoint() bool {
	return p.Surface != levels.SurfaceLava
}

var PlatformComponent = NewComponent[Platform]()
