package system

import (
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
)

// ClockSystem advances the tick counter every timer is measured against.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem { return &ClockSystem{} }

func (s *ClockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.ClockComponent.Kind(), func(_ ecs.Entity, c *component.Clock) {
		c.Tick++
	})
}
