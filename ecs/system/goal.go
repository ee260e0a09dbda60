package system

import (
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// GoalSystem completes the level when the player touches the goal, unless a
// boss is still alive. A locked goal nudges a player moving right back out.
type GoalSystem struct {
	tuning *prefabs.Tuning
}

func NewGoalSystem(t *prefabs.Tuning) *GoalSystem {
	return &GoalSystem{tuning: t}
}

func (s *GoalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}

	locked := BossAlive(w)
	ecs.ForEach3(w, component.GoalTagComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, _ *component.GoalTag, tr *component.Transform, body *component.Body) {
			if !p.bounds().Intersects(component.Bounds(tr, body)) {
				return
			}
			if locked {
				if p.vel.X > 0 {
					p.tr.X -= s.tuning.Items.GoalPushBack
				}
				return
			}
			w.Events().Push(ecs.Event{Type: ecs.EventLevelComplete})
		})
}

// BossAlive reports whether any boss enemy remains in the level.
func BossAlive(w *ecs.World) bool {
	alive := false
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(_ ecs.Entity, e *component.Enemy) {
		if e.IsBoss() && !e.Defeated {
			alive = true
		}
	})
	return alive
}
