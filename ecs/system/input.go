package system

import (
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/input"
)

// InputSystem copies the sampled controls onto every entity with Input.
type InputSystem struct {
	controls input.Controls
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// SetControls stores the controls the next Update applies.
func (i *InputSystem) SetControls(c input.Controls) {
	i.controls = c
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	c := i.controls
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.MoveX = c.Axis()
		in.Jump = c.Down(input.Jump)
		in.AttackPressed = c.JustPressed(input.Attack)
	})
}
