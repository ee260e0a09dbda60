package component

import "github.com/milk9111/corgi/common"

// Transform is the top-left corner of an entity in world units, y down.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is in world units per tick.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Body is the axis-aligned hitbox size anchored at Transform.
type Body struct {
	Width  float64
	Height float64
}

var BodyComponent = NewComponent[Body]()

// Bounds builds the world rectangle for a transform/body pair.
func Bounds(t *Transform, b *Body) common.Rect {
	return common.Rect{X: t.X, Y: t.Y, Width: b.Width, Height: b.Height}
}
