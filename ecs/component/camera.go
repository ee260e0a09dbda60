package component

// Camera is the horizontal scroll offset; X is never negative.
type Camera struct {
	X          float64
	Lead       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
