package component

// Hazard marks a static entity that damages on overlap. Contact uses the
// Body shrunk by Inset on the sides and top.
type Hazard struct {
	Kind  string
	Inset float64
}

var HazardComponent = NewComponent[Hazard]()
