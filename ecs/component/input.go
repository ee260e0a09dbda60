package component

// Input stores per-tick logical controls for an entity.
type Input struct {
	MoveX         float64
	Jump          bool
	AttackPressed bool
}

var InputComponent = NewComponent[Input]()
