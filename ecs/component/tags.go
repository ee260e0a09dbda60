package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// GoalTag marks the level exit.
type GoalTag struct{}

var GoalTagComponent = NewComponent[GoalTag]()
