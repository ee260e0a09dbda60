package component

// Player carries the state the movement and combat rules mutate. Timers are
// in ticks; InvulnerableUntil is an absolute Clock tick.
type Player struct {
	Grounded    bool
	FacingRight bool

	InvulnerableUntil uint64

	Attacking      bool
	AttackTimer    int
	AttackCooldown int

	CheckpointX float64
	CheckpointY float64
}

var PlayerComponent = NewComponent[Player]()
