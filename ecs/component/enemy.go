package component

// Enemy is shared by every enemy kind. Kind holds the behaviour-specific
// state and is dispatched with a type switch.
type Enemy struct {
	ID       int
	Type     string
	Variant  int
	HitTimer int
	Defeated bool
	Kind     EnemyKind
}

var EnemyComponent = NewComponent[Enemy]()

// EnemyKind is implemented only by the kinds below.
type EnemyKind interface {
	enemyKind()
}

// Walker patrols along the ground and turns at walls and ledges. An inert
// walker keeps its body and speed but never moves.
type Walker struct {
	Inert bool
}

// Flier patrols between two x bounds, hovering, ignoring platforms.
type Flier struct {
	PatrolStart float64
	PatrolEnd   float64
}

// Ranged stands still and lobs projectiles at the player. Cooldown counts
// down in ticks.
type Ranged struct {
	Cooldown float64
}

// Boss chases the player and takes several hits to defeat.
type Boss struct {
	HP    int
	MaxHP int
}

func (*Walker) enemyKind() {}
func (*Flier) enemyKind()  {}
func (*Ranged) enemyKind() {}
func (*Boss) enemyKind()   {}

// IsBoss reports whether the enemy gates the goal.
func (e *Enemy) IsBoss() bool {
	_, ok := e.Kind.(*Boss)
	return ok
}

// HP returns the remaining hit points; kinds without a pool have one.
func (e *Enemy) HP() int {
	if b, ok := e.Kind.(*Boss); ok {
		return b.HP
	}
	if e.Defeated {
		return 0
	}
	return 1
}
