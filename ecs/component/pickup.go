package component

type PickupKind int

const (
	PickupBone PickupKind = iota
	PickupLifeToken
)

func (k PickupKind) String() string {
	if k == PickupLifeToken {
		return "tennis_ball"
	}
	return "bone"
}

// Pickup is a collectible. Collected only ever goes false to true.
type Pickup struct {
	Kind      PickupKind
	Collected bool
}

var PickupComponent = NewComponent[Pickup]()
