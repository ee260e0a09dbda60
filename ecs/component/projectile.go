package component

type Projectile struct {
	Kind    string
	Gravity float64
}

var ProjectileComponent = NewComponent[Projectile]()
