package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

type ParticleKind int

const (
	ParticleBurst ParticleKind = iota
	ParticleFirework
)

// Particle is purely visual. It is removed once Life drops to zero.
type Particle struct {
	Kind    ParticleKind
	Pos     cp.Vector
	Vel     cp.Vector
	Life    float64
	Decay   float64
	Gravity float64
	Size    float64
	Color   color.NRGBA
}

var ParticleComponent = NewComponent[Particle]()
