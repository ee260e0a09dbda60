package component

import "image/color"

// Clock counts simulation ticks since the level was instantiated.
type Clock struct {
	Tick uint64
}

var ClockComponent = NewComponent[Clock]()

// Run holds the counters of the active run.
type Run struct {
	Score int
	Lives int
}

var RunComponent = NewComponent[Run]()

// LevelInfo is the cosmetic part of the level description.
type LevelInfo struct {
	ThemeName  string
	Background color.NRGBA
	Ground     color.NRGBA
	End        float64
}

var LevelInfoComponent = NewComponent[LevelInfo]()

type DecorationBand int

const (
	BandFar DecorationBand = iota
	BandNear
	BandFront
)

// Decoration is a scenery shape drawn with parallax; it never collides.
type Decoration struct {
	Band     DecorationBand
	X, Y     float64
	Width    float64
	Height   float64
	Parallax float64
	Color    color.NRGBA
}

var DecorationComponent = NewComponent[Decoration]()
