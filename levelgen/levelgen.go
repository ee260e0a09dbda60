// Package levelgen produces level descriptions from a theme prompt and a few
// enumerated knobs. Generators may fail; Service absorbs every failure and
// always hands back a playable level.
package levelgen

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/milk9111/corgi/levels"
)

var (
	ErrMissingCredential = errors.New("levelgen: missing API credential")
	ErrEmptyResponse     = errors.New("levelgen: empty response")
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

type Density string

const (
	DensityLow    Density = "Low"
	DensityMedium Density = "Medium"
	DensityHigh   Density = "High"
)

var (
	difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
	lengths      = []Length{LengthShort, LengthMedium, LengthLong}
	densities    = []Density{DensityLow, DensityMedium, DensityHigh}
)

func (d Difficulty) Next() Difficulty { return next(difficulties, d) }
func (l Length) Next() Length         { return next(lengths, l) }
func (d Density) Next() Density       { return next(densities, d) }

func next[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// WorldWidth is the horizontal extent a generated level should span.
func (l Length) WorldWidth() int {
	switch l {
	case LengthMedium:
		return 6000
	case LengthLong:
		return 12000
	default:
		return 3000
	}
}

// Params is one generation request.
type Params struct {
	Theme      string
	Difficulty Difficulty
	Length     Length
	Density    Density
}

func DefaultParams() Params {
	return Params{
		Theme:      "Sunny park",
		Difficulty: DifficultyMedium,
		Length:     LengthShort,
		Density:    DensityMedium,
	}
}

// Normalized fills unknown selectors with their defaults.
func (p Params) Normalized() Params {
	def := DefaultParams()
	if !contains(difficulties, p.Difficulty) {
		p.Difficulty = def.Difficulty
	}
	if !contains(lengths, p.Length) {
		p.Length = def.Length
	}
	if !contains(densities, p.Density) {
		p.Density = def.Density
	}
	return p
}

func (p Params) String() string {
	return fmt.Sprintf("%q %s/%s/%s", p.Theme, p.Difficulty, p.Length, p.Density)
}

// hash is stable for equal params, so seeded generators stay deterministic.
func (p Params) hash() int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.String()))
	return int64(h.Sum64() >> 1)
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Generator turns params into a level description.
type Generator interface {
	Name() string
	Generate(ctx context.Context, p Params) (*levels.Description, error)
}
