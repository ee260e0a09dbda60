package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
)

// EnemyKindFor maps a declared type name to its behaviour, hitbox size and
// initial horizontal speed. Unknown names become inert walkers.
func EnemyKindFor(name string, decl levels.EnemyDecl, t *prefabs.Tuning, rng *rand.Rand) (component.EnemyKind, prefabs.EnemyBodyTuning) {
	et := t.Enemies
	switch name {
	case "rat":
		return &component.Walker{}, et.FastWalker
	case "bat":
		return &component.Flier{
			PatrolStart: decl.X - et.PatrolHalfWidth,
			PatrolEnd:   decl.X + et.PatrolHalfWidth,
		}, et.Flier.EnemyBodyTuning
	case "squirrel":
		return &component.Ranged{Cooldown: rng.Float64() * et.Ranged.InitialCooldownMax}, et.Ranged.EnemyBodyTuning
	case "bear":
		return &component.Boss{HP: et.Boss.HP, MaxHP: et.Boss.HP}, et.Boss.EnemyBodyTuning
	case "cat":
		return &component.Walker{}, et.Walker
	default:
		return &component.Walker{Inert: true}, et.Walker
	}
}

// NewEnemy places an enemy from its declaration. Everything but fliers is
// dropped onto the highest platform under its centre within the snap window.
func NewEnemy(w *ecs.World, t *prefabs.Tuning, rng *rand.Rand, id int, decl levels.EnemyDecl, platforms []common.Rect) (ecs.Entity, error) {
	variant := 0
	if t.Enemies.Variants > 0 {
		variant = rng.Intn(t.Enemies.Variants)
	}
	kind, body := EnemyKindFor(decl.Type, decl, t, rng)

	y := decl.Y - body.Height
	if _, flying := kind.(*component.Flier); !flying {
		if top, ok := GroundUnder(decl.X+body.Width/2, decl.Y-t.Enemies.SnapWindow, platforms); ok {
			y = top - body.Height
		}
	}

	e := ecs.CreateEntity(w)
	enemy := &component.Enemy{ID: id, Type: decl.Type, Variant: variant, Kind: kind}
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), enemy); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: decl.X, Y: y}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: body.Speed}); err != nil {
		return 0, fmt.Errorf("enemy: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: body.Width, Height: body.Height}); err != nil {
		return 0, fmt.Errorf("enemy: add body: %w", err)
	}
	return e, nil
}

// GroundUnder returns the top of the highest platform spanning x whose top
// is at or below minTop.
func GroundUnder(x, minTop float64, platforms []common.Rect) (float64, bool) {
	best, found := 0.0, false
	for _, p := range platforms {
		if x < p.X || x > p.Right() || p.Y < minTop {
			continue
		}
		if !found || p.Y < best {
			best, found = p.Y, true
		}
	}
	return best, found
}
