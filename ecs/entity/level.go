package entity

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/prefabs"
)

// LoadLevelToWorld clears the world and instantiates d into it: session
// counters, camera, platforms, player, enemies, pickups, hazards, goal and
// scenery. Nothing from the previous contents survives except run.
func LoadLevelToWorld(w *ecs.World, d *levels.Description, t *prefabs.Tuning, rng *rand.Rand, run component.Run) error {
	if w == nil || d == nil || t == nil || rng == nil {
		return fmt.Errorf("level: nil argument")
	}
	ecs.Clear(w)

	info := levelInfo(d, t)
	session := ecs.CreateEntity(w)
	if err := ecs.Add(w, session, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
		return fmt.Errorf("level: add clock: %w", err)
	}
	if err := ecs.Add(w, session, component.RunComponent.Kind(), &run); err != nil {
		return fmt.Errorf("level: add run: %w", err)
	}
	if err := ecs.Add(w, session, component.LevelInfoComponent.Kind(), &info); err != nil {
		return fmt.Errorf("level: add info: %w", err)
	}

	if _, err := NewCamera(w, t); err != nil {
		return fmt.Errorf("level: %w", err)
	}

	solids := make([]common.Rect, 0, len(d.Platforms))
	for _, p := range d.Platforms {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{Surface: p.Type}); err != nil {
			return fmt.Errorf("level: add platform: %w", err)
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}); err != nil {
			return fmt.Errorf("level: add platform transform: %w", err)
		}
		body := &component.Body{Width: p.Width, Height: t.World.TileSize}
		if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
			return fmt.Errorf("level: add platform body: %w", err)
		}
		solids = append(solids, common.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: t.World.TileSize})
	}

	if _, err := NewPlayer(w, t); err != nil {
		return fmt.Errorf("level: %w", err)
	}

	for i, decl := range d.Enemies {
		if _, err := NewEnemy(w, t, rng, i, decl, solids); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}

	for _, c := range d.Collectibles {
		if _, err := NewPickup(w, t, component.PickupBone, c); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}
	for _, c := range d.TennisBalls {
		if _, err := NewPickup(w, t, component.PickupLifeToken, c); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}

	for _, o := range d.Obstacles {
		if _, err := NewSpike(w, t, o); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}

	if d.Goal != nil {
		if _, err := NewGoal(w, t, *d.Goal); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}

	scatterDecorations(w, rng, t.World.Height, info)
	return nil
}

func levelInfo(d *levels.Description, t *prefabs.Tuning) component.LevelInfo {
	bg, err := prefabs.ParseHexColor(d.BackgroundColor)
	if err != nil {
		bg = color.NRGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xff}
	}
	ground, err := prefabs.ParseHexColor(d.GroundColor)
	if err != nil {
		ground = color.NRGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xff}
	}
	end := t.World.DefaultEnd
	if d.Goal != nil {
		end = d.Goal.X + t.World.GoalMargin
	}
	return component.LevelInfo{ThemeName: d.ThemeName, Background: bg, Ground: ground, End: end}
}

type band struct {
	kind     component.DecorationBand
	start    float64
	step     [2]float64 // base, random range
	rise     [2]float64
	width    [2]float64
	height   float64
	parallax float64
	tint     func(info component.LevelInfo) color.NRGBA
}

var bands = []band{
	{
		kind: component.BandFar, start: -200, step: [2]float64{200, 300}, rise: [2]float64{100, 300},
		width: [2]float64{200, 400}, height: 600, parallax: 0.2,
		tint: func(info component.LevelInfo) color.NRGBA { return withAlpha(info.Ground, 0.3) },
	},
	{
		kind: component.BandNear, start: -100, step: [2]float64{150, 200}, rise: [2]float64{50, 200},
		width: [2]float64{100, 300}, height: 600, parallax: 0.5,
		tint: func(info component.LevelInfo) color.NRGBA { return withAlpha(info.Ground, 0.5) },
	},
	{
		kind: component.BandFront, start: 0, step: [2]float64{400, 800}, rise: [2]float64{20, 3},
		width: [2]float64{40, 60}, height: 60, parallax: 1.2,
		tint: func(component.LevelInfo) color.NRGBA { return color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 77} },
	},
}

// scatterDecorations covers [start, info.End) of every band at random
// intervals. Purely cosmetic.
func scatterDecorations(w *ecs.World, rng *rand.Rand, worldHeight float64, info component.LevelInfo) {
	for _, b := range bands {
		c := b.tint(info)
		for x := b.start; x < info.End; x += rng.Float64()*b.step[1] + b.step[0] {
			d := &component.Decoration{
				Band:     b.kind,
				X:        x,
				Y:        worldHeight - (rng.Float64()*b.rise[1] + b.rise[0]),
				Width:    rng.Float64()*b.width[1] + b.width[0],
				Height:   b.height,
				Parallax: b.parallax,
				Color:    c,
			}
			e := ecs.CreateEntity(w)
			_ = ecs.Add(w, e, component.DecorationComponent.Kind(), d)
		}
	}
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a * 255)
	return c
}
