package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/levels"
	"github.com/milk9111/corgi/sim"
)

var (
	corgiColor   = color.NRGBA{R: 0xEC, G: 0xA7, B: 0x58, A: 0xff}
	corgiBelly   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	biteColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	stoneColor   = color.NRGBA{R: 0x78, G: 0x71, B: 0x6c, A: 0xff}
	cloudColor   = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	lavaColor    = color.NRGBA{R: 0xea, G: 0x58, B: 0x0c, A: 0xff}
	spikeColor   = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	nutColor     = color.NRGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xff}
	boneColor    = color.NRGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xff}
	ballColor    = color.NRGBA{R: 0xCC, G: 0xFF, B: 0x00, A: 0xff}
	doorColor    = color.NRGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xff}
	lockedColor  = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	hpBackColor  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	hpFrontColor = color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	flashColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var enemyColors = map[string]color.NRGBA{
	"cat":      {R: 0x6b, G: 0x72, B: 0x80, A: 0xff},
	"rat":      {R: 0x57, G: 0x53, B: 0x4e, A: 0xff},
	"bat":      {R: 0x4c, G: 0x1d, B: 0x95, A: 0xff},
	"squirrel": {R: 0xb4, G: 0x53, B: 0x09, A: 0xff},
	"bear":     {R: 0x78, G: 0x35, B: 0x0f, A: 0xff},
}

func fillRect(dst *ebiten.Image, r common.Rect, camX float64, c color.Color) {
	vector.FillRect(dst, float32(r.X-camX), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func surfaceColor(s levels.Surface, ground color.NRGBA) color.NRGBA {
	switch s {
	case levels.SurfaceStone:
		return stoneColor
	case levels.SurfaceCloud:
		return cloudColor
	case levels.SurfaceLava:
		return lavaColor
	default:
		return ground
	}
}

// drawWorld paints a snapshot back to front: sky, far scenery, level,
// actors, particles, then the foreground band.
func drawWorld(screen *ebiten.Image, snap sim.Snapshot) {
	screen.Fill(snap.Background)
	camX := snap.CameraX

	for _, d := range snap.Decorations {
		if d.Band != component.BandFront {
			drawDecoration(screen, d, camX)
		}
	}

	for _, p := range snap.Platforms {
		fillRect(screen, p.Rect, camX, surfaceColor(p.Surface, snap.Ground))
	}
	for _, h := range snap.Hazards {
		fillRect(screen, h.Rect.Inset(h.Width/4, h.Height/3), camX, spikeColor)
	}
	for _, p := range snap.Pickups {
		c := boneColor
		if p.Kind == component.PickupLifeToken {
			c = ballColor
		}
		fillRect(screen, p.Rect, camX, c)
	}
	if snap.Goal != nil {
		fillRect(screen, *snap.Goal, camX, doorColor)
		if snap.GoalLocked {
			fillRect(screen, snap.Goal.Inset(snap.Goal.Width/3, snap.Goal.Height/2), camX, lockedColor)
		}
	}

	for _, e := range snap.Enemies {
		c, ok := enemyColors[e.Type]
		if !ok {
			c = enemyColors["cat"]
		}
		if e.Flash {
			c = flashColor
		}
		fillRect(screen, e.Rect, camX, c)
	}
	for _, p := range snap.Projectiles {
		fillRect(screen, p, camX, nutColor)
	}

	if snap.HasPlayer {
		drawPlayer(screen, snap, camX)
	}

	for _, p := range snap.Particles {
		c := p.Color
		c.A = uint8(float64(c.A) * p.Alpha)
		vector.FillRect(screen, float32(p.X-camX), float32(p.Y), float32(p.Size), float32(p.Size), c, false)
	}

	for _, d := range snap.Decorations {
		if d.Band == component.BandFront {
			drawDecoration(screen, d, camX)
		}
	}
}

func drawDecoration(screen *ebiten.Image, d component.Decoration, camX float64) {
	x := d.X - camX*d.Parallax
	vector.FillRect(screen, float32(x), float32(d.Y), float32(d.Width), float32(d.Height), d.Color, false)
}

func drawPlayer(screen *ebiten.Image, snap sim.Snapshot, camX float64) {
	p := snap.Player
	// Blink while invulnerable.
	if p.Invulnerable && (snap.Tick/5)%2 == 0 {
		return
	}
	fillRect(screen, p.Rect, camX, corgiColor)
	belly := common.Rect{X: p.X + p.Width/4, Y: p.Y + p.Height*0.6, Width: p.Width / 2, Height: p.Height * 0.4}
	fillRect(screen, belly, camX, corgiBelly)
	if p.Attack != nil {
		fillRect(screen, *p.Attack, camX, biteColor)
	}
}

func drawHUD(screen *ebiten.Image, snap sim.Snapshot, debug bool) {
	if snap.State != sim.StatePlaying && snap.State != sim.StateLevelComplete {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE: %d   LIVES: %d", snap.Score, snap.Lives), 16, 16)
	ebitenutil.DebugPrintAt(screen, snap.Theme, 16, 32)

	if snap.Boss != nil && snap.Boss.MaxHP > 0 {
		const barW, barH = 300, 12
		x := (snap.ViewWidth - barW) / 2
		frac := float64(snap.Boss.HP) / float64(snap.Boss.MaxHP)
		vector.FillRect(screen, float32(x), 20, barW, barH, hpBackColor, false)
		vector.FillRect(screen, float32(x), 20, float32(barW*frac), barH, hpFrontColor, false)
		ebitenutil.DebugPrintAt(screen, "BEAR", int(x), 34)
	}

	if debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick %d  FPS %.1f  %s", snap.Tick, ebiten.ActualFPS(), snap.State), 16, int(snap.ViewHeight)-20)
	}
}
