package sim

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/ecs/system"
	"github.com/milk9111/corgi/levels"
)

// bossBarRange is how close a boss must be before its health is shown.
const bossBarRange = 800

// Snapshot is a by-value copy of everything a frame needs to draw. Nothing
// in it points back into the world.
type Snapshot struct {
	State State
	Tick  uint64

	CameraX    float64
	ViewWidth  float64
	ViewHeight float64

	Score int
	Lives int

	Theme      string
	Background color.NRGBA
	Ground     color.NRGBA

	Player      PlayerView
	HasPlayer   bool
	Platforms   []PlatformView
	Enemies     []EnemyView
	Projectiles []common.Rect
	Pickups     []PickupView
	Hazards     []HazardView
	Goal        *common.Rect
	GoalLocked  bool
	Particles   []ParticleView
	Decorations []component.Decoration

	Boss *BossView
}

type PlayerView struct {
	common.Rect
	FacingRight  bool
	Grounded     bool
	Invulnerable bool
	Attack       *common.Rect
}

type PlatformView struct {
	common.Rect
	Surface levels.Surface
}

type EnemyView struct {
	common.Rect
	ID          int
	Type        string
	Variant     int
	FacingRight bool
	Flash       bool
	Boss        bool
}

type PickupView struct {
	common.Rect
	Kind component.PickupKind
}

type HazardView struct {
	common.Rect
	Kind string
}

type ParticleView struct {
	X, Y  float64
	Size  float64
	Alpha float64
	Color color.NRGBA
}

type BossView struct {
	HP, MaxHP int
}

// Snapshot copies the on-screen part of the world. Entities wholly outside
// the camera view (plus a margin) are left out; decorations and the boss
// bar are not culled by the view.
func (s *Simulation) Snapshot() Snapshot {
	w := s.world
	t := s.tuning
	snap := Snapshot{
		State:      s.state,
		ViewWidth:  t.Camera.ViewWidth,
		ViewHeight: t.Camera.ViewHeight,
	}
	run := s.Run()
	snap.Score, snap.Lives = run.Score, run.Lives

	if e, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.ClockComponent.Kind()); ok {
			snap.Tick = c.Tick
		}
	}
	if e, ok := ecs.First(w, component.LevelInfoComponent.Kind()); ok {
		if info, ok := ecs.Get(w, e, component.LevelInfoComponent.Kind()); ok {
			snap.Theme, snap.Background, snap.Ground = info.ThemeName, info.Background, info.Ground
		}
	}
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			snap.CameraX = cam.X
		}
	}

	margin := t.World.TileSize * 4
	view := cp.BB{L: snap.CameraX - margin, B: -math.MaxFloat64, R: snap.CameraX + snap.ViewWidth + margin, T: math.MaxFloat64}
	visible := func(r common.Rect) bool { return view.Intersects(r.BB()) }

	var playerX float64
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		tr, okT := ecs.Get(w, e, component.TransformComponent.Kind())
		body, okB := ecs.Get(w, e, component.BodyComponent.Kind())
		st, okS := ecs.Get(w, e, component.PlayerComponent.Kind())
		if okT && okB && okS {
			snap.HasPlayer = true
			playerX = tr.X
			snap.Player = PlayerView{
				Rect:         component.Bounds(tr, body),
				FacingRight:  st.FacingRight,
				Grounded:     st.Grounded,
				Invulnerable: snap.Tick <= st.InvulnerableUntil,
			}
			if box, ok := system.AttackBox(t, tr, body, st); ok {
				snap.Player.Attack = &box
			}
		}
	}

	ecs.ForEach3(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, p *component.Platform, tr *component.Transform, body *component.Body) {
			if r := component.Bounds(tr, body); visible(r) {
				snap.Platforms = append(snap.Platforms, PlatformView{Rect: r, Surface: p.Surface})
			}
		})

	bossDist := math.Inf(1)
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, tr *component.Transform, body *component.Body) {
			if en.Defeated {
				return
			}
			if boss, ok := en.Kind.(*component.Boss); ok && snap.HasPlayer {
				if d := math.Abs(tr.X - playerX); d < bossBarRange && d < bossDist {
					bossDist = d
					snap.Boss = &BossView{HP: en.HP(), MaxHP: boss.MaxHP}
				}
			}
			r := component.Bounds(tr, body)
			if !visible(r) {
				return
			}
			facing := true
			if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
				facing = vel.X >= 0
			}
			snap.Enemies = append(snap.Enemies, EnemyView{
				Rect:        r,
				ID:          en.ID,
				Type:        en.Type,
				Variant:     en.Variant,
				FacingRight: facing,
				Flash:       en.HitTimer > 0,
				Boss:        en.IsBoss(),
			})
		})

	ecs.ForEach3(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, _ *component.Projectile, tr *component.Transform, body *component.Body) {
			if r := component.Bounds(tr, body); visible(r) {
				snap.Projectiles = append(snap.Projectiles, r)
			}
		})

	ecs.ForEach3(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, p *component.Pickup, tr *component.Transform, body *component.Body) {
			if r := component.Bounds(tr, body); !p.Collected && visible(r) {
				snap.Pickups = append(snap.Pickups, PickupView{Rect: r, Kind: p.Kind})
			}
		})

	ecs.ForEach3(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, h *component.Hazard, tr *component.Transform, body *component.Body) {
			if r := component.Bounds(tr, body); visible(r) {
				snap.Hazards = append(snap.Hazards, HazardView{Rect: r, Kind: h.Kind})
			}
		})

	if e, ok := ecs.First(w, component.GoalTagComponent.Kind()); ok {
		tr, okT := ecs.Get(w, e, component.TransformComponent.Kind())
		body, okB := ecs.Get(w, e, component.BodyComponent.Kind())
		if okT && okB {
			r := component.Bounds(tr, body)
			snap.Goal = &r
			snap.GoalLocked = system.BossAlive(w)
		}
	}

	ecs.ForEach(w, component.ParticleComponent.Kind(), func(_ ecs.Entity, p *component.Particle) {
		if !view.ContainsVect(p.Pos) {
			return
		}
		snap.Particles = append(snap.Particles, ParticleView{
			X:     p.Pos.X,
			Y:     p.Pos.Y,
			Size:  p.Size,
			Alpha: math.Min(1, math.Max(0, p.Life)),
			Color: p.Color,
		})
	})

	ecs.ForEach(w, component.DecorationComponent.Kind(), func(_ ecs.Entity, d *component.Decoration) {
		snap.Decorations = append(snap.Decorations, *d)
	})
	return snap
}
