package system

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// EnemyAISystem moves every enemy according to its kind and lets ranged
// enemies fire.
type EnemyAISystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewEnemyAISystem(t *prefabs.Tuning, rng *rand.Rand) *EnemyAISystem {
	return &EnemyAISystem{tuning: t, rng: rng}
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	platforms := solids(w)
	tick := currentTick(w)

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, enemy *component.Enemy, tr *component.Transform, vel *component.Velocity) {
			if enemy.Defeated {
				return
			}
			body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
			if !ok {
				return
			}
			if enemy.HitTimer > 0 {
				enemy.HitTimer--
			}

			switch k := enemy.Kind.(type) {
			case *component.Walker:
				if !k.Inert {
					s.walk(tr, vel, body, platforms)
				}
			case *component.Flier:
				s.fly(k, tr, vel, tick)
			case *component.Ranged:
				s.aim(w, k, tr, body, p)
			case *component.Boss:
				s.chase(tr, vel, body, p, platforms)
			}
		})
}

// walk turns around at walls and at ledges, probing just past the leading
// foot.
func (s *EnemyAISystem) walk(tr *component.Transform, vel *component.Velocity, body *component.Body, platforms []solid) {
	inset := s.tuning.Enemies.WallProbeInset
	nextX := tr.X + vel.X
	turn := hitsWall(nextX, tr.Y, body, inset, platforms)

	if !turn {
		lookX := nextX
		if vel.X > 0 {
			lookX = nextX + body.Width
		}
		lookY := tr.Y + body.Height + s.tuning.Enemies.LedgeProbeDepth
		ground := false
		for _, plat := range platforms {
			r := plat.rect
			if lookX >= r.X && lookX <= r.Right() && lookY >= r.Y && lookY <= r.Bottom() {
				ground = true
				break
			}
		}
		turn = !ground
	}

	if turn {
		vel.X = -vel.X
	} else {
		tr.X = nextX
	}
}

func (s *EnemyAISystem) fly(k *component.Flier, tr *component.Transform, vel *component.Velocity, tick uint64) {
	ft := s.tuning.Enemies.Flier
	tr.X += vel.X
	if ft.HoverPeriod > 0 {
		tr.Y += math.Sin(float64(tick)/ft.HoverPeriod) * ft.HoverAmplitude
	}
	if tr.X > k.PatrolEnd || tr.X < k.PatrolStart {
		vel.X = -vel.X
	}
}

// aim lobs a projectile at the player once the cooldown has run out and the
// player is within range. The launch speed solves for the player's height
// over the horizontal flight time.
func (s *EnemyAISystem) aim(w *ecs.World, k *component.Ranged, tr *component.Transform, body *component.Body, p playerRefs) {
	rt := s.tuning.Enemies.Ranged
	if k.Cooldown > 0 {
		k.Cooldown--
		return
	}

	offset := cp.Vector{
		X: p.tr.X - tr.X,
		Y: p.tr.Y + p.body.Height/2 - (tr.Y + rt.EyeOffsetY),
	}
	if offset.Length() >= rt.DetectRadius {
		return
	}

	flight := math.Abs(offset.X) / rt.ProjectileSpeed
	if flight == 0 {
		flight = 1
	}
	vy := (offset.Y - 0.5*rt.ProjectileGravity*flight*flight) / flight
	vy = common.Clamp(vy, rt.MinLaunchVY, rt.MaxLaunchVY)

	vx := -rt.ProjectileSpeed
	x := tr.X + rt.MuzzleInset
	if offset.X > 0 {
		vx = rt.ProjectileSpeed
		x = tr.X + body.Width - rt.MuzzleInset
	}
	spawnProjectile(w, x, tr.Y+rt.MuzzleOffsetY, vx, vy, rt)
	k.Cooldown = rt.CooldownBase + s.rng.Float64()*rt.CooldownJitter
}

// chase walks the boss toward the player at a speed picked by distance. It
// never steps into a wall or off a ledge, and stays glued to the ground
// under its centre.
func (s *EnemyAISystem) chase(tr *component.Transform, vel *component.Velocity, body *component.Body, p playerRefs, platforms []solid) {
	bt := s.tuning.Enemies.Boss
	dx := p.tr.X - tr.X
	dist := math.Abs(dx)

	speed := bt.Speed
	if dist < bt.ChargeRange {
		speed = bt.ChargeSpeed
	}
	if dist < bt.MeleeRange {
		speed = 0
	}
	dir := common.Sign(dx)
	nextX := tr.X + dir*speed

	moving := !hitsWall(nextX, tr.Y, body, bt.ProbeInset, platforms)
	if moving {
		_, moving = s.groundAt(nextX+body.Width/2, tr.Y+body.Height, platforms)
	}

	if moving {
		tr.X = nextX
		vel.X = dir * speed
	} else if dx > 0 {
		vel.X = 0.01
	} else {
		vel.X = -0.01
	}

	if top, ok := s.groundAt(tr.X+body.Width/2, tr.Y+body.Height, platforms); ok {
		if tr.Y+body.Height > top {
			tr.Y = top - body.Height
		}
	} else {
		tr.Y += bt.FallSpeed
	}
}

// groundAt finds the first platform spanning x whose top is within the
// tolerance band around feet.
func (s *EnemyAISystem) groundAt(x, feet float64, platforms []solid) (float64, bool) {
	et := s.tuning.Enemies
	for _, plat := range platforms {
		r := plat.rect
		if x >= r.X && x <= r.Right() && feet >= r.Y-et.GroundAbove && feet <= r.Y+et.GroundBelow {
			return r.Y, true
		}
	}
	return 0, false
}

func hitsWall(x, y float64, body *component.Body, inset float64, platforms []solid) bool {
	probe := common.Rect{X: x, Y: y + inset, Width: body.Width, Height: body.Height - 2*inset}
	for _, plat := range platforms {
		if probe.Intersects(plat.rect) {
			return true
		}
	}
	return false
}

func spawnProjectile(w *ecs.World, x, y, vx, vy float64, rt prefabs.RangedTuning) {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Kind: "nut", Gravity: rt.ProjectileGravity})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy})
	_ = ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: rt.ProjectileSize, Height: rt.ProjectileSize})
}
