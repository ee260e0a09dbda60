package system

import (
	"math/rand"

	"github.com/milk9111/corgi/common"
	"github.com/milk9111/corgi/ecs"
	"github.com/milk9111/corgi/ecs/component"
	"github.com/milk9111/corgi/prefabs"
)

// EnemyDefeat is the payload of ecs.EventEnemyDefeated.
type EnemyDefeat struct {
	ID   int
	Type string
	Boss bool
}

// CombatSystem resolves player/enemy contact: the attack hitbox first, then
// stomp versus contact damage. Defeated enemies are marked during the pass
// and destroyed after it.
type CombatSystem struct {
	tuning *prefabs.Tuning
	rng    *rand.Rand
}

func NewCombatSystem(t *prefabs.Tuning, rng *rand.Rand) *CombatSystem {
	return &CombatSystem{tuning: t, rng: rng}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}

	var defeated []ecs.Entity
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(),
		func(e ecs.Entity, enemy *component.Enemy, tr *component.Transform, body *component.Body) {
			if enemy.Defeated {
				return
			}
			er := component.Bounds(tr, body)

			if attack, ok := AttackBox(s.tuning, p.tr, p.body, p.state); ok && attack.Intersects(er) {
				s.hitEnemy(w, p, enemy, er)
			} else if p.bounds().Intersects(er) {
				fraction := s.tuning.Enemies.StompFraction
				if enemy.IsBoss() {
					fraction = s.tuning.Enemies.Boss.StompFraction
				}
				previousBottom := p.tr.Y + p.body.Height - p.vel.Y
				if p.vel.Y > 0 && previousBottom < er.Y+er.Height*fraction {
					s.hitEnemy(w, p, enemy, er)
					p.vel.Y = s.tuning.Player.StompBounce
				} else {
					damagePlayer(w, s.tuning, s.rng, p, er.X)
				}
			}

			if enemy.Defeated {
				defeated = append(defeated, e)
			}
		})

	for _, e := range defeated {
		ecs.DestroyEntity(w, e)
	}
}

// AttackBox is the strip of attack range beside the player on the facing
// side, present only while an attack is active.
func AttackBox(t *prefabs.Tuning, tr *component.Transform, body *component.Body, st *component.Player) (common.Rect, bool) {
	if !st.Attacking {
		return common.Rect{}, false
	}
	reach := t.Attack.Range
	x := tr.X - reach
	if st.FacingRight {
		x = tr.X + body.Width
	}
	return common.Rect{X: x, Y: tr.Y, Width: reach, Height: body.Height}, true
}

// hitEnemy applies one qualifying hit. Bosses with hit points to spare lose
// one and push the player back; anything else is defeated.
func (s *CombatSystem) hitEnemy(w *ecs.World, p playerRefs, enemy *component.Enemy, er common.Rect) {
	if enemy.Defeated {
		return
	}
	run := currentRun(w)
	colors := s.tuning.Particles.Colors
	cx, cy := er.CenterX(), er.CenterY()

	if boss, ok := enemy.Kind.(*component.Boss); ok && boss.HP > 1 {
		boss.HP--
		enemy.HitTimer = s.tuning.Enemies.HitFlashTicks
		burst(w, s.tuning, s.rng, cx, cy, colors.EnemyHit, s.tuning.Particles.Burst.Count)
		run.Score += s.tuning.Scoring.EnemyHit

		bt := s.tuning.Enemies.Boss
		if p.tr.X < cx {
			p.vel.X = -bt.RecoilX
		} else {
			p.vel.X = bt.RecoilX
		}
		p.vel.Y = bt.RecoilY
		return
	}

	boss, isBoss := enemy.Kind.(*component.Boss)
	if isBoss {
		boss.HP = 0
	}
	enemy.Defeated = true
	burst(w, s.tuning, s.rng, cx, cy, colors.EnemyDie, s.tuning.Particles.DefeatCount)
	if isBoss {
		run.Score += s.tuning.Scoring.BossDefeat
	} else {
		run.Score += s.tuning.Scoring.EnemyDefeat
	}
	w.Events().Push(ecs.Event{Type: ecs.EventEnemyDefeated, Data: EnemyDefeat{ID: enemy.ID, Type: enemy.Type, Boss: isBoss}})
}
