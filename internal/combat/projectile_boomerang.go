package combat

import (
	"math"

	"sweeptide/internal/mathutil"
)

// boomerangFlight flies out until it covers its max distance or hits a
// wall, then homes back to the player. Turning around clears the direct
// hit set so every target can be hit again on the way back.
type boomerangFlight struct {
	start mathutil.Vec2
}

func (b *boomerangFlight) tick(e *Engine, p *Projectile, dt float64) {
	cfg := e.tuning.Boomerang
	p.Age += dt
	if p.Age >= p.Lifetime {
		e.Despawn(p)
		return
	}

	if p.Phase == PhaseFlying {
		wall := e.advance(p, p.Dir.Scale(p.Speed*dt), true, b.onHit(e, p, ""))
		if p.dead {
			return
		}
		if wall || b.start.Dist(p.Pos) >= cfg.MaxDistance-1e-9 {
			b.turn(p)
		}
		return
	}

	toPlayer := e.playerPosition().Sub(p.Pos)
	if toPlayer.Len() < cfg.CatchRadius {
		e.Despawn(p)
		return
	}
	p.Dir = toPlayer.Normalize()
	step := math.Min(p.Speed*cfg.ReturnSpeedMultiplier*dt, toPlayer.Len())
	e.advance(p, p.Dir.Scale(step), false, b.onHit(e, p, TagReturn))
	if !p.dead && e.playerPosition().Dist(p.Pos) < cfg.CatchRadius {
		e.Despawn(p)
	}
}

func (b *boomerangFlight) onHit(e *Engine, p *Projectile, tag string) func(EntityID, mathutil.Vec2) {
	return func(id EntityID, at mathutil.Vec2) {
		if !e.strike(p, id, tag) {
			return
		}
		e.chain(p, at)
		e.consumePierce(p)
	}
}

func (b *boomerangFlight) turn(p *Projectile) {
	p.Phase = PhaseReturning
	p.hits = make(hitSet)
}
