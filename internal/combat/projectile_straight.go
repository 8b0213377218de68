package combat

import "sweeptide/internal/mathutil"

// straightFlight covers simple and explosive projectiles: fly until the
// pierce budget runs out, a wall is hit, or the lifetime ends.
type straightFlight struct {
	explosive bool
}

func (b *straightFlight) tick(e *Engine, p *Projectile, dt float64) {
	p.Age += dt
	if p.Age >= p.Lifetime {
		e.Despawn(p)
		return
	}

	wall := e.advance(p, p.Dir.Scale(p.Speed*dt), true, func(id EntityID, at mathutil.Vec2) {
		if !e.strike(p, id, "") {
			return
		}
		e.chain(p, at)
		if b.explosive {
			e.explode(p, at)
			e.Despawn(p)
			return
		}
		e.consumePierce(p)
	})
	if wall {
		e.Despawn(p)
	}
}

// explode deals the burst to everything around the impact except targets
// the projectile already hit directly.
func (e *Engine) explode(p *Projectile, at mathutil.Vec2) {
	cfg := e.tuning.Explosion
	amount := p.Damage * cfg.DamageFraction
	for _, id := range e.spatial.FindWithinRadius(at, cfg.Radius) {
		if p.everHit.has(id) {
			continue
		}
		e.pipeline.Apply(DamageEvent{Target: id, Amount: amount, Weapon: p.WeaponName, Tag: TagExplosion})
	}
}

// flameFlight passes through every target once and burns out after its lifetime
type flameFlight struct{}

func (flameFlight) tick(e *Engine, p *Projectile, dt float64) {
	p.Age += dt
	if p.Age >= p.Lifetime {
		e.Despawn(p)
		return
	}
	wall := e.advance(p, p.Dir.Scale(p.Speed*dt), true, func(id EntityID, _ mathutil.Vec2) {
		e.strike(p, id, "")
	})
	if wall {
		e.Despawn(p)
	}
}
