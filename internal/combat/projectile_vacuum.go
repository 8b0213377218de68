package combat

import (
	"log/slog"
	"math"
	"sort"

	"sweeptide/internal/mathutil"
)

// vacuumFlight flies a short distance, lands, then pulls nearby targets
// toward its centre and damages them on a fixed interval until it expires.
// Targets it pulls have their own movement suspended until the bag goes away.
type vacuumFlight struct {
	weapon    *Weapon
	start     mathutil.Vec2
	landedFor float64
	tickTimer float64
	suspended map[EntityID]MovementControl
}

func (b *vacuumFlight) tick(e *Engine, p *Projectile, dt float64) {
	cfg := e.tuning.Vacuum

	if p.Phase == PhaseFlying {
		remaining := cfg.FlyDistance - b.start.Dist(p.Pos)
		step := math.Min(p.Speed*dt, math.Max(remaining, 0))
		wall := e.advance(p, p.Dir.Scale(step), true, nil)
		if wall || b.start.Dist(p.Pos) >= cfg.FlyDistance-1e-9 {
			p.Phase = PhaseLanded
			slog.Debug("vacuum bag landed", "projectile", p.ID, "x", p.Pos.X, "y", p.Pos.Y)
		}
		return
	}

	b.landedFor += dt
	if b.landedFor >= cfg.Duration {
		e.Despawn(p)
		return
	}

	caught := e.spatial.FindWithinRadius(p.Pos, cfg.Radius)
	for _, id := range caught {
		b.suspend(e, id)
		pos, ok := e.spatial.Position(id)
		if !ok || e.physics == nil {
			continue
		}
		pull := mathutil.Clamp01(1-pos.Dist(p.Pos)/cfg.Radius) * cfg.Force * dt
		e.physics.Displace(id, pos.LerpTo(p.Pos, math.Min(pull, 1)))
	}

	b.tickTimer += dt
	for cfg.TickInterval > 0 && b.tickTimer >= cfg.TickInterval {
		b.tickTimer -= cfg.TickInterval
		amount := p.Damage * cfg.TickInterval
		for _, id := range caught {
			e.pipeline.Apply(DamageEvent{Target: id, Amount: amount, Weapon: p.WeaponName})
		}
	}
}

func (b *vacuumFlight) suspend(e *Engine, id EntityID) {
	if _, ok := b.suspended[id]; ok || e.targets == nil {
		return
	}
	mc := e.targets.Movement(id)
	if mc == nil {
		return
	}
	mc.Disable()
	b.suspended[id] = mc
}

func (b *vacuumFlight) onDespawn(_ *Engine, p *Projectile) {
	ids := make([]EntityID, 0, len(b.suspended))
	for id := range b.suspended {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		b.suspended[id].Enable()
	}
	b.suspended = nil
	if b.weapon != nil && b.weapon.bag == p.ID {
		b.weapon.bag = 0
	}
}

// Suspended counts targets a vacuum bag currently holds
func (p *Projectile) Suspended() int {
	b, ok := p.behavior.(*vacuumFlight)
	if !ok {
		return 0
	}
	return len(b.suspended)
}
