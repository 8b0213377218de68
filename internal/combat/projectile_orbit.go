package combat

import (
	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
)

// orbitFlight circles the player. It eases out to the orbit radius first,
// dealing no damage while it does, then circles for a fixed number of
// revolutions.
type orbitFlight struct {
	angle        float64 // degrees
	spawnElapsed float64
	orbitElapsed float64
}

func (b *orbitFlight) tick(e *Engine, p *Projectile, dt float64) {
	cfg := e.tuning.Orbit
	center := e.playerPosition()

	if p.Phase == PhaseSpawning {
		b.spawnElapsed += dt
		t := 1.0
		if cfg.SpawnDuration > 0 {
			t = b.spawnElapsed / cfg.SpawnDuration
		}
		p.Pos = center.Add(mathutil.FromAngle(b.angle).Scale(cfg.Radius * mathutil.EaseOutCubic(t)))
		if t >= 1 {
			p.Phase = PhaseOrbiting
		}
		return
	}

	b.orbitElapsed += dt
	if b.orbitElapsed >= p.Lifetime {
		e.Despawn(p)
		return
	}
	b.angle += cfg.Speed * dt
	p.Pos = center.Add(mathutil.FromAngle(b.angle).Scale(cfg.Radius))
	p.Dir = mathutil.FromAngle(b.angle + 90)

	e.overlaps(p, func(id EntityID, _ mathutil.Vec2) {
		if e.strike(p, id, "") {
			e.consumePierce(p)
		}
	})
}

// Angle is the current orbit angle in degrees of an orbiting projectile
func (p *Projectile) Angle() (float64, bool) {
	b, ok := p.behavior.(*orbitFlight)
	if !ok {
		return 0, false
	}
	return b.angle, true
}

// orbitReady requires both the batch cooldown and the previous batch to be gone
func (e *Engine) orbitReady(w *Weapon, now float64) bool {
	if now < w.orbit.readyAt {
		return false
	}
	for _, id := range w.orbit.batch {
		if e.projectiles.Alive(id) {
			return false
		}
	}
	return true
}

// OrbitersAlive counts the live orbiters of w's current batch
func (e *Engine) OrbitersAlive(w *Weapon) int {
	n := 0
	for _, id := range w.orbit.batch {
		if e.projectiles.Alive(id) {
			n++
		}
	}
	return n
}

func (e *Engine) spawnOrbit(w *Weapon, now, damage float64, crit bool) []ProjectileID {
	cfg := e.tuning.Orbit
	count := e.mods.ProjectileCount()
	if count < 1 {
		count = 1
	}
	center := e.playerPosition()
	pierce := e.mods.MaxPierceCount()

	ids := make([]ProjectileID, 0, count)
	for i := 0; i < count; i++ {
		start := 360 / float64(count) * float64(i)
		p := newProjectile(config.KindOrbiting, w, center, mathutil.FromAngle(start+90), damage, crit)
		p.Phase = PhaseSpawning
		p.Pierce = pierce
		p.Lifetime = cfg.OrbitLifetime()
		p.Speed = cfg.Speed
		ids = append(ids, e.spawn(p, &orbitFlight{angle: start}))
	}

	w.orbit.batch = ids
	w.orbit.readyAt = now + cfg.OrbitCooldown(w.Def.GetAttackSpeed(w.level))
	return ids
}
