package combat

import (
	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
)

// launch spawns the projectiles of one ranged attack
func (e *Engine) launch(w *Weapon, now float64, origin, dir mathutil.Vec2, damage float64, crit bool) []ProjectileID {
	kind := w.projectileKind()
	switch kind {
	case config.KindOrbiting:
		return e.spawnOrbit(w, now, damage, crit)
	case config.KindVacuumBag:
		return []ProjectileID{e.spawnVacuum(w, origin, dir, damage, crit)}
	}

	count := e.mods.ProjectileCount()
	if count < 1 {
		count = 1
	}
	spread := e.tuning.Projectile.SpreadAngle
	pierce := e.mods.MaxPierceCount()
	speed := w.projectileSpeed(e.tuning.Projectile.DefaultSpeed)

	ids := make([]ProjectileID, 0, count)
	for i := 0; i < count; i++ {
		d := dir
		if count > 1 {
			d = dir.Rotate(-spread/2 + spread*float64(i)/float64(count-1))
		}
		p := newProjectile(kind, w, origin, d, damage, crit)
		p.Speed = speed
		p.Pierce = pierce
		p.Lifetime = e.tuning.Projectile.Lifetime

		var b behavior
		switch kind {
		case config.KindBoomerang:
			// generous cap so a stuck boomerang cannot live forever
			p.Lifetime *= 3
			b = &boomerangFlight{start: origin}
		case config.KindExplosive:
			b = &straightFlight{explosive: true}
		case config.KindFlame:
			p.Lifetime = e.tuning.Flame.Lifetime
			p.Pierce = 0
			b = flameFlight{}
		default:
			b = &straightFlight{}
		}
		ids = append(ids, e.spawn(p, b))
	}
	return ids
}

// spawnVacuum launches a bag, replacing the weapon's previous one
func (e *Engine) spawnVacuum(w *Weapon, origin, dir mathutil.Vec2, damage float64, crit bool) ProjectileID {
	if old, ok := e.projectiles.Get(w.bag); ok {
		e.Despawn(old)
	}
	p := newProjectile(config.KindVacuumBag, w, origin, dir, damage, crit)
	p.Speed = e.tuning.Vacuum.Speed
	p.Lifetime = e.tuning.Vacuum.Duration
	id := e.spawn(p, &vacuumFlight{weapon: w, start: origin, suspended: make(map[EntityID]MovementControl)})
	w.bag = id
	return id
}
