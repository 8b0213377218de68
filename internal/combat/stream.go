package combat

import (
	"log/slog"
	"math"

	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

// streamState drives flamethrower bursts. A burst emits a fixed number of
// flames spread evenly over the stream duration; the next burst may start
// once the cooldown, counted from the previous start, has passed.
type streamState struct {
	firing    bool
	lastStart float64
	emitted   int
	total     int
	perShot   float64
	speed     float64
	reach     float64
	dir       mathutil.Vec2
}

// StreamReady reports whether a new burst could start at now
func (e *Engine) StreamReady(w *Weapon, now float64) bool {
	return !w.stream.firing && now >= w.stream.lastStart+e.tuning.Flame.Cooldown
}

func (e *Engine) startStream(w *Weapon, now float64, origin mathutil.Vec2) AttackResult {
	if !e.StreamReady(w, now) {
		return AttackResult{}
	}
	cfg := e.tuning.Flame
	reach := w.Def.GetRange(w.level) * e.mods.Multiplier(perks.StatAttackRange)
	target, ok := e.spatial.Nearest(origin, reach)
	if !ok {
		return AttackResult{}
	}

	total := cfg.Shots()
	damage := e.Damage(w)
	travel := cfg.TravelTime
	if travel <= 0 {
		travel = cfg.Lifetime
	}

	w.stream = streamState{
		firing:    true,
		lastStart: now,
		total:     total,
		perShot:   damage / float64(total),
		speed:     reach / travel,
		reach:     reach,
		dir:       mathutil.V2(1, 0),
	}
	w.lastAttack = now
	e.bus.Publish(events.WeaponFired{WeaponKey: w.Key(), Time: now})
	slog.Debug("stream started", "weapon", w.Key(), "shots", total, "per_shot", w.stream.perShot)

	ids := e.updateStream(w, now, origin)
	return AttackResult{Outcome: OutcomeStream, Target: target, Damage: damage, Launched: ids}
}

// updateStream emits every flame due by now
func (e *Engine) updateStream(w *Weapon, now float64, origin mathutil.Vec2) []ProjectileID {
	s := &w.stream
	if !s.firing {
		return nil
	}
	cfg := e.tuning.Flame
	interval := cfg.Duration / float64(s.total)
	due := s.total
	if interval > 0 {
		due = min(s.total, int(math.Floor((now-s.lastStart)/interval+1e-9))+1)
	}

	var ids []ProjectileID
	for s.emitted < due {
		ids = append(ids, e.emitFlame(w, origin))
		s.emitted++
	}
	if s.emitted >= s.total {
		s.firing = false
	}
	return ids
}

func (e *Engine) emitFlame(w *Weapon, origin mathutil.Vec2) ProjectileID {
	s := &w.stream
	cfg := e.tuning.Flame
	if id, ok := e.spatial.Nearest(origin, s.reach); ok {
		if pos, ok := e.spatial.Position(id); ok {
			if d := pos.Sub(origin).Normalize(); d != (mathutil.Vec2{}) {
				s.dir = d
			}
		}
	}
	jitter := (e.rng.Float64() - 0.5) * cfg.ConeAngle

	p := newProjectile(config.KindFlame, w, origin, s.dir.Rotate(jitter), s.perShot, false)
	p.Speed = s.speed
	p.Lifetime = cfg.Lifetime
	return e.spawn(p, flameFlight{})
}
