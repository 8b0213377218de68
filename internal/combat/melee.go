package combat

import (
	"log/slog"

	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

func (e *Engine) meleeArea(w *Weapon, origin, dir mathutil.Vec2) Area {
	rng := e.Range(w)
	switch w.Def.Shape {
	case config.ShapeCone:
		return e.resolver.Cone(origin, dir, rng, w.Def.AttackAngle)
	case config.ShapeRectangle:
		length := w.Def.AttackLength
		if length <= 0 {
			length = rng
		}
		width := w.Def.AttackWidth
		if width <= 0 {
			width = 1
		}
		return e.resolver.Rectangle(origin, dir, length, width)
	case config.ShapeNearestAoE:
		return e.resolver.NearestAoE(origin, rng)
	default:
		return e.resolver.Circle(origin, rng)
	}
}

func (e *Engine) melee(w *Weapon, origin, dir mathutil.Vec2, target EntityID, dealt float64, crit bool) AttackResult {
	w.meleeCount++
	every := e.tuning.Shockwave.Every
	if every > 0 && w.meleeCount >= every && e.mods.HasFlag(perks.FlagKnockback) {
		w.meleeCount = 0
		return e.shockwave(w, origin, dealt, target)
	}

	area := e.meleeArea(w, origin, dir)
	res := AttackResult{Outcome: OutcomeMelee, Target: target, Damage: dealt, Crit: crit}
	for _, id := range area.Targets {
		if e.pipeline.Apply(DamageEvent{Target: id, Amount: dealt, Crit: crit, Weapon: w.Name()}).Applied {
			res.Hits++
		}
	}
	return res
}

// shockwave replaces a melee swing: fixed radius around the attacker,
// knocks every hit target away from the attacker. It keeps the rolled
// damage but is never reported as a crit.
func (e *Engine) shockwave(w *Weapon, origin mathutil.Vec2, damage float64, target EntityID) AttackResult {
	cfg := e.tuning.Shockwave
	res := AttackResult{Outcome: OutcomeShockwave, Target: target, Damage: damage}

	for _, id := range e.spatial.FindWithinRadius(origin, cfg.Radius) {
		if !e.pipeline.Apply(DamageEvent{Target: id, Amount: damage, Weapon: w.Name(), Tag: TagWave}).Applied {
			continue
		}
		res.Hits++
		if e.physics == nil {
			continue
		}
		pos, ok := e.spatial.Position(id)
		if !ok {
			continue
		}
		away := pos.Sub(origin).Normalize()
		if away == (mathutil.Vec2{}) {
			away = mathutil.V2(1, 0)
		}
		e.physics.Knockback(id, away, cfg.KnockbackForce, cfg.KnockbackDuration)
	}
	slog.Debug("shockwave", "weapon", w.Key(), "hits", res.Hits)
	return res
}
