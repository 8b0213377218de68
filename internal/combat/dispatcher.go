package combat

import (
	"log/slog"
	"math"

	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

// Outcome classifies an attack attempt
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeMelee
	OutcomeShockwave
	OutcomeProjectile
	OutcomeStream
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMelee:
		return "melee"
	case OutcomeShockwave:
		return "shockwave"
	case OutcomeProjectile:
		return "projectile"
	case OutcomeStream:
		return "stream"
	default:
		return "skipped"
	}
}

// AttackResult describes what a TryAttack call did
type AttackResult struct {
	Outcome  Outcome
	Target   EntityID
	Damage   float64
	Crit     bool
	Hits     int
	Launched []ProjectileID
}

// AttackSpeed is attacks per second after perks, never below the configured floor
func (e *Engine) AttackSpeed(w *Weapon) float64 {
	speed := w.Def.GetAttackSpeed(w.level) * e.mods.Multiplier(perks.StatAttackSpeed)
	return math.Max(speed, math.Max(e.tuning.MinAttackSpeed, 1e-3))
}

// Cooldown is the minimum time between attempts
func (e *Engine) Cooldown(w *Weapon) float64 {
	return 1 / e.AttackSpeed(w)
}

// Ready reports whether the weapon's cooldown has elapsed at now
func (e *Engine) Ready(w *Weapon, now float64) bool {
	return now >= w.lastAttack+e.Cooldown(w)
}

// Range is the targeting range. Only melee weapons scale with the range perk.
func (e *Engine) Range(w *Weapon) float64 {
	r := w.Def.GetRange(w.level)
	if w.IsMelee() {
		r *= e.mods.Multiplier(perks.StatAttackRange)
	}
	return r
}

// Damage is the non-crit damage of one hit: the general multiplier first,
// then the melee or ranged one.
func (e *Engine) Damage(w *Weapon) float64 {
	d := w.Def.GetDamage(w.level) * e.mods.Multiplier(perks.StatDamage)
	if w.IsMelee() {
		return d * e.mods.Multiplier(perks.StatMeleeDamage)
	}
	return d * e.mods.Multiplier(perks.StatRangedDamage)
}

func (e *Engine) CritChance(w *Weapon) float64 {
	return w.Def.GetCritChance(w.level) + e.mods.AdditiveBonus(perks.StatCritChance)
}

func (e *Engine) CritMultiplier(w *Weapon) float64 {
	return w.Def.GetCritMultiplier(w.level) + e.mods.AdditiveBonus(perks.StatCritMultiplier)
}

// rollDamage returns the non-crit damage, the damage actually dealt and the crit flag
func (e *Engine) rollDamage(w *Weapon) (base, dealt float64, crit bool) {
	base = e.Damage(w)
	crit = e.rng.Float64() < e.CritChance(w)
	dealt = base
	if crit {
		dealt *= e.CritMultiplier(w)
	}
	return base, dealt, crit
}

// TryAttack makes one attack attempt for w from origin at game time now.
// An attempt that finds no target inside range is skipped and leaves the
// cooldown untouched.
func (e *Engine) TryAttack(w *Weapon, now float64, origin mathutil.Vec2) AttackResult {
	if w == nil || w.Disabled() {
		return AttackResult{}
	}
	if w.Def.Stream {
		return e.startStream(w, now, origin)
	}
	if !e.Ready(w, now) {
		return AttackResult{}
	}

	kind := w.projectileKind()
	if w.Def.Shape == config.ShapeProjectile && kind == config.KindNone {
		return AttackResult{}
	}
	if kind == config.KindOrbiting && !e.orbitReady(w, now) {
		return AttackResult{}
	}

	target, ok := e.spatial.Nearest(origin, e.Range(w))
	if !ok {
		return AttackResult{}
	}
	targetPos, ok := e.spatial.Position(target)
	if !ok {
		return AttackResult{}
	}
	dir := targetPos.Sub(origin).Normalize()
	if dir == (mathutil.Vec2{}) {
		dir = mathutil.V2(1, 0)
	}

	_, dealt, crit := e.rollDamage(w)
	w.lastAttack = now
	e.bus.Publish(events.WeaponFired{WeaponKey: w.Key(), Time: now, Crit: crit})

	if kind != config.KindNone {
		ids := e.launch(w, now, origin, dir, dealt, crit)
		slog.Debug("projectiles launched", "weapon", w.Key(), "count", len(ids), "crit", crit)
		return AttackResult{Outcome: OutcomeProjectile, Target: target, Damage: dealt, Crit: crit, Launched: ids}
	}
	return e.melee(w, origin, dir, target, dealt, crit)
}

// Update advances per-weapon state that runs between attempts
func (e *Engine) Update(w *Weapon, now float64, origin mathutil.Vec2) {
	if w == nil || w.Disabled() {
		return
	}
	if w.Def.Stream {
		e.updateStream(w, now, origin)
	}
}
