package arena

import (
	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
)

// Enemy is a chasing melee enemy. It is the Health, Defender, Killable and
// MovementControl the combat engine talks to.
type Enemy struct {
	ID     uint64
	Pos    mathutil.Vec2
	Radius float64
	Speed  float64

	health    float64
	maxHealth float64
	damage    float64
	cooldown  float64

	// suspended counts outstanding Disable calls
	suspended  int
	knockVel   mathutil.Vec2
	knockUntil float64
	lastAttack float64
	dead       bool
}

func newEnemy(id uint64, pos mathutil.Vec2, cfg config.EnemyConfig) *Enemy {
	return &Enemy{
		ID:         id,
		Pos:        pos,
		Radius:     cfg.Radius,
		Speed:      cfg.Speed,
		health:     cfg.Health,
		maxHealth:  cfg.Health,
		damage:     cfg.ContactDamage,
		cooldown:   cfg.AttackCooldown,
		lastAttack: -cfg.AttackCooldown,
	}
}

func (e *Enemy) TakeDamage(amount float64, _ bool) {
	e.health -= amount
}

func (e *Enemy) CurrentHealth() float64 { return e.health }

func (e *Enemy) MaxHealth() float64 { return e.maxHealth }

// DamageTakenMultiplier is 1: enemies have no defences yet
func (e *Enemy) DamageTakenMultiplier() float64 { return 1 }

func (e *Enemy) OnDeath() { e.dead = true }

func (e *Enemy) Dead() bool { return e.dead }

func (e *Enemy) Disable() { e.suspended++ }

func (e *Enemy) Enable() {
	if e.suspended > 0 {
		e.suspended--
	}
}

// Suspended reports whether something holds the enemy in place
func (e *Enemy) Suspended() bool { return e.suspended > 0 }

// Knockback pushes the enemy along dir for duration seconds, overriding its own movement
func (e *Enemy) Knockback(dir mathutil.Vec2, force, duration, now float64) {
	e.knockVel = dir.Normalize().Scale(force)
	e.knockUntil = now + duration
}

func (e *Enemy) KnockedBack(now float64) bool { return now < e.knockUntil }

// step returns where the enemy wants to be after dt. It only reads state,
// so steps for many enemies can be computed concurrently.
func (e *Enemy) step(now, dt float64, player mathutil.Vec2) mathutil.Vec2 {
	if e.dead {
		return e.Pos
	}
	if e.KnockedBack(now) {
		return e.Pos.Add(e.knockVel.Scale(dt))
	}
	if e.Suspended() {
		return e.Pos
	}
	to := player.Sub(e.Pos)
	d := to.Len()
	if d <= e.Radius {
		return e.Pos
	}
	return e.Pos.Add(to.Scale(mathutil.Clamp(e.Speed*dt, 0, d-e.Radius) / d))
}

// tryContact reports the damage dealt to a player in contact at now, if any
func (e *Enemy) tryContact(now float64, player mathutil.Vec2, playerRadius float64) (float64, bool) {
	if e.dead || e.Pos.Dist(player) > e.Radius+playerRadius {
		return 0, false
	}
	if now < e.lastAttack+e.cooldown {
		return 0, false
	}
	e.lastAttack = now
	return e.damage, true
}
