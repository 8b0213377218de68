package combat

import (
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

//go:generate go tool mockgen -destination=./mocks/collaborators_mock.go -package=mocks . Health,StatsTracker,MovementControl

// EntityID is the stable handle of a targetable entity
type EntityID = uint64

// Health is the damage sink of a target
type Health interface {
	TakeDamage(amount float64, crit bool)
	CurrentHealth() float64
}

// Defender is optionally implemented by targets that scale incoming damage
type Defender interface {
	DamageTakenMultiplier() float64
}

// Killable is optionally implemented by targets with an on-death path
type Killable interface {
	OnDeath()
}

// StatsTracker records dealt damage for the results screen
type StatsTracker interface {
	AddDamageDealt(amount float64)
	AddWeaponDamage(label string, amount float64)
}

// SpatialQuery answers proximity questions about targets
type SpatialQuery interface {
	FindWithinRadius(p mathutil.Vec2, r float64) []EntityID
	Nearest(p mathutil.Vec2, maxRange float64) (EntityID, bool)
	Position(id EntityID) (mathutil.Vec2, bool)
}

// MovementControl suspends and resumes a target's own movement
type MovementControl interface {
	Disable()
	Enable()
}

// Targets resolves entity handles to their components. Both lookups return
// nil once the entity is gone.
type Targets interface {
	Health(id EntityID) Health
	Movement(id EntityID) MovementControl
}

// Physics is the world side of movement: obstacles and forced displacement
type Physics interface {
	Blocked(p mathutil.Vec2) bool
	Displace(id EntityID, to mathutil.Vec2)
	Knockback(id EntityID, dir mathutil.Vec2, force, duration float64)
}

// PlayerLocator tracks the attacker's position for orbiters and returning projectiles
type PlayerLocator interface {
	PlayerPosition() mathutil.Vec2
}

// Modifiers is the read side of the perk aggregator
type Modifiers interface {
	AdditiveBonus(s perks.Stat) float64
	Multiplier(s perks.Stat) float64
	HasFlag(f perks.Flag) bool
	MaxPierceCount() int
	ProjectileCount() int
}
