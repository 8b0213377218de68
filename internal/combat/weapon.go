package combat

import (
	"math"

	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
)

// Weapon is an owned weapon: a shared definition plus per-owner state
type Weapon struct {
	Def *config.WeaponDefinition

	level    int
	maxLevel int

	lastAttack float64
	meleeCount int

	orbit  orbitState
	stream streamState
	bag    ProjectileID
}

type orbitState struct {
	batch   []ProjectileID
	readyAt float64
}

// MaxWeaponLevel is the hard level cap of every weapon
const MaxWeaponLevel = config.WeaponLevelCap

// NewWeapon creates a level-1 weapon. maxLevel <= 0 means MaxWeaponLevel;
// larger values are capped to it.
func NewWeapon(def *config.WeaponDefinition, maxLevel int) *Weapon {
	if maxLevel <= 0 {
		maxLevel = MaxWeaponLevel
	}
	maxLevel = mathutil.IntClamp(maxLevel, 1, MaxWeaponLevel)
	return &Weapon{
		Def:        def,
		level:      1,
		maxLevel:   maxLevel,
		lastAttack: math.Inf(-1),
		stream:     streamState{lastStart: math.Inf(-1)},
	}
}

func (w *Weapon) Key() string {
	if w.Def == nil {
		return ""
	}
	return w.Def.Key
}

func (w *Weapon) Name() string {
	if w.Def == nil {
		return ""
	}
	return w.Def.Name
}

func (w *Weapon) Level() int { return w.level }

func (w *Weapon) MaxLevel() int { return w.maxLevel }

func (w *Weapon) CanLevelUp() bool { return w.level < w.maxLevel }

// LevelUp raises the level by one unless already at max
func (w *Weapon) LevelUp() bool {
	if !w.CanLevelUp() {
		return false
	}
	w.level++
	return true
}

// SetLevel forces a level, clamped to 1..max
func (w *Weapon) SetLevel(level int) {
	w.level = mathutil.IntClamp(level, 1, w.maxLevel)
}

// Disabled weapons never attack: missing or invalid definitions
func (w *Weapon) Disabled() bool {
	return w.Def == nil || w.Def.Invalid || w.Def.Shape == config.ShapeUnset
}

// IsMelee picks the melee or ranged damage multiplier. Anything that
// launches projectiles is ranged whatever its declared type.
func (w *Weapon) IsMelee() bool {
	return w.Def != nil && !w.Def.HasProjectile()
}

// LastAttack is the game time of the last successful attempt
func (w *Weapon) LastAttack() float64 {
	return w.lastAttack
}

// MeleeCount is the number of melee swings since the last shockwave
func (w *Weapon) MeleeCount() int {
	return w.meleeCount
}

// Streaming reports whether a flamethrower stream is in progress
func (w *Weapon) Streaming() bool {
	return w.stream.firing
}

func (w *Weapon) projectileKind() config.ProjectileKind {
	if w.Def == nil || w.Def.Projectile == nil {
		return config.KindNone
	}
	return w.Def.Projectile.ParsedKind
}

func (w *Weapon) projectileSpeed(fallback float64) float64 {
	if w.Def != nil && w.Def.Projectile != nil && w.Def.Projectile.Speed > 0 {
		return w.Def.Projectile.Speed
	}
	return fallback
}
