package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrShapeUnset            = errors.New("attack shape not set")
	ErrUnknownShape          = errors.New("unknown attack shape")
	ErrUnknownProjectileKind = errors.New("unknown projectile kind")
)

// AttackShape selects how a melee attack picks its targets.
type AttackShape int

const (
	ShapeUnset AttackShape = iota
	ShapeCircle
	ShapeCone
	ShapeRectangle
	ShapeNearestAoE
	ShapeProjectile
)

var shapeNames = map[string]AttackShape{
	"circle":      ShapeCircle,
	"cone":        ShapeCone,
	"rectangle":   ShapeRectangle,
	"nearest_aoe": ShapeNearestAoE,
	"projectile":  ShapeProjectile,
}

func (s AttackShape) String() string {
	for name, v := range shapeNames {
		if v == s {
			return name
		}
	}
	return "unset"
}

// ParseAttackShape converts a YAML attack_type value
func ParseAttackShape(name string) (AttackShape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ShapeUnset, ErrShapeUnset
	}
	s, ok := shapeNames[name]
	if !ok {
		return ShapeUnset, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return s, nil
}

// ProjectileKind selects the flight behavior of a ranged weapon.
type ProjectileKind int

const (
	KindNone ProjectileKind = iota
	KindSimple
	KindExplosive
	KindOrbiting
	KindBoomerang
	KindVacuumBag
	KindFlame
)

var kindNames = map[string]ProjectileKind{
	"simple":     KindSimple,
	"explosive":  KindExplosive,
	"orbiting":   KindOrbiting,
	"boomerang":  KindBoomerang,
	"vacuum_bag": KindVacuumBag,
	"flame":      KindFlame,
}

func (k ProjectileKind) String() string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "none"
}

// WeaponStats is one row of weapon numbers, used for both base values and per-level growth.
type WeaponStats struct {
	Damage         float64 `yaml:"damage"`
	AttackSpeed    float64 `yaml:"attack_speed"` // attacks per second
	Range          float64 `yaml:"range"`
	CritChance     float64 `yaml:"crit_chance"`
	CritMultiplier float64 `yaml:"crit_multiplier"`
}

// ProjectileDefinition describes what a ranged weapon launches
type ProjectileDefinition struct {
	Kind  string  `yaml:"kind"`
	Speed float64 `yaml:"speed"`

	ParsedKind ProjectileKind `yaml:"-"`
}

// WeaponDefinition is the static, shared description of a weapon
type WeaponDefinition struct {
	Key          string                `yaml:"-"`
	Name         string                `yaml:"name"`
	Description  string                `yaml:"description"`
	Type         string                `yaml:"type"` // melee or ranged
	AttackType   string                `yaml:"attack_type"`
	AttackAngle  float64               `yaml:"attack_angle"`
	AttackWidth  float64               `yaml:"attack_width"`
	AttackLength float64               `yaml:"attack_length"` // 0 uses the weapon range
	Stream       bool                  `yaml:"stream"`        // flamethrower style burst
	Base         WeaponStats           `yaml:"base"`
	PerLevel     WeaponStats           `yaml:"per_level"`
	Projectile   *ProjectileDefinition `yaml:"projectile"`

	Shape AttackShape `yaml:"-"`
	// Invalid weapons are excluded from the dispatcher.
	Invalid bool `yaml:"-"`
}

func (w *WeaponDefinition) IsMelee() bool {
	return strings.EqualFold(w.Type, "melee")
}

func (w *WeaponDefinition) IsRanged() bool {
	return strings.EqualFold(w.Type, "ranged")
}

// HasProjectile reports whether the weapon launches projectiles. Perk
// requirements treat such weapons as ranged.
func (w *WeaponDefinition) HasProjectile() bool {
	return w.Projectile != nil
}

func (w *WeaponDefinition) scaled(base, perLevel float64, level int) float64 {
	return base + perLevel*float64(level-1)
}

func (w *WeaponDefinition) GetDamage(level int) float64 {
	return w.scaled(w.Base.Damage, w.PerLevel.Damage, level)
}

func (w *WeaponDefinition) GetAttackSpeed(level int) float64 {
	return w.scaled(w.Base.AttackSpeed, w.PerLevel.AttackSpeed, level)
}

func (w *WeaponDefinition) GetRange(level int) float64 {
	return w.scaled(w.Base.Range, w.PerLevel.Range, level)
}

// GetCritChance is capped at 1.
func (w *WeaponDefinition) GetCritChance(level int) float64 {
	return math.Min(w.scaled(w.Base.CritChance, w.PerLevel.CritChance, level), 1)
}

func (w *WeaponDefinition) GetCritMultiplier(level int) float64 {
	return w.scaled(w.Base.CritMultiplier, w.PerLevel.CritMultiplier, level)
}

// WeaponConfig is the root of weapons.yaml
type WeaponConfig struct {
	Weapons map[string]*WeaponDefinition `yaml:"weapons"`
}

// LoadWeaponConfig reads weapon definitions and validates them. Weapons that
// fail validation stay in the map flagged Invalid; the returned error lists
// every problem found.
func LoadWeaponConfig(filename string) (*WeaponConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read weapon config: %w", err)
	}

	var cfg WeaponConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse weapon config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		slog.Warn("weapon definitions have problems", "file", filename, "error", err)
	}
	return &cfg, nil
}

// Validate resolves shapes and projectile kinds. Each problem is reported
// once and marks the weapon Invalid.
func (c *WeaponConfig) Validate() error {
	var errs []error
	for _, key := range c.Keys() {
		def := c.Weapons[key]
		if def == nil {
			delete(c.Weapons, key)
			errs = append(errs, fmt.Errorf("weapon %s: empty definition", key))
			continue
		}
		def.Key = key
		if def.Name == "" {
			def.Name = key
		}
		if err := def.validate(); err != nil {
			def.Invalid = true
			errs = append(errs, fmt.Errorf("weapon %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (w *WeaponDefinition) validate() error {
	shape, err := ParseAttackShape(w.AttackType)
	if err != nil {
		return err
	}
	w.Shape = shape

	if w.Projectile != nil {
		kind, ok := kindNames[strings.ToLower(w.Projectile.Kind)]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProjectileKind, w.Projectile.Kind)
		}
		w.Projectile.ParsedKind = kind
	}
	if w.Type == "" {
		if shape == ShapeProjectile || w.Projectile != nil {
			w.Type = "ranged"
		} else {
			w.Type = "melee"
		}
	}
	return nil
}

// Keys returns weapon keys in a stable order
func (c *WeaponConfig) Keys() []string {
	keys := make([]string, 0, len(c.Weapons))
	for k := range c.Weapons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetWeaponDefinition returns a weapon by key
func (c *WeaponConfig) GetWeaponDefinition(key string) (*WeaponDefinition, bool) {
	def, ok := c.Weapons[key]
	return def, ok
}
