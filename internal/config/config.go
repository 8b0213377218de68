package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeaponLevelCap is the highest level any weapon can reach
const WeaponLevelCap = 10

var ErrInvalidTuning = errors.New("invalid tuning")

// Config holds the arena and combat tuning values
type Config struct {
	Arena   ArenaConfig     `yaml:"arena"`
	Player  PlayerConfig    `yaml:"player"`
	Enemies EnemyConfig     `yaml:"enemies"`
	Combat  CombatConfig    `yaml:"combat"`
	Perks   PerkRulesConfig `yaml:"perks"`
	Waves   WaveConfig      `yaml:"waves"`
}

type ArenaConfig struct {
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	CellSize float64      `yaml:"cell_size"` // spatial grid bucket size
	Walls    []WallConfig `yaml:"walls"`
}

// WallConfig is an axis-aligned obstacle given by its min corner and size.
type WallConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerConfig struct {
	MoveSpeed        float64  `yaml:"move_speed"`
	MaxHealth        float64  `yaml:"max_health"`
	Invulnerability  float64  `yaml:"invulnerability"` // seconds after a hit
	ReviveHealth     float64  `yaml:"revive_health"`
	WeaponSlots      int      `yaml:"weapon_slots"`
	MagnetBaseRadius float64  `yaml:"magnet_base_radius"`
	StartWeapons     []string `yaml:"start_weapons"`
}

type EnemyConfig struct {
	Health         float64 `yaml:"health"`
	Speed          float64 `yaml:"speed"`
	Radius         float64 `yaml:"radius"`
	ContactDamage  float64 `yaml:"contact_damage"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
}

type CombatConfig struct {
	MaxWeaponLevel  int     `yaml:"max_weapon_level"`
	TargetAoEFactor float64 `yaml:"target_aoe_factor"`
	MinAttackSpeed  float64 `yaml:"min_attack_speed"`

	Shockwave  ShockwaveConfig  `yaml:"shockwave"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Chain      ChainConfig      `yaml:"chain"`
	Explosion  ExplosionConfig  `yaml:"explosion"`
	Orbit      OrbitConfig      `yaml:"orbit"`
	Boomerang  BoomerangConfig  `yaml:"boomerang"`
	Vacuum     VacuumConfig     `yaml:"vacuum"`
	Flame      FlameConfig      `yaml:"flame"`
}

type ShockwaveConfig struct {
	Every             int     `yaml:"every"`
	Radius            float64 `yaml:"radius"`
	KnockbackForce    float64 `yaml:"knockback_force"`
	KnockbackDuration float64 `yaml:"knockback_duration"`
}

type ProjectileConfig struct {
	Lifetime     float64 `yaml:"lifetime"`
	HitRadius    float64 `yaml:"hit_radius"`
	SpreadAngle  float64 `yaml:"spread_angle"` // total fan for multi-shot, degrees
	DefaultSpeed float64 `yaml:"default_speed"`
}

type ChainConfig struct {
	Radius         float64 `yaml:"radius"`
	MaxBounces     int     `yaml:"max_bounces"`
	DamageFraction float64 `yaml:"damage_fraction"`
}

type ExplosionConfig struct {
	Radius         float64 `yaml:"radius"`
	DamageFraction float64 `yaml:"damage_fraction"`
}

type OrbitConfig struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"` // degrees per second
	Revolutions   float64 `yaml:"revolutions"`
	SpawnDuration float64 `yaml:"spawn_duration"`
	CooldownBase  float64 `yaml:"cooldown_base"`
	CooldownFloor float64 `yaml:"cooldown_floor"`
}

type BoomerangConfig struct {
	MaxDistance           float64 `yaml:"max_distance"`
	ReturnSpeedMultiplier float64 `yaml:"return_speed_multiplier"`
	CatchRadius           float64 `yaml:"catch_radius"`
}

type VacuumConfig struct {
	Speed        float64 `yaml:"speed"`
	FlyDistance  float64 `yaml:"fly_distance"`
	Radius       float64 `yaml:"radius"`
	Force        float64 `yaml:"force"`
	Duration     float64 `yaml:"duration"`
	TickInterval float64 `yaml:"tick_interval"`
}

type FlameConfig struct {
	Duration   float64 `yaml:"duration"`
	Cooldown   float64 `yaml:"cooldown"`
	ConeAngle  float64 `yaml:"cone_angle"`
	Rate       float64 `yaml:"rate"` // flames per second
	Lifetime   float64 `yaml:"lifetime"`
	TravelTime float64 `yaml:"travel_time"` // seconds to cover the weapon range
}

type PerkRulesConfig struct {
	MaxPerks        int     `yaml:"max_perks"`
	UnlimitedPierce int     `yaml:"unlimited_pierce"`
	MagnetGrowth    float64 `yaml:"magnet_growth"`
	MaxRewardSlots  int     `yaml:"max_reward_slots"`
}

type WaveConfig struct {
	Interval    float64 `yaml:"interval"`
	BaseCount   int     `yaml:"base_count"`
	CountGrowth int     `yaml:"count_growth"`
	SpawnRadius float64 `yaml:"spawn_radius"`
}

// DefaultConfig returns the stock tuning. Loaded files are decoded on top of it,
// so any key left out of config.yaml keeps the value here.
func DefaultConfig() *Config {
	return &Config{
		Arena: ArenaConfig{Width: 60, Height: 40, CellSize: 4},
		Player: PlayerConfig{
			MoveSpeed:        5,
			MaxHealth:        100,
			Invulnerability:  0.5,
			ReviveHealth:     100,
			WeaponSlots:      5,
			MagnetBaseRadius: 2,
		},
		Enemies: EnemyConfig{Health: 30, Speed: 1.5, Radius: 0.4, ContactDamage: 5, AttackCooldown: 1},
		Combat: CombatConfig{
			MaxWeaponLevel:  10,
			TargetAoEFactor: 0.7,
			MinAttackSpeed:  0.05,
			Shockwave: ShockwaveConfig{
				Every:             10,
				Radius:            5,
				KnockbackForce:    8,
				KnockbackDuration: 0.3,
			},
			Projectile: ProjectileConfig{Lifetime: 5, HitRadius: 0.3, SpreadAngle: 40, DefaultSpeed: 10},
			Chain:      ChainConfig{Radius: 5, MaxBounces: 3, DamageFraction: 0.1},
			Explosion:  ExplosionConfig{Radius: 2, DamageFraction: 0.5},
			Orbit: OrbitConfig{
				Radius:        2,
				Speed:         180,
				Revolutions:   5,
				SpawnDuration: 0.3,
				CooldownBase:  5,
				CooldownFloor: 0.5,
			},
			Boomerang: BoomerangConfig{MaxDistance: 6, ReturnSpeedMultiplier: 1.2, CatchRadius: 0.5},
			Vacuum: VacuumConfig{
				Speed:        6,
				FlyDistance:  3.5,
				Radius:       3,
				Force:        3,
				Duration:     5,
				TickInterval: 0.5,
			},
			Flame: FlameConfig{
				Duration:   1.5,
				Cooldown:   3,
				ConeAngle:  30,
				Rate:       30,
				Lifetime:   0.6,
				TravelTime: 0.6,
			},
		},
		Perks: PerkRulesConfig{
			MaxPerks:        50,
			UnlimitedPierce: 999,
			MagnetGrowth:    0.15,
			MaxRewardSlots:  2,
		},
		Waves: WaveConfig{Interval: 20, BaseCount: 8, CountGrowth: 4, SpawnRadius: 12},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning config: %w", err)
	}
	if lvl := cfg.Combat.MaxWeaponLevel; lvl > WeaponLevelCap {
		return nil, fmt.Errorf("max_weapon_level %d above %d: %w", lvl, WeaponLevelCap, ErrInvalidTuning)
	}
	return cfg, nil
}

// MustLoadConfig loads configuration or panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic(err)
	}
	return cfg
}

// OrbitLifetime is the time an orbiter spends circling after its spawn ramp.
func (o OrbitConfig) OrbitLifetime() float64 {
	if o.Speed <= 0 {
		return 0
	}
	return o.Revolutions * 360 / o.Speed
}

// OrbitCooldown returns the gap between orbital batches for a weapon attack speed.
func (o OrbitConfig) OrbitCooldown(attackSpeed float64) float64 {
	return max(o.CooldownFloor, o.CooldownBase-attackSpeed)
}

// Shots is the number of flames emitted by one stream.
func (f FlameConfig) Shots() int {
	n := int(f.Rate*f.Duration + 0.5)
	if n < 1 {
		return 1
	}
	return n
}
