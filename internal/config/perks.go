package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// PerkEffects holds per-level deltas. A perk at level n contributes n times each value.
type PerkEffects struct {
	DamageMultiplier       float64 `yaml:"damage_multiplier"`
	MeleeDamageMultiplier  float64 `yaml:"melee_damage_multiplier"`
	RangedDamageMultiplier float64 `yaml:"ranged_damage_multiplier"`
	CritChanceBonus        float64 `yaml:"crit_chance_bonus"`
	CritMultiplierBonus    float64 `yaml:"crit_multiplier_bonus"`

	MoveSpeedMultiplier   float64 `yaml:"move_speed_multiplier"`
	AttackSpeedMultiplier float64 `yaml:"attack_speed_multiplier"`

	MaxHealthBonus        float64 `yaml:"max_health_bonus"`
	MaxHealthMultiplier   float64 `yaml:"max_health_multiplier"`
	HealthRegenPerSecond  float64 `yaml:"health_regen_per_second"`
	DamageTakenMultiplier float64 `yaml:"damage_taken_multiplier"`
	DodgeChance           float64 `yaml:"dodge_chance"`
	ArmorBonus            float64 `yaml:"armor_bonus"`

	AttackRangeMultiplier float64 `yaml:"attack_range_multiplier"`
	ProjectileCountBonus  float64 `yaml:"projectile_count_bonus"`

	GarbageValueMultiplier float64 `yaml:"garbage_value_multiplier"`
	ShopDiscountMultiplier float64 `yaml:"shop_discount_multiplier"`
	ExpMultiplier          float64 `yaml:"exp_multiplier"`
	BagCapacityBonus       float64 `yaml:"bag_capacity_bonus"`
	BagCapacityMultiplier  float64 `yaml:"bag_capacity_multiplier"`

	CanPierce              bool    `yaml:"can_pierce"`
	PierceCount            int     `yaml:"pierce_count"`
	HasChainLightning      bool    `yaml:"chain_lightning"`
	HasKnockback           bool    `yaml:"knockback"`
	HasMagnet              bool    `yaml:"magnet"`
	MagnetRadius           float64 `yaml:"magnet_radius"`
	HasGuardianAngel       bool    `yaml:"guardian_angel"`
	CanPhaseThrough        bool    `yaml:"phase_through"`
	GrantsExtraRewardSlots bool    `yaml:"grants_extra_reward_slots"`
	ExtraRewardSlots       int     `yaml:"extra_reward_slots"`

	AllStatsMultiplier float64 `yaml:"all_stats_multiplier"`
}

// PerkDefinition is the static description of a perk
type PerkDefinition struct {
	Key         string      `yaml:"-"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	MaxLevel    int         `yaml:"max_level"`
	Stackable   bool        `yaml:"stackable"`
	Type        string      `yaml:"type"`   // damage, speed, defense, utility, economy, special
	Rarity      string      `yaml:"rarity"` // common, rare, epic, legendary
	Effects     PerkEffects `yaml:"effects"`

	RequiresRangedWeapon    bool `yaml:"requires_ranged_weapon"`
	RequiresMeleeWeapon     bool `yaml:"requires_melee_weapon"`
	RequiresBothWeaponTypes bool `yaml:"requires_both_weapon_types"`
}

// HasRequirements reports whether the perk needs a particular weapon loadout
func (p *PerkDefinition) HasRequirements() bool {
	return p.RequiresRangedWeapon || p.RequiresMeleeWeapon || p.RequiresBothWeaponTypes
}

// PerkConfig is the root of perks.yaml
type PerkConfig struct {
	Perks map[string]*PerkDefinition `yaml:"perks"`
}

// LoadPerkConfig loads perk definitions from YAML
func LoadPerkConfig(filename string) (*PerkConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read perk config: %w", err)
	}

	var cfg PerkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse perk config: %w", err)
	}
	for key, def := range cfg.Perks {
		if def == nil {
			return nil, fmt.Errorf("perk %s: empty definition", key)
		}
		def.Key = key
		if def.Name == "" {
			def.Name = key
		}
		if def.MaxLevel < 1 {
			def.MaxLevel = 1
		}
		if def.Effects.GrantsExtraRewardSlots && def.Effects.ExtraRewardSlots == 0 {
			def.Effects.ExtraRewardSlots = 1
		}
	}
	return &cfg, nil
}

// Keys returns perk keys in a stable order
func (c *PerkConfig) Keys() []string {
	keys := make([]string, 0, len(c.Perks))
	for k := range c.Perks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *PerkConfig) GetPerkDefinition(key string) (*PerkDefinition, bool) {
	def, ok := c.Perks[key]
	return def, ok
}
