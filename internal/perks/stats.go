package perks

import "sweeptide/internal/config"

// Stat names a player or weapon statistic that perks can modify
type Stat string

const (
	StatDamage       Stat = "damage"
	StatMeleeDamage  Stat = "meleeDamage"
	StatRangedDamage Stat = "rangedDamage"
	StatAttackSpeed  Stat = "attackSpeed"
	StatAttackRange  Stat = "attackRange"
	StatMoveSpeed    Stat = "moveSpeed"
	StatMaxHealth    Stat = "maxHealth"
	StatDamageTaken  Stat = "damageTaken"
	StatBagCapacity  Stat = "bagCapacity"
	StatGarbageValue Stat = "garbageValue"
	StatShopDiscount Stat = "shopDiscount"
	StatExp          Stat = "exp"

	StatCritChance      Stat = "critChance"
	StatCritMultiplier  Stat = "critMultiplier"
	StatDodgeChance     Stat = "dodgeChance"
	StatProjectileCount Stat = "projectileCount"
	StatHealthRegen     Stat = "healthRegen"
	StatArmor           Stat = "armor"
)

// Flag names a boolean special effect
type Flag string

const (
	FlagPierce         Flag = "pierce"
	FlagChainLightning Flag = "chainLightning"
	FlagKnockback      Flag = "knockback"
	FlagMagnet         Flag = "magnet"
	FlagGuardianAngel  Flag = "guardianAngel"
	FlagPhaseThrough   Flag = "phaseThrough"
)

// multiplierDelta returns the per-level delta for a multiplicative stat and
// whether it shrinks the stat instead of growing it.
func multiplierDelta(e *config.PerkEffects, s Stat) (delta float64, discount bool) {
	switch s {
	case StatDamage:
		return e.DamageMultiplier, false
	case StatMeleeDamage:
		return e.MeleeDamageMultiplier, false
	case StatRangedDamage:
		return e.RangedDamageMultiplier, false
	case StatAttackSpeed:
		return e.AttackSpeedMultiplier, false
	case StatAttackRange:
		return e.AttackRangeMultiplier, false
	case StatMoveSpeed:
		return e.MoveSpeedMultiplier, false
	case StatMaxHealth:
		return e.MaxHealthMultiplier, false
	case StatDamageTaken:
		return e.DamageTakenMultiplier, false
	case StatBagCapacity:
		return e.BagCapacityMultiplier, false
	case StatGarbageValue:
		return e.GarbageValueMultiplier, false
	case StatShopDiscount:
		return e.ShopDiscountMultiplier, true
	case StatExp:
		return e.ExpMultiplier, false
	}
	return 0, false
}

// additiveDelta returns the per-level flat bonus for a stat
func additiveDelta(e *config.PerkEffects, s Stat) float64 {
	switch s {
	case StatCritChance:
		return e.CritChanceBonus
	case StatCritMultiplier:
		return e.CritMultiplierBonus
	case StatDodgeChance:
		return e.DodgeChance
	case StatProjectileCount:
		return e.ProjectileCountBonus
	case StatHealthRegen:
		return e.HealthRegenPerSecond
	case StatArmor:
		return e.ArmorBonus
	case StatMaxHealth:
		return e.MaxHealthBonus
	case StatBagCapacity:
		return e.BagCapacityBonus
	}
	return 0
}

// universalStat reports whether the all-stats bonus scales s. Melee and
// ranged damage are excluded because they are always applied on top of the
// general damage multiplier.
func universalStat(s Stat) bool {
	switch s {
	case StatDamage, StatAttackSpeed, StatAttackRange, StatMoveSpeed, StatMaxHealth:
		return true
	}
	return false
}

func hasFlag(e *config.PerkEffects, f Flag) bool {
	switch f {
	case FlagPierce:
		return e.CanPierce
	case FlagChainLightning:
		return e.HasChainLightning
	case FlagKnockback:
		return e.HasKnockback
	case FlagMagnet:
		return e.HasMagnet
	case FlagGuardianAngel:
		return e.HasGuardianAngel
	case FlagPhaseThrough:
		return e.CanPhaseThrough
	}
	return false
}
