package perks

import "sweeptide/internal/config"

// Loadout reports which weapon families the player currently owns
type Loadout interface {
	HasRangedWeapon() bool
	HasMeleeWeapon() bool
}

// MeetsRequirements evaluates a perk's equip requirement against the current
// loadout. Perks without requirements always pass; with no loadout to
// inspect a requirement counts as not met.
func MeetsRequirements(def *config.PerkDefinition, loadout Loadout) bool {
	if def == nil {
		return false
	}
	if !def.HasRequirements() {
		return true
	}
	if loadout == nil {
		return false
	}

	ranged, melee := loadout.HasRangedWeapon(), loadout.HasMeleeWeapon()
	switch {
	case def.RequiresBothWeaponTypes:
		return ranged && melee
	case def.RequiresRangedWeapon:
		return ranged
	case def.RequiresMeleeWeapon:
		return melee
	}
	return true
}
