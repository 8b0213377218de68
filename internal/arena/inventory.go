package arena

import (
	"errors"
	"fmt"
	"log/slog"

	"sweeptide/internal/combat"
	"sweeptide/internal/config"
)

var (
	ErrNoFreeSlot     = errors.New("no free weapon slot")
	ErrWeaponMaxLevel = errors.New("weapon already at max level")
	ErrUnknownWeapon  = errors.New("unknown weapon")
	ErrInvalidWeapon  = errors.New("weapon definition is invalid")
	ErrUnknownPerk    = errors.New("unknown perk")
	ErrMissingData    = errors.New("assets not loaded")
)

// Inventory holds the player's weapons in slot order. It is also the
// loadout perk requirements are checked against.
type Inventory struct {
	slots    []*combat.Weapon
	maxSlots int
	maxLevel int
}

func NewInventory(maxSlots, maxLevel int) *Inventory {
	if maxSlots <= 0 {
		maxSlots = 5
	}
	return &Inventory{maxSlots: maxSlots, maxLevel: maxLevel}
}

// Add equips a weapon or, when it is already owned, levels it up
func (inv *Inventory) Add(def *config.WeaponDefinition) (*combat.Weapon, error) {
	if def == nil {
		return nil, ErrUnknownWeapon
	}
	if w := inv.Find(def.Key); w != nil {
		if !w.LevelUp() {
			return w, fmt.Errorf("%s: %w", def.Key, ErrWeaponMaxLevel)
		}
		slog.Debug("weapon leveled up", "weapon", def.Key, "level", w.Level())
		return w, nil
	}
	if len(inv.slots) >= inv.maxSlots {
		return nil, fmt.Errorf("%s: %w", def.Key, ErrNoFreeSlot)
	}

	w := combat.NewWeapon(def, inv.maxLevel)
	inv.slots = append(inv.slots, w)
	slog.Debug("weapon equipped", "weapon", def.Key, "slot", len(inv.slots)-1)
	return w, nil
}

// Find returns the owned weapon with key, or nil
func (inv *Inventory) Find(key string) *combat.Weapon {
	for _, w := range inv.slots {
		if w.Key() == key {
			return w
		}
	}
	return nil
}

// Weapons returns the equipped weapons in slot order
func (inv *Inventory) Weapons() []*combat.Weapon {
	return inv.slots
}

func (inv *Inventory) Len() int { return len(inv.slots) }

func (inv *Inventory) MaxSlots() int { return inv.maxSlots }

// HasRangedWeapon counts any weapon that launches projectiles as ranged
func (inv *Inventory) HasRangedWeapon() bool {
	for _, w := range inv.slots {
		if w.Def != nil && (w.Def.IsRanged() || w.Def.HasProjectile()) {
			return true
		}
	}
	return false
}

func (inv *Inventory) HasMeleeWeapon() bool {
	for _, w := range inv.slots {
		if w.Def != nil && w.Def.IsMelee() && !w.Def.HasProjectile() {
			return true
		}
	}
	return false
}
