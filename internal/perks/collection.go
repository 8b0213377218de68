package perks

import (
	"errors"
	"fmt"
	"log/slog"

	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
)

var (
	ErrNilPerk            = errors.New("nil perk definition")
	ErrRequirementsNotMet = errors.New("perk requirements not met")
	ErrMaxLevel           = errors.New("perk already at max level")
	ErrPerkLimit          = errors.New("perk limit reached")
)

// ActivePerk is a perk the player owns together with its current level
type ActivePerk struct {
	Def   *config.PerkDefinition
	Level int
}

// Collection is the player's ordered perk stack. It is only mutated between
// combat ticks (reward screen, debug keys), never from inside one.
type Collection struct {
	perks    []ActivePerk
	maxPerks int
	loadout  Loadout
	bus      *events.Bus
}

func NewCollection(maxPerks int, loadout Loadout, bus *events.Bus) *Collection {
	if maxPerks <= 0 {
		maxPerks = 50
	}
	return &Collection{maxPerks: maxPerks, loadout: loadout, bus: bus}
}

// SetLoadout swaps the inventory used for requirement checks
func (c *Collection) SetLoadout(l Loadout) {
	c.loadout = l
}

func (c *Collection) find(key string) int {
	for i, p := range c.perks {
		if p.Def.Key == key {
			return i
		}
	}
	return -1
}

// Add grants a perk or levels up an owned one, returning the resulting level.
func (c *Collection) Add(def *config.PerkDefinition) (int, error) {
	if def == nil {
		return 0, ErrNilPerk
	}
	if !MeetsRequirements(def, c.loadout) {
		return 0, fmt.Errorf("%s: %w", def.Key, ErrRequirementsNotMet)
	}

	if i := c.find(def.Key); i >= 0 {
		p := &c.perks[i]
		if p.Level >= def.MaxLevel {
			return p.Level, fmt.Errorf("%s: %w", def.Key, ErrMaxLevel)
		}
		p.Level++
		slog.Debug("perk leveled up", "perk", def.Key, "level", p.Level)
		c.bus.Publish(events.PerkLeveledUp{PerkKey: def.Key, Level: p.Level})
		return p.Level, nil
	}

	if len(c.perks) >= c.maxPerks {
		return 0, ErrPerkLimit
	}
	c.perks = append(c.perks, ActivePerk{Def: def, Level: 1})
	slog.Debug("perk added", "perk", def.Key)
	c.bus.Publish(events.PerkAdded{PerkKey: def.Key, Level: 1})
	return 1, nil
}

// SetLevel forces a perk to a level, clamped to 1..MaxLevel. Used for preset
// loadouts; requirements are not checked and no events fire.
func (c *Collection) SetLevel(def *config.PerkDefinition, level int) int {
	if def == nil {
		return 0
	}
	level = mathutil.IntClamp(level, 1, mathutil.IntMax(def.MaxLevel, 1))
	if i := c.find(def.Key); i >= 0 {
		c.perks[i].Level = level
		return level
	}
	if len(c.perks) >= c.maxPerks {
		return 0
	}
	c.perks = append(c.perks, ActivePerk{Def: def, Level: level})
	return level
}

// Level returns the owned level of a perk, or 0
func (c *Collection) Level(key string) int {
	if i := c.find(key); i >= 0 {
		return c.perks[i].Level
	}
	return 0
}

// ActivePerks returns a snapshot of the stack in acquisition order
func (c *Collection) ActivePerks() []ActivePerk {
	out := make([]ActivePerk, len(c.perks))
	copy(out, c.perks)
	return out
}

func (c *Collection) Count() int {
	return len(c.perks)
}

// ConsumeOneShot removes the first perk carrying flag (e.g. guardian angel
// after it saves the player) and returns its key.
func (c *Collection) ConsumeOneShot(flag Flag) (string, bool) {
	for i, p := range c.perks {
		if hasFlag(&p.Def.Effects, flag) {
			c.perks = append(c.perks[:i], c.perks[i+1:]...)
			slog.Info("one-shot perk consumed", "perk", p.Def.Key)
			return p.Def.Key, true
		}
	}
	return "", false
}

// Reset drops every perk
func (c *Collection) Reset() {
	c.perks = nil
}
