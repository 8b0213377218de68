package perks

import (
	"math"

	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
)

// Source supplies the active perk stack
type Source interface {
	ActivePerks() []ActivePerk
}

// Aggregator folds the active perk stack into stat modifiers. It holds no
// derived state: every query walks the stack again, so perk or gear changes
// show up on the next call.
type Aggregator struct {
	source  Source
	loadout Loadout
	rules   config.PerkRulesConfig
}

func NewAggregator(source Source, loadout Loadout, rules config.PerkRulesConfig) *Aggregator {
	return &Aggregator{source: source, loadout: loadout, rules: rules}
}

func (a *Aggregator) active() []ActivePerk {
	if a.source == nil {
		return nil
	}
	return a.source.ActivePerks()
}

// AdditiveBonus sums delta*level over every perk contributing to s
func (a *Aggregator) AdditiveBonus(s Stat) float64 {
	total := 0.0
	for _, p := range a.active() {
		total += additiveDelta(&p.Def.Effects, s) * float64(p.Level)
	}
	return total
}

// Multiplier is the product of (1 + delta*level) over the stack, or
// (1 - delta*level) for discount stats. A factor never goes below zero.
func (a *Aggregator) Multiplier(s Stat) float64 {
	m := 1.0
	for _, p := range a.active() {
		lvl := float64(p.Level)
		delta, discount := multiplierDelta(&p.Def.Effects, s)
		if delta != 0 {
			if discount {
				m *= math.Max(0, 1-delta*lvl)
			} else {
				m *= math.Max(0, 1+delta*lvl)
			}
		}

		all := p.Def.Effects.AllStatsMultiplier
		if all > 0 && universalStat(s) && MeetsRequirements(p.Def, a.loadout) {
			m *= 1 + all*lvl
		}
	}
	return m
}

// HasFlag reports whether any active perk carries f
func (a *Aggregator) HasFlag(f Flag) bool {
	for _, p := range a.active() {
		if hasFlag(&p.Def.Effects, f) {
			return true
		}
	}
	return false
}

// MaxPierceCount sums pierceCount*level over piercing perks. A piercing
// perk at its max level lifts the budget to the unlimited sentinel.
func (a *Aggregator) MaxPierceCount() int {
	total := 0
	for _, p := range a.active() {
		e := &p.Def.Effects
		if !e.CanPierce {
			continue
		}
		if p.Level >= p.Def.MaxLevel {
			return a.unlimitedPierce()
		}
		total += e.PierceCount * p.Level
	}
	return total
}

func (a *Aggregator) unlimitedPierce() int {
	if a.rules.UnlimitedPierce > 0 {
		return a.rules.UnlimitedPierce
	}
	return 999
}

// MagnetRadius adds base + base*growth*(level-1) for each magnet perk
func (a *Aggregator) MagnetRadius() float64 {
	growth := a.rules.MagnetGrowth
	r := 0.0
	for _, p := range a.active() {
		e := &p.Def.Effects
		if !e.HasMagnet {
			continue
		}
		r += e.MagnetRadius + e.MagnetRadius*growth*float64(p.Level-1)
	}
	return r
}

// ProjectileCount is the number of projectiles per ranged attack
func (a *Aggregator) ProjectileCount() int {
	return 1 + int(math.Round(a.AdditiveBonus(StatProjectileCount)))
}

// BonusRewardSlots is the number of extra reward choices granted by perks
func (a *Aggregator) BonusRewardSlots() int {
	slots := 0
	for _, p := range a.active() {
		e := &p.Def.Effects
		if e.GrantsExtraRewardSlots {
			slots += e.ExtraRewardSlots * p.Level
		}
	}
	limit := a.rules.MaxRewardSlots
	if limit <= 0 {
		limit = 2
	}
	return mathutil.IntClamp(slots, 0, limit)
}
