package arena

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

const playerRadius = 0.5

// Player is the attacker. Its derived stats are read from the perk
// aggregator on every call, so a new perk applies on the next tick.
type Player struct {
	Pos mathutil.Vec2

	cfg         config.PlayerConfig
	mods        *perks.Aggregator
	perks       *perks.Collection
	rng         *rand.Rand
	health      float64
	invulnUntil float64
	dead        bool
}

func newPlayer(pos mathutil.Vec2, cfg config.PlayerConfig, coll *perks.Collection, mods *perks.Aggregator, rng *rand.Rand) *Player {
	p := &Player{Pos: pos, cfg: cfg, mods: mods, perks: coll, rng: rng}
	p.health = p.MaxHealth()
	return p
}

// MaxHealth is (base + bonus) * multiplier
func (p *Player) MaxHealth() float64 {
	return (p.cfg.MaxHealth + p.mods.AdditiveBonus(perks.StatMaxHealth)) * p.mods.Multiplier(perks.StatMaxHealth)
}

func (p *Player) Health() float64 { return p.health }

func (p *Player) Dead() bool { return p.dead }

func (p *Player) MoveSpeed() float64 {
	return p.cfg.MoveSpeed * p.mods.Multiplier(perks.StatMoveSpeed)
}

// MagnetRadius is the pickup radius offered to the loot layer
func (p *Player) MagnetRadius() float64 {
	return p.cfg.MagnetBaseRadius + p.mods.MagnetRadius()
}

// regen heals by the regeneration bonus and keeps health within the current max
func (p *Player) regen(dt float64) {
	if p.dead {
		return
	}
	limit := p.MaxHealth()
	if rate := p.mods.AdditiveBonus(perks.StatHealthRegen); rate > 0 {
		p.health += rate * dt
	}
	p.health = math.Min(p.health, limit)
}

// TakeDamage applies an enemy hit at now: dodge roll, damage-taken
// multiplier, flat armor, then a one-shot revive if the hit is lethal.
// It returns the damage actually taken.
func (p *Player) TakeDamage(amount, now float64) float64 {
	if p.dead || now < p.invulnUntil {
		return 0
	}
	if dodge := p.mods.AdditiveBonus(perks.StatDodgeChance); dodge > 0 && p.rng.Float64() < dodge {
		slog.Debug("player dodged", "amount", amount)
		return 0
	}

	amount *= p.mods.Multiplier(perks.StatDamageTaken)
	amount = math.Max(amount-p.mods.AdditiveBonus(perks.StatArmor), 0)
	p.health = math.Max(p.health-amount, 0)

	if p.health > 0 {
		p.invulnUntil = now + p.cfg.Invulnerability
		return amount
	}

	if key, ok := p.perks.ConsumeOneShot(perks.FlagGuardianAngel); ok {
		p.health = math.Min(p.cfg.ReviveHealth, p.MaxHealth())
		p.invulnUntil = now + 2*p.cfg.Invulnerability
		slog.Info("player revived", "perk", key, "health", p.health)
		return amount
	}

	p.dead = true
	slog.Info("player died")
	return amount
}
