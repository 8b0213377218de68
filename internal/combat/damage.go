package combat

import (
	"log/slog"
	"math"

	"sweeptide/internal/events"
)

// Stats tags appended to the weapon name for secondary damage sources
const (
	TagWave      = "Wave"
	TagChain     = "Chain lightning"
	TagExplosion = "Explosion"
	TagReturn    = "Return"
)

// DamageEvent is one application of damage to one target
type DamageEvent struct {
	Target EntityID
	Amount float64
	Crit   bool
	Weapon string // weapon display name
	Tag    string // secondary source, empty for the primary hit
}

// Label is the per-weapon stats key, e.g. "Boomerang (Return)"
func (ev DamageEvent) Label() string {
	if ev.Tag == "" {
		return ev.Weapon
	}
	return ev.Weapon + " (" + ev.Tag + ")"
}

// DamageResult reports what Apply did
type DamageResult struct {
	Applied bool
	Amount  float64
	Killed  bool
}

// Pipeline applies damage events to targets and records them
type Pipeline struct {
	targets Targets
	stats   StatsTracker
	bus     *events.Bus
}

func NewPipeline(targets Targets, stats StatsTracker, bus *events.Bus) *Pipeline {
	return &Pipeline{targets: targets, stats: stats, bus: bus}
}

// Apply deals ev to its target. A target that is gone or already dead is a
// miss. The final amount is scaled by the target's own defence and never
// negative.
func (p *Pipeline) Apply(ev DamageEvent) DamageResult {
	if p.targets == nil {
		return DamageResult{}
	}
	h := p.targets.Health(ev.Target)
	if h == nil || h.CurrentHealth() <= 0 {
		return DamageResult{}
	}

	amount := ev.Amount
	if d, ok := h.(Defender); ok {
		amount *= d.DamageTakenMultiplier()
	}
	amount = math.Max(0, amount)

	h.TakeDamage(amount, ev.Crit)
	if p.stats != nil {
		p.stats.AddDamageDealt(amount)
		if ev.Weapon != "" {
			p.stats.AddWeaponDamage(ev.Label(), amount)
		}
	}
	p.bus.Publish(events.TargetHit{Target: ev.Target, Source: ev.Label(), Amount: amount, Crit: ev.Crit})

	res := DamageResult{Applied: true, Amount: amount}
	if h.CurrentHealth() <= 0 {
		res.Killed = true
		if k, ok := h.(Killable); ok {
			k.OnDeath()
		}
		slog.Debug("target died", "target", ev.Target, "source", ev.Label())
		p.bus.Publish(events.TargetKilled{Target: ev.Target, Source: ev.Label()})
	}
	return res
}
