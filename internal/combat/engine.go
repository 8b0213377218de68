// Package combat turns weapons, perks and a world into damage. Everything
// here runs on the simulation goroutine inside a single tick; nothing is
// safe for concurrent use.
package combat

import (
	"math/rand/v2"

	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

// Deps wires the engine to its collaborators. Physics, Player, Stats, Mods,
// Bus and Rand may be left nil.
type Deps struct {
	Spatial SpatialQuery
	Targets Targets
	Physics Physics
	Player  PlayerLocator
	Stats   StatsTracker
	Mods    Modifiers
	Bus     *events.Bus
	Rand    *rand.Rand
	Tuning  config.CombatConfig
}

// Engine runs attack attempts and owns every live projectile
type Engine struct {
	spatial SpatialQuery
	targets Targets
	physics Physics
	player  PlayerLocator
	mods    Modifiers
	bus     *events.Bus
	rng     *rand.Rand
	tuning  config.CombatConfig

	resolver    *Resolver
	pipeline    *Pipeline
	projectiles *Registry
}

func NewEngine(d Deps) *Engine {
	if d.Mods == nil {
		d.Mods = neutralModifiers{}
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(1, 2))
	}
	return &Engine{
		spatial:     d.Spatial,
		targets:     d.Targets,
		physics:     d.Physics,
		player:      d.Player,
		mods:        d.Mods,
		bus:         d.Bus,
		rng:         d.Rand,
		tuning:      d.Tuning,
		resolver:    NewResolver(d.Spatial, d.Tuning.TargetAoEFactor),
		pipeline:    NewPipeline(d.Targets, d.Stats, d.Bus),
		projectiles: NewRegistry(),
	}
}

// Projectiles exposes the live projectile registry (read-only use)
func (e *Engine) Projectiles() *Registry {
	return e.projectiles
}

// Pipeline exposes the damage pipeline for other damage sources
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

// Tick advances every live projectile by dt seconds
func (e *Engine) Tick(dt float64) {
	e.projectiles.tick(e, dt)
}

func (e *Engine) playerPosition() mathutil.Vec2 {
	if e.player == nil {
		return mathutil.Vec2{}
	}
	return e.player.PlayerPosition()
}

func (e *Engine) blocked(p mathutil.Vec2) bool {
	return e.physics != nil && e.physics.Blocked(p)
}

type neutralModifiers struct{}

func (neutralModifiers) AdditiveBonus(perks.Stat) float64 { return 0 }
func (neutralModifiers) Multiplier(perks.Stat) float64    { return 1 }
func (neutralModifiers) HasFlag(perks.Flag) bool          { return false }
func (neutralModifiers) MaxPierceCount() int              { return 0 }
func (neutralModifiers) ProjectileCount() int             { return 1 }
