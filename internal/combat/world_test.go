package combat

import (
	"math"

	"sweeptide/internal/collision"
	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

// dummy is a target that records every hit
type dummy struct {
	hp       float64
	taken    float64
	hits     []float64
	crits    int
	deaths   int
	disabled int
	enabled  int
}

func (d *dummy) TakeDamage(amount float64, crit bool) {
	d.hp -= amount
	d.hits = append(d.hits, amount)
	if crit {
		d.crits++
	}
}

func (d *dummy) CurrentHealth() float64         { return d.hp }
func (d *dummy) DamageTakenMultiplier() float64 { return d.taken }
func (d *dummy) OnDeath()                       { d.deaths++ }
func (d *dummy) Disable()                       { d.disabled++ }
func (d *dummy) Enable()                        { d.enabled++ }

type knock struct {
	dir   mathutil.Vec2
	force float64
}

type statsRecorder struct {
	total    float64
	byWeapon map[string]float64
}

func (s *statsRecorder) AddDamageDealt(amount float64) { s.total += amount }
func (s *statsRecorder) AddWeaponDamage(label string, amount float64) {
	s.byWeapon[label] += amount
}

// testWorld is a 60x40 arena with the player at (20,20)
type testWorld struct {
	grid     *collision.Grid
	dummies  map[EntityID]*dummy
	movement map[EntityID]MovementControl
	knocked  map[EntityID]knock
	player   mathutil.Vec2
	stats    *statsRecorder
	bus      *events.Bus
	nextID   EntityID
}

func newTestWorld() *testWorld {
	return &testWorld{
		grid:     collision.NewGrid(4, 60, 40, nil),
		dummies:  make(map[EntityID]*dummy),
		movement: make(map[EntityID]MovementControl),
		knocked:  make(map[EntityID]knock),
		player:   mathutil.V2(20, 20),
		stats:    &statsRecorder{byWeapon: make(map[string]float64)},
		bus:      events.NewBus(),
	}
}

func (w *testWorld) add(x, y, radius, hp float64) EntityID {
	w.nextID++
	w.dummies[w.nextID] = &dummy{hp: hp, taken: 1}
	w.grid.Register(w.nextID, mathutil.V2(x, y), radius)
	return w.nextID
}

func (w *testWorld) Health(id EntityID) Health {
	d, ok := w.dummies[id]
	if !ok {
		return nil
	}
	return d
}

func (w *testWorld) Movement(id EntityID) MovementControl {
	if mc, ok := w.movement[id]; ok {
		return mc
	}
	d, ok := w.dummies[id]
	if !ok {
		return nil
	}
	return d
}

func (w *testWorld) Blocked(p mathutil.Vec2) bool { return w.grid.Blocked(p) }

func (w *testWorld) Displace(id EntityID, to mathutil.Vec2) { w.grid.Move(id, to) }

func (w *testWorld) Knockback(id EntityID, dir mathutil.Vec2, force, _ float64) {
	w.knocked[id] = knock{dir: dir, force: force}
}

func (w *testWorld) PlayerPosition() mathutil.Vec2 { return w.player }

// stubMods is a fixed modifier set
type stubMods struct {
	mult   map[perks.Stat]float64
	add    map[perks.Stat]float64
	flags  map[perks.Flag]bool
	pierce int
	count  int
}

func (m stubMods) AdditiveBonus(s perks.Stat) float64 { return m.add[s] }
func (m stubMods) HasFlag(f perks.Flag) bool          { return m.flags[f] }
func (m stubMods) MaxPierceCount() int                { return m.pierce }

func (m stubMods) Multiplier(s perks.Stat) float64 {
	if v, ok := m.mult[s]; ok {
		return v
	}
	return 1
}

func (m stubMods) ProjectileCount() int {
	if m.count < 1 {
		return 1
	}
	return m.count
}

func (w *testWorld) engine(mods Modifiers) *Engine {
	return NewEngine(Deps{
		Spatial: w.grid,
		Targets: w,
		Physics: w,
		Player:  w,
		Stats:   w.stats,
		Mods:    mods,
		Bus:     w.bus,
		Tuning:  config.DefaultConfig().Combat,
	})
}

func meleeDef(shape config.AttackShape, damage, rng float64) *config.WeaponDefinition {
	return &config.WeaponDefinition{
		Key:   "blade",
		Name:  "Blade",
		Type:  "melee",
		Shape: shape,
		Base:  config.WeaponStats{Damage: damage, AttackSpeed: 2, Range: rng, CritMultiplier: 2},
	}
}

func rangedDef(kind config.ProjectileKind, damage float64) *config.WeaponDefinition {
	return &config.WeaponDefinition{
		Key:        kind.String(),
		Name:       kind.String(),
		Type:       "ranged",
		Shape:      config.ShapeProjectile,
		Base:       config.WeaponStats{Damage: damage, AttackSpeed: 1, Range: 20, CritMultiplier: 2},
		Projectile: &config.ProjectileDefinition{Kind: kind.String(), Speed: 10, ParsedKind: kind},
	}
}

// run ticks the engine for d seconds in dt steps
func run(e *Engine, d, dt float64) {
	steps := int(math.Round(d / dt))
	for i := 0; i < steps; i++ {
		e.Tick(dt)
	}
}
