// Package arena hosts one wave-survival run: the player, the enemies, the
// weapon inventory and the combat engine, advanced one fixed tick at a time.
package arena

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"sweeptide/internal/collision"
	"sweeptide/internal/combat"
	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
	"sweeptide/internal/threading/core"
	"sweeptide/internal/threading/monitoring"
)

// Options override the tuning for a single run
type Options struct {
	Seed        uint64
	WaveSize    int     // fixed enemies per wave, 0 uses the wave growth
	EnemyHealth float64 // 0 uses the tuning
	SpawnRange  float64 // 0 uses the tuning
	// StartWeapons replaces the tuning's starting weapons when non-nil
	StartWeapons []string
}

// World is a single run. It is driven from one goroutine; only the enemy
// movement step fans out to worker goroutines.
type World struct {
	RunID uuid.UUID

	data *config.Data
	cfg  *config.Config
	opts Options

	rng       *rand.Rand
	bus       *events.Bus
	grid      *collision.Grid
	inventory *Inventory
	perks     *perks.Collection
	mods      *perks.Aggregator
	engine    *combat.Engine
	stats     *GameStats
	spawner   *Spawner
	monitor   *monitoring.TickMonitor
	player    *Player

	enemies map[uint64]*Enemy
	order   []uint64
	nextID  uint64
	clock   float64
	moveDir mathutil.Vec2
}

// NewWorld builds a run from loaded assets. Unknown start weapons are
// reported but do not stop the run.
func NewWorld(data *config.Data, opts Options) (*World, error) {
	if data == nil || data.Tuning == nil || data.Weapons == nil || data.Perks == nil {
		return nil, fmt.Errorf("new world: %w", ErrMissingData)
	}
	w := &World{data: data, cfg: data.Tuning, opts: opts}
	w.build()
	if err := w.equipStartWeapons(); err != nil {
		slog.Warn("start weapons incomplete", "run", w.RunID, "error", err)
	}
	return w, nil
}

func (w *World) build() {
	cfg := w.cfg
	w.RunID = uuid.New()
	w.rng = rand.New(rand.NewPCG(w.opts.Seed, w.opts.Seed^0x9e3779b97f4a7c15))
	w.bus = events.NewBus()

	walls := make([]*collision.BoundingBox, 0, len(cfg.Arena.Walls))
	for _, wc := range cfg.Arena.Walls {
		walls = append(walls, collision.NewBoundingBoxFromCorner(wc.X, wc.Y, wc.Width, wc.Height))
	}
	w.grid = collision.NewGrid(cfg.Arena.CellSize, cfg.Arena.Width, cfg.Arena.Height, walls)

	w.inventory = NewInventory(cfg.Player.WeaponSlots, cfg.Combat.MaxWeaponLevel)
	w.perks = perks.NewCollection(cfg.Perks.MaxPerks, w.inventory, w.bus)
	w.mods = perks.NewAggregator(w.perks, w.inventory, cfg.Perks)
	w.stats = NewGameStats()
	w.spawner = NewSpawner(cfg.Waves, w.opts.WaveSize)
	w.monitor = monitoring.NewTickMonitor(0)

	center := mathutil.V2(cfg.Arena.Width/2, cfg.Arena.Height/2)
	w.player = newPlayer(center, cfg.Player, w.perks, w.mods, w.rng)

	w.enemies = make(map[uint64]*Enemy)
	w.order = nil
	w.clock = 0
	w.moveDir = mathutil.Vec2{}

	w.engine = combat.NewEngine(combat.Deps{
		Spatial: w.grid,
		Targets: w,
		Physics: w,
		Player:  w,
		Stats:   w.stats,
		Mods:    w.mods,
		Bus:     w.bus,
		Rand:    w.rng,
		Tuning:  cfg.Combat,
	})

	w.bus.Subscribe(events.KindTargetKilled, func(events.Event) {
		w.stats.AddEnemyKilled()
		w.monitor.RecordKill()
	})
	w.bus.Subscribe(events.KindTargetHit, func(events.Event) {
		w.monitor.RecordHit()
	})
	slog.Debug("world built", "run", w.RunID, "seed", w.opts.Seed)
}

func (w *World) equipStartWeapons() error {
	keys := w.cfg.Player.StartWeapons
	if w.opts.StartWeapons != nil {
		keys = w.opts.StartWeapons
	}
	var errs []error
	for _, key := range keys {
		if _, err := w.AddWeapon(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reset starts a fresh run with the same assets and options
func (w *World) Reset() {
	w.engine.DespawnAll()
	w.build()
	if err := w.equipStartWeapons(); err != nil {
		slog.Warn("start weapons incomplete", "run", w.RunID, "error", err)
	}
	slog.Info("run reset", "run", w.RunID)
}

// AddWeapon equips a weapon by key or levels up an owned one
func (w *World) AddWeapon(key string) (*combat.Weapon, error) {
	def, ok := w.data.Weapons.GetWeaponDefinition(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrUnknownWeapon)
	}
	if def.Invalid {
		return nil, fmt.Errorf("%s: %w", key, ErrInvalidWeapon)
	}
	return w.inventory.Add(def)
}

// GrantPerk adds a perk by key, or levels it up when owned
func (w *World) GrantPerk(key string) (int, error) {
	def, ok := w.data.Perks.GetPerkDefinition(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, ErrUnknownPerk)
	}
	level, err := w.perks.Add(def)
	if err != nil {
		return level, fmt.Errorf("grant %s: %w", key, err)
	}
	return level, nil
}

// SetPerkLevel forces a perk to level, bypassing requirements
func (w *World) SetPerkLevel(key string, level int) (int, error) {
	def, ok := w.data.Perks.GetPerkDefinition(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, ErrUnknownPerk)
	}
	return w.perks.SetLevel(def, level), nil
}

// SetMoveInput sets the player's movement direction; zero stops the player
func (w *World) SetMoveInput(dir mathutil.Vec2) {
	w.moveDir = dir.Normalize()
}

// Update advances the run by dt seconds
func (w *World) Update(dt float64) {
	if w.player.Dead() || dt <= 0 {
		return
	}
	timer := w.monitor.StartTick()
	defer timer.EndTick()

	w.clock += dt
	w.stats.tick(dt)

	if wave, count := w.spawner.Update(dt); wave > 0 {
		w.spawnWave(wave, count)
	}

	w.movePlayer(dt)
	w.player.regen(dt)
	w.moveEnemies(dt)

	origin := w.player.Pos
	for _, weapon := range w.inventory.Weapons() {
		w.engine.Update(weapon, w.clock, origin)
		w.engine.TryAttack(weapon, w.clock, origin)
	}
	w.engine.Tick(dt)

	w.removeDead()
	w.monitor.UpdateCombatMetrics(len(w.order), w.engine.Projectiles().Len())
}

func (w *World) movePlayer(dt float64) {
	if w.moveDir == (mathutil.Vec2{}) {
		return
	}
	next := w.grid.ClampToArena(w.player.Pos.Add(w.moveDir.Scale(w.player.MoveSpeed() * dt)))
	if !w.grid.Blocked(next) {
		w.player.Pos = next
	}
}

// moveEnemies computes every step concurrently, then applies them and
// contact damage in spawn order so runs stay deterministic.
func (w *World) moveEnemies(dt float64) {
	list := make([]*Enemy, 0, len(w.order))
	for _, id := range w.order {
		if e := w.enemies[id]; e != nil && !e.Dead() {
			list = append(list, e)
		}
	}
	target := w.player.Pos
	now := w.clock
	steps := core.ParallelMap(list, func(e *Enemy) mathutil.Vec2 {
		return e.step(now, dt, target)
	})

	for i, e := range list {
		next := w.grid.ClampToArena(steps[i])
		if !w.grid.Blocked(next) && next != e.Pos {
			e.Pos = next
			w.grid.Move(e.ID, next)
		}
		if dmg, ok := e.tryContact(now, w.player.Pos, playerRadius); ok {
			w.player.TakeDamage(dmg, now)
		}
	}
}

func (w *World) spawnWave(wave, count int) {
	w.stats.SetWave(wave)
	cfg := w.cfg.Enemies
	if w.opts.EnemyHealth > 0 {
		cfg.Health = w.opts.EnemyHealth
	}
	radius := w.cfg.Waves.SpawnRadius
	if w.opts.SpawnRange > 0 {
		radius = w.opts.SpawnRange
	}

	spawned := 0
	for range count {
		pos, ok := w.spawnPoint(radius, cfg.Radius)
		if !ok {
			continue
		}
		w.nextID++
		e := newEnemy(w.nextID, pos, cfg)
		w.enemies[e.ID] = e
		w.order = append(w.order, e.ID)
		w.grid.Register(e.ID, pos, e.Radius)
		spawned++
	}
	slog.Debug("wave spawned", "run", w.RunID, "wave", wave, "enemies", spawned, "requested", count)
}

// spawnPoint picks a point on a ring around the player where a body of
// size clears every wall
func (w *World) spawnPoint(radius, size float64) (mathutil.Vec2, bool) {
	for range 8 {
		angle := w.rng.Float64() * 360
		p := w.grid.ClampToArena(w.player.Pos.Add(mathutil.FromAngle(angle).Scale(radius)))
		if !w.grid.Blocked(p) && w.grid.Clearance(p) >= size {
			return p, true
		}
	}
	return mathutil.Vec2{}, false
}

func (w *World) removeDead() {
	kept := w.order[:0]
	for _, id := range w.order {
		e := w.enemies[id]
		if e == nil {
			continue
		}
		if e.Dead() || e.CurrentHealth() <= 0 {
			w.grid.Unregister(id)
			delete(w.enemies, id)
			continue
		}
		kept = append(kept, id)
	}
	w.order = kept
}

// Health implements combat.Targets. Dead enemies are still resolvable
// until the end of the tick that killed them.
func (w *World) Health(id combat.EntityID) combat.Health {
	if e, ok := w.enemies[id]; ok {
		return e
	}
	return nil
}

func (w *World) Movement(id combat.EntityID) combat.MovementControl {
	if e, ok := w.enemies[id]; ok {
		return e
	}
	return nil
}

func (w *World) Blocked(p mathutil.Vec2) bool {
	return w.grid.Blocked(p)
}

// Displace moves an enemy without running its own movement
func (w *World) Displace(id combat.EntityID, to mathutil.Vec2) {
	e, ok := w.enemies[id]
	if !ok {
		return
	}
	to = w.grid.ClampToArena(to)
	e.Pos = to
	w.grid.Move(id, to)
}

func (w *World) Knockback(id combat.EntityID, dir mathutil.Vec2, force, duration float64) {
	if e, ok := w.enemies[id]; ok {
		e.Knockback(dir, force, duration, w.clock)
	}
}

func (w *World) PlayerPosition() mathutil.Vec2 {
	return w.player.Pos
}

// Accessors for the viewer and the balance sweep.

func (w *World) Player() *Player                  { return w.player }
func (w *World) Stats() *GameStats                { return w.stats }
func (w *World) Engine() *combat.Engine           { return w.engine }
func (w *World) Inventory() *Inventory            { return w.inventory }
func (w *World) Perks() *perks.Collection         { return w.perks }
func (w *World) Modifiers() *perks.Aggregator     { return w.mods }
func (w *World) Bus() *events.Bus                 { return w.bus }
func (w *World) Monitor() *monitoring.TickMonitor { return w.monitor }
func (w *World) Grid() *collision.Grid            { return w.grid }
func (w *World) Clock() float64                   { return w.clock }
func (w *World) Wave() int                        { return w.spawner.Wave() }
func (w *World) Tuning() *config.Config           { return w.cfg }
func (w *World) Over() bool                       { return w.player.Dead() }
func (w *World) EnemyCount() int                  { return len(w.order) }

// Enemies calls fn for each live enemy in spawn order
func (w *World) Enemies(fn func(e *Enemy)) {
	for _, id := range w.order {
		if e := w.enemies[id]; e != nil {
			fn(e)
		}
	}
}
