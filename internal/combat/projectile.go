package combat

import (
	"log/slog"
	"math"

	"sweeptide/internal/config"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

// ProjectileID is a stable handle into the registry. IDs are never reused.
type ProjectileID uint64

// Phase is the lifecycle stage of a projectile
type Phase int

const (
	PhaseFlying Phase = iota
	PhaseSpawning
	PhaseOrbiting
	PhaseReturning
	PhaseLanded
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseOrbiting:
		return "orbiting"
	case PhaseReturning:
		return "returning"
	case PhaseLanded:
		return "landed"
	default:
		return "flying"
	}
}

type hitSet map[EntityID]struct{}

func (s hitSet) has(id EntityID) bool {
	_, ok := s[id]
	return ok
}

func (s hitSet) add(id EntityID) {
	s[id] = struct{}{}
}

// behavior is the per-kind state machine of a projectile
type behavior interface {
	tick(e *Engine, p *Projectile, dt float64)
}

// despawner is implemented by behaviors that must release resources
type despawner interface {
	onDespawn(e *Engine, p *Projectile)
}

// Projectile is the shared state of every spawned projectile
type Projectile struct {
	ID         ProjectileID
	Kind       config.ProjectileKind
	WeaponKey  string
	WeaponName string

	Pos       mathutil.Vec2
	Dir       mathutil.Vec2
	Speed     float64
	HitRadius float64
	Age       float64
	Lifetime  float64
	Phase     Phase

	Damage float64
	Crit   bool
	// Pierce is frozen at spawn and only ever decreases.
	Pierce int

	hits    hitSet // direct hits in the current pass
	everHit hitSet // every target ever hit directly
	chained hitSet

	behavior behavior
	dead     bool
}

func newProjectile(kind config.ProjectileKind, w *Weapon, pos, dir mathutil.Vec2, damage float64, crit bool) *Projectile {
	return &Projectile{
		Kind:       kind,
		WeaponKey:  w.Key(),
		WeaponName: w.Name(),
		Pos:        pos,
		Dir:        dir,
		Damage:     damage,
		Crit:       crit,
		hits:       make(hitSet),
		everHit:    make(hitSet),
		chained:    make(hitSet),
	}
}

func (p *Projectile) Alive() bool { return !p.dead }

// HasHit reports a direct hit on id in the current pass
func (p *Projectile) HasHit(id EntityID) bool { return p.hits.has(id) }

// HasChained reports a chain bounce onto id
func (p *Projectile) HasChained(id EntityID) bool { return p.chained.has(id) }

// Registry owns live projectiles in spawn order
type Registry struct {
	next  ProjectileID
	items []*Projectile
	byID  map[ProjectileID]*Projectile
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[ProjectileID]*Projectile)}
}

func (r *Registry) spawn(p *Projectile) ProjectileID {
	r.next++
	p.ID = r.next
	r.items = append(r.items, p)
	r.byID[p.ID] = p
	return p.ID
}

// Get returns a live projectile
func (r *Registry) Get(id ProjectileID) (*Projectile, bool) {
	p, ok := r.byID[id]
	if !ok || p.dead {
		return nil, false
	}
	return p, true
}

func (r *Registry) Alive(id ProjectileID) bool {
	_, ok := r.Get(id)
	return ok
}

// Len counts live projectiles
func (r *Registry) Len() int {
	n := 0
	for _, p := range r.items {
		if !p.dead {
			n++
		}
	}
	return n
}

// Each visits live projectiles in spawn order
func (r *Registry) Each(fn func(p *Projectile)) {
	for _, p := range r.items {
		if !p.dead {
			fn(p)
		}
	}
}

// tick runs one step for projectiles alive at the start of the tick.
// Projectiles spawned during the tick first move on the next one.
func (r *Registry) tick(e *Engine, dt float64) {
	n := len(r.items)
	for i := 0; i < n; i++ {
		p := r.items[i]
		if p.dead {
			continue
		}
		p.behavior.tick(e, p, dt)
	}
	r.compact()
}

func (r *Registry) compact() {
	live := r.items[:0]
	for _, p := range r.items {
		if p.dead {
			delete(r.byID, p.ID)
			continue
		}
		live = append(live, p)
	}
	for i := len(live); i < len(r.items); i++ {
		r.items[i] = nil
	}
	r.items = live
}

// Despawn kills a projectile; its release hook runs exactly once
func (e *Engine) Despawn(p *Projectile) {
	if p.dead {
		return
	}
	p.dead = true
	if d, ok := p.behavior.(despawner); ok {
		d.onDespawn(e, p)
	}
}

// DespawnAll clears the registry, e.g. between waves
func (e *Engine) DespawnAll() {
	for _, p := range e.projectiles.items {
		e.Despawn(p)
	}
	e.projectiles.compact()
}

func (e *Engine) spawn(p *Projectile, b behavior) ProjectileID {
	p.behavior = b
	if p.HitRadius <= 0 {
		p.HitRadius = e.tuning.Projectile.HitRadius
	}
	return e.projectiles.spawn(p)
}

// overlaps calls onHit for every live target touching p that it has not
// hit directly in this pass nor chained to.
func (e *Engine) overlaps(p *Projectile, onHit func(id EntityID, at mathutil.Vec2)) {
	for _, id := range e.spatial.FindWithinRadius(p.Pos, p.HitRadius) {
		if p.dead {
			return
		}
		if p.hits.has(id) || p.chained.has(id) {
			continue
		}
		at, ok := e.spatial.Position(id)
		if !ok {
			continue
		}
		onHit(id, at)
	}
}

// advance moves p by delta in steps no longer than its hit radius, testing
// for hits after each step. It stops and reports true when the next step
// would enter an obstacle; solid=false lets p pass through obstacles.
func (e *Engine) advance(p *Projectile, delta mathutil.Vec2, solid bool, onHit func(id EntityID, at mathutil.Vec2)) bool {
	dist := delta.Len()
	if dist == 0 {
		return false
	}
	stepLen := math.Max(p.HitRadius, 0.05)
	n := int(math.Ceil(dist / stepLen))
	step := delta.Scale(1 / float64(n))

	for i := 0; i < n && !p.dead; i++ {
		next := p.Pos.Add(step)
		if solid && e.blocked(next) {
			return true
		}
		p.Pos = next
		if onHit != nil {
			e.overlaps(p, onHit)
		}
	}
	return false
}

// strike applies the projectile's own damage to id. A miss (target gone or
// already dead) leaves the hit sets untouched.
func (e *Engine) strike(p *Projectile, id EntityID, tag string) bool {
	res := e.pipeline.Apply(DamageEvent{Target: id, Amount: p.Damage, Crit: p.Crit, Weapon: p.WeaponName, Tag: tag})
	if !res.Applied {
		return false
	}
	p.hits.add(id)
	p.everHit.add(id)
	return true
}

// consumePierce spends one pierce or despawns the projectile when none are left
func (e *Engine) consumePierce(p *Projectile) {
	if p.Pierce > 0 {
		p.Pierce--
		slog.Debug("pierce", "projectile", p.ID, "remaining", p.Pierce)
		return
	}
	e.Despawn(p)
}

// chain bounces a fraction of the damage from a struck target onto nearby
// targets that the projectile has never touched.
func (e *Engine) chain(p *Projectile, from mathutil.Vec2) {
	if !e.mods.HasFlag(perks.FlagChainLightning) {
		return
	}
	cfg := e.tuning.Chain
	bounced := 0
	for _, id := range e.spatial.FindWithinRadius(from, cfg.Radius) {
		if bounced >= cfg.MaxBounces {
			break
		}
		if p.everHit.has(id) || p.chained.has(id) {
			continue
		}
		ev := DamageEvent{Target: id, Amount: p.Damage * cfg.DamageFraction, Weapon: p.WeaponName, Tag: TagChain}
		if !e.pipeline.Apply(ev).Applied {
			continue
		}
		p.chained.add(id)
		bounced++
	}
	if bounced > 0 {
		slog.Debug("chain lightning", "projectile", p.ID, "bounces", bounced)
	}
}
