package collision

import (
	"log/slog"
	"math"
	"sort"

	"sweeptide/internal/mathutil"
)

type cellKey struct {
	cx, cy int
}

// Grid is a uniform-bucket spatial index over the arena. It answers the
// radius and nearest-target queries used by combat and knows which points
// are blocked by walls or lie outside the arena.
type Grid struct {
	cellSize  float64
	bounds    *BoundingBox
	walls     []*BoundingBox
	cells     map[cellKey]map[uint64]struct{}
	entities  map[uint64]*Entity
	maxRadius float64
}

// NewGrid creates an index for an arena of the given size with origin at (0,0)
func NewGrid(cellSize, width, height float64, walls []*BoundingBox) *Grid {
	if cellSize <= 0 {
		cellSize = 4
	}
	bounds := NewBoundingBoxFromCorner(0, 0, width, height)
	inside := make([]*BoundingBox, 0, len(walls))
	for _, w := range walls {
		if w == nil || !w.Intersects(bounds) {
			slog.Warn("wall outside arena ignored", "wall", w)
			continue
		}
		inside = append(inside, w)
	}
	return &Grid{
		cellSize: cellSize,
		bounds:   bounds,
		walls:    inside,
		cells:    make(map[cellKey]map[uint64]struct{}),
		entities: make(map[uint64]*Entity),
	}
}

func (g *Grid) keyFor(p mathutil.Vec2) cellKey {
	return cellKey{int(math.Floor(p.X / g.cellSize)), int(math.Floor(p.Y / g.cellSize))}
}

func (g *Grid) insert(e *Entity) {
	k := g.keyFor(e.Pos)
	bucket, ok := g.cells[k]
	if !ok {
		bucket = make(map[uint64]struct{})
		g.cells[k] = bucket
	}
	bucket[e.ID] = struct{}{}
}

func (g *Grid) remove(e *Entity) {
	k := g.keyFor(e.Pos)
	if bucket, ok := g.cells[k]; ok {
		delete(bucket, e.ID)
		if len(bucket) == 0 {
			delete(g.cells, k)
		}
	}
}

// Register adds an entity. Re-registering an ID moves it.
func (g *Grid) Register(id uint64, pos mathutil.Vec2, radius float64) {
	if old, ok := g.entities[id]; ok {
		g.remove(old)
	}
	e := &Entity{ID: id, Pos: pos, Radius: radius}
	g.entities[id] = e
	g.insert(e)
	g.maxRadius = math.Max(g.maxRadius, radius)
}

// Unregister removes an entity from the index
func (g *Grid) Unregister(id uint64) {
	if e, ok := g.entities[id]; ok {
		g.remove(e)
		delete(g.entities, id)
	}
}

// Move updates an entity's position
func (g *Grid) Move(id uint64, pos mathutil.Vec2) {
	e, ok := g.entities[id]
	if !ok {
		return
	}
	if g.keyFor(e.Pos) != g.keyFor(pos) {
		g.remove(e)
		e.Pos = pos
		g.insert(e)
		return
	}
	e.Pos = pos
}

// Position returns the entity's current position
func (g *Grid) Position(id uint64) (mathutil.Vec2, bool) {
	e, ok := g.entities[id]
	if !ok {
		return mathutil.Vec2{}, false
	}
	return e.Pos, true
}

func (g *Grid) Len() int {
	return len(g.entities)
}

type hit struct {
	id   uint64
	dist float64
}

// visit calls fn for every entity whose bucket overlaps the square of
// half-size reach around p. The square is cut to the arena's cells since
// entities never leave the arena.
func (g *Grid) visit(p mathutil.Vec2, reach float64, fn func(e *Entity)) {
	minX, minY, maxX, maxY := g.bounds.GetBounds()
	lo := g.keyFor(mathutil.V2(math.Max(p.X-reach, minX), math.Max(p.Y-reach, minY)))
	hi := g.keyFor(mathutil.V2(math.Min(p.X+reach, maxX), math.Min(p.Y+reach, maxY)))
	for cy := lo.cy; cy <= hi.cy; cy++ {
		for cx := lo.cx; cx <= hi.cx; cx++ {
			for id := range g.cells[cellKey{cx, cy}] {
				fn(g.entities[id])
			}
		}
	}
}

// FindWithinRadius returns entities whose body overlaps the circle (p, r),
// ordered by distance then ID.
func (g *Grid) FindWithinRadius(p mathutil.Vec2, r float64) []uint64 {
	if r < 0 {
		return nil
	}
	var hits []hit
	g.visit(p, r+g.maxRadius, func(e *Entity) {
		d := p.Dist(e.Pos)
		if d <= r+e.Radius {
			hits = append(hits, hit{e.ID, d})
		}
	})
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].id < hits[j].id
	})

	ids := make([]uint64, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// Nearest returns the entity whose centre is closest to p within maxRange.
// Entities hidden behind a wall are skipped.
func (g *Grid) Nearest(p mathutil.Vec2, maxRange float64) (uint64, bool) {
	best := hit{dist: math.Inf(1)}
	found := false
	g.visit(p, maxRange, func(e *Entity) {
		d := p.Dist(e.Pos)
		if d > maxRange {
			return
		}
		if d > best.dist || (d == best.dist && e.ID > best.id) {
			return
		}
		if len(g.walls) > 0 && !g.CheckLineOfSight(p, e.Pos) {
			return
		}
		best = hit{e.ID, d}
		found = true
	})
	return best.id, found
}

// Blocked reports whether p is outside the arena or inside a wall
func (g *Grid) Blocked(p mathutil.Vec2) bool {
	if !g.bounds.Contains(p) {
		return true
	}
	for _, w := range g.walls {
		if w.Contains(p) {
			return true
		}
	}
	return false
}

// Clearance is the distance from p to the closest wall edge, 0 inside a
// wall and +Inf when the arena has no walls.
func (g *Grid) Clearance(p mathutil.Vec2) float64 {
	d := math.Inf(1)
	for _, w := range g.walls {
		d = math.Min(d, w.DistanceToPoint(p))
	}
	return d
}

// ClampToArena keeps p inside the arena bounds
func (g *Grid) ClampToArena(p mathutil.Vec2) mathutil.Vec2 {
	return g.bounds.ClampPoint(p)
}

// Walls returns the wall boxes
func (g *Grid) Walls() []*BoundingBox {
	return g.walls
}

// CheckLineOfSight checks if there's a clear line of sight between two points
func (g *Grid) CheckLineOfSight(from, to mathutil.Vec2) bool {
	steps := int(math.Ceil(from.Dist(to)/(g.cellSize/4))) + 1
	for i := 0; i <= steps; i++ {
		if g.Blocked(from.LerpTo(to, float64(i)/float64(steps))) {
			return false
		}
	}
	return true
}
