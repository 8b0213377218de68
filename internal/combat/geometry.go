package combat

import (
	"math"

	"sweeptide/internal/mathutil"
)

// Area is a resolved attack footprint: where it landed and who it covers
type Area struct {
	Center  mathutil.Vec2
	Targets []EntityID
}

// Resolver maps attack shapes onto target sets using a SpatialQuery
type Resolver struct {
	spatial   SpatialQuery
	aoeFactor float64
}

func NewResolver(spatial SpatialQuery, aoeFactor float64) *Resolver {
	if aoeFactor <= 0 {
		aoeFactor = 0.7
	}
	return &Resolver{spatial: spatial, aoeFactor: aoeFactor}
}

// Circle covers every target within radius of origin
func (r *Resolver) Circle(origin mathutil.Vec2, radius float64) Area {
	return Area{Center: origin, Targets: r.spatial.FindWithinRadius(origin, radius)}
}

// Cone covers targets within radius whose bearing from origin is at most
// angle/2 degrees off dir.
func (r *Resolver) Cone(origin, dir mathutil.Vec2, radius, angle float64) Area {
	half := angle / 2
	var in []EntityID
	for _, id := range r.spatial.FindWithinRadius(origin, radius) {
		pos, ok := r.spatial.Position(id)
		if !ok {
			continue
		}
		if to := pos.Sub(origin); to.Len() == 0 || dir.AngleTo(to) <= half {
			in = append(in, id)
		}
	}
	return Area{Center: origin, Targets: in}
}

// Rectangle covers an oriented box of the given length along dir and width
// across it, whose centre sits at origin + dir*length/2.
func (r *Resolver) Rectangle(origin, dir mathutil.Vec2, length, width float64) Area {
	dir = dir.Normalize()
	if dir == (mathutil.Vec2{}) {
		dir = mathutil.V2(1, 0)
	}
	center := origin.Add(dir.Scale(length / 2))
	side := dir.Perp()
	halfL, halfW := length/2, width/2

	var in []EntityID
	for _, id := range r.spatial.FindWithinRadius(center, math.Hypot(halfL, halfW)) {
		pos, ok := r.spatial.Position(id)
		if !ok {
			continue
		}
		local := pos.Sub(center)
		if math.Abs(local.Dot(dir)) <= halfL && math.Abs(local.Dot(side)) <= halfW {
			in = append(in, id)
		}
	}
	return Area{Center: center, Targets: in}
}

// NearestAoE centres a circle of radius rng*aoeFactor on the nearest target
// within rng. With no target in range the area is empty.
func (r *Resolver) NearestAoE(origin mathutil.Vec2, rng float64) Area {
	id, ok := r.spatial.Nearest(origin, rng)
	if !ok {
		return Area{Center: origin}
	}
	pos, ok := r.spatial.Position(id)
	if !ok {
		return Area{Center: origin}
	}
	return r.Circle(pos, rng*r.aoeFactor)
}
