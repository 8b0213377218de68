package collision

import (
	"math"

	"sweeptide/internal/mathutil"
)

// BoundingBox represents a rectangular obstacle boundary
type BoundingBox struct {
	X      float64 // Center X coordinate
	Y      float64 // Center Y coordinate
	Width  float64 // Total width
	Height float64 // Total height
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(x, y, width, height float64) *BoundingBox {
	return &BoundingBox{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// NewBoundingBoxFromCorner builds a box from its min corner, the layout used by wall config
func NewBoundingBoxFromCorner(minX, minY, width, height float64) *BoundingBox {
	return NewBoundingBox(minX+width/2, minY+height/2, width, height)
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb *BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	halfWidth := bb.Width / 2
	halfHeight := bb.Height / 2
	return bb.X - halfWidth, bb.Y - halfHeight, bb.X + halfWidth, bb.Y + halfHeight
}

// Intersects checks if this bounding box intersects with another
func (bb *BoundingBox) Intersects(other *BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	return !(maxX1 < minX2 || maxX2 < minX1 || maxY1 < minY2 || maxY2 < minY1)
}

// Contains checks if a point is inside the bounding box
func (bb *BoundingBox) Contains(p mathutil.Vec2) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// DistanceToPoint returns the distance from the box edge to a point (0 inside)
func (bb *BoundingBox) DistanceToPoint(p mathutil.Vec2) float64 {
	minX, minY, maxX, maxY := bb.GetBounds()
	dx := math.Max(0, math.Max(minX-p.X, p.X-maxX))
	dy := math.Max(0, math.Max(minY-p.Y, p.Y-maxY))
	return math.Hypot(dx, dy)
}

// ClampPoint pulls p inside the box
func (bb *BoundingBox) ClampPoint(p mathutil.Vec2) mathutil.Vec2 {
	minX, minY, maxX, maxY := bb.GetBounds()
	return mathutil.V2(mathutil.Clamp(p.X, minX, maxX), mathutil.Clamp(p.Y, minY, maxY))
}

// Entity is a targetable body tracked by the grid
type Entity struct {
	ID     uint64
	Pos    mathutil.Vec2
	Radius float64
}
