package collision

import (
	"math"
	"testing"
	"time"

	"sweeptide/internal/mathutil"
)

func newTestGrid() *Grid {
	walls := []*BoundingBox{NewBoundingBoxFromCorner(10, 0, 1, 5)}
	return NewGrid(2, 40, 20, walls)
}

func TestFindWithinRadius_OrderedByDistance(t *testing.T) {
	g := newTestGrid()
	g.Register(3, mathutil.V2(8, 5), 0)
	g.Register(1, mathutil.V2(6, 5), 0)
	g.Register(2, mathutil.V2(4, 5), 0)
	g.Register(9, mathutil.V2(30, 5), 0)

	got := g.FindWithinRadius(mathutil.V2(5, 5), 3.5)
	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	// 1 and 2 are both 1 unit away; ties break on ID
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestFindWithinRadius_CountsBodyRadius(t *testing.T) {
	g := newTestGrid()
	g.Register(1, mathutil.V2(5, 5), 0.5)

	if ids := g.FindWithinRadius(mathutil.V2(3, 5), 1.6); len(ids) != 1 {
		t.Errorf("expected body overlap to count, got %v", ids)
	}
	if ids := g.FindWithinRadius(mathutil.V2(3, 5), 1.4); len(ids) != 0 {
		t.Errorf("expected no overlap, got %v", ids)
	}
}

func TestMoveAcrossCells(t *testing.T) {
	g := newTestGrid()
	g.Register(1, mathutil.V2(1, 1), 0)
	g.Move(1, mathutil.V2(25, 15))

	if ids := g.FindWithinRadius(mathutil.V2(1, 1), 1); len(ids) != 0 {
		t.Errorf("stale bucket entry: %v", ids)
	}
	if id, ok := g.Nearest(mathutil.V2(24, 15), 2); !ok || id != 1 {
		t.Errorf("expected to find moved entity, got %d %v", id, ok)
	}

	g.Unregister(1)
	if _, ok := g.Position(1); ok {
		t.Error("expected entity to be gone")
	}
}

func TestNearest_RespectsRange(t *testing.T) {
	g := newTestGrid()
	g.Register(1, mathutil.V2(10, 10), 0)
	g.Register(2, mathutil.V2(14, 10), 0)

	if _, ok := g.Nearest(mathutil.V2(0, 10), 5); ok {
		t.Error("expected nothing within range")
	}
	id, ok := g.Nearest(mathutil.V2(13, 10), 5)
	if !ok || id != 2 {
		t.Errorf("expected 2, got %d", id)
	}
}

func TestBlocked(t *testing.T) {
	g := newTestGrid()

	cases := []struct {
		name string
		p    mathutil.Vec2
		want bool
	}{
		{"open floor", mathutil.V2(5, 5), false},
		{"inside wall", mathutil.V2(10.5, 2), true},
		{"outside arena", mathutil.V2(-1, 5), true},
		{"beside wall", mathutil.V2(10.5, 6), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Blocked(tc.p); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCheckLineOfSight(t *testing.T) {
	g := newTestGrid()

	if g.CheckLineOfSight(mathutil.V2(5, 2), mathutil.V2(15, 2)) {
		t.Error("expected wall to block sight")
	}
	if !g.CheckLineOfSight(mathutil.V2(5, 10), mathutil.V2(15, 10)) {
		t.Error("expected clear sight above the wall")
	}
}

func TestNearest_HugeRangeStaysInsideArena(t *testing.T) {
	g := NewGrid(1, 60, 40, nil)
	g.Register(1, mathutil.V2(59, 39), 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if id, ok := g.Nearest(mathutil.V2(30, 20), 1e5); !ok || id != 1 {
			t.Errorf("expected 1, got %d %v", id, ok)
		}
		if ids := g.FindWithinRadius(mathutil.V2(30, 20), 1e7); len(ids) != 1 {
			t.Errorf("expected one entity, got %v", ids)
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("query scanned cells outside the arena")
	}
}

func TestNearest_SkipsTargetsBehindWalls(t *testing.T) {
	g := newTestGrid()
	g.Register(1, mathutil.V2(12, 2), 0) // behind the wall
	g.Register(2, mathutil.V2(8, 8), 0)

	id, ok := g.Nearest(mathutil.V2(8, 2), 10)
	if !ok || id != 2 {
		t.Errorf("expected visible target 2, got %d %v", id, ok)
	}

	g.Unregister(2)
	if id, ok := g.Nearest(mathutil.V2(8, 2), 10); ok {
		t.Errorf("expected nothing in sight, got %d", id)
	}
}

func TestClearance(t *testing.T) {
	g := newTestGrid()

	if d := g.Clearance(mathutil.V2(8, 2)); math.Abs(d-2) > 1e-9 {
		t.Errorf("expected 2 from the wall face, got %v", d)
	}
	if d := g.Clearance(mathutil.V2(10.5, 2)); d != 0 {
		t.Errorf("expected 0 inside the wall, got %v", d)
	}
	if d := NewGrid(2, 40, 20, nil).Clearance(mathutil.V2(5, 5)); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf without walls, got %v", d)
	}
}

func TestNewGrid_IgnoresWallsOutsideArena(t *testing.T) {
	walls := []*BoundingBox{
		NewBoundingBoxFromCorner(10, 0, 1, 5),
		NewBoundingBoxFromCorner(100, 100, 4, 4),
	}
	g := NewGrid(2, 40, 20, walls)
	if len(g.Walls()) != 1 {
		t.Errorf("expected one wall kept, got %d", len(g.Walls()))
	}
}
