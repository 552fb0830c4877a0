package nav

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// stripGraph builds n unit-square cells in a row along X, each linked to its
// immediate neighbours with cost 1 and the given capability mask.
func stripGraph(n int, bits MoveBits) *Graph {
	vertices := make([]mgl32.Vec3, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		vertices = append(vertices,
			mgl32.Vec3{float32(i), 0, 0},
			mgl32.Vec3{float32(i), 0, 1},
		)
	}
	cells := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		left := int32(2 * i)
		right := int32(2 * (i + 1))
		cells = append(cells, Cell{
			Center:   mgl32.Vec3{float32(i) + 0.5, 0, 0.5},
			Vertices: []int32{left, right, right + 1, left + 1},
		})
	}
	links := make([]Link, 0, 2*(n-1))
	for i := 0; i < n-1; i++ {
		links = append(links,
			Link{From: CellID(i), To: CellID(i + 1), Cost: 1, OK: bits},
			Link{From: CellID(i + 1), To: CellID(i), Cost: 1, OK: bits},
		)
	}
	return New(vertices, cells, links)
}

func TestCellFromPositionRoundTrip(t *testing.T) {
	g := stripGraph(5, Walk)
	for i := 0; i < g.CellCount(); i++ {
		center, ok := g.Center(CellID(i))
		if !ok {
			t.Fatalf("cell %d invalid", i)
		}
		if got := g.CellFromPosition(center); got != CellID(i) {
			t.Fatalf("CellFromPosition(center of %d) = %v", i, got)
		}
	}
}

func TestCellFromPositionMiss(t *testing.T) {
	g := stripGraph(3, Walk)
	cases := []struct {
		name string
		p    mgl32.Vec3
	}{
		{"left_of_strip", mgl32.Vec3{-5, 0, 0.5}},
		{"right_of_strip", mgl32.Vec3{100, 0, 0.5}},
		{"beside_strip", mgl32.Vec3{1.5, 0, 7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := g.CellFromPosition(c.p); got != NoCell {
				t.Fatalf("expected NoCell, got %v", got)
			}
		})
	}
}

func TestEdgeSignStability(t *testing.T) {
	g := stripGraph(4, Walk)
	const eps = 1e-3
	center, _ := g.Center(2)
	offsets := []mgl32.Vec3{
		{eps, 0, 0}, {-eps, 0, 0}, {0, 0, eps}, {0, 0, -eps},
		{eps, 0, eps}, {-eps, 0, -eps},
	}
	for _, off := range offsets {
		p := center.Add(off)
		if got := g.CellFromPosition(p); got != 2 {
			t.Fatalf("perturbation %v flipped membership: got %v", off, got)
		}
	}
}

func TestSharedEdgeTieBreaksLowestCell(t *testing.T) {
	g := stripGraph(3, Walk)
	// x=1 lies exactly on the edge shared by cells 0 and 1.
	if got := g.CellFromPosition(mgl32.Vec3{1, 0, 0.5}); got != 0 {
		t.Fatalf("expected boundary point to resolve to cell 0, got %v", got)
	}
}

func TestDegenerateCellDropped(t *testing.T) {
	vertices := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}
	cells := []Cell{
		{Center: mgl32.Vec3{0.5, 0, 0.5}, Vertices: []int32{0, 1, 2, 3}},
		{Center: mgl32.Vec3{0.5, 0, 0.5}, Vertices: []int32{0, 1}},      // too few
		{Center: mgl32.Vec3{0.5, 0, 0.5}, Vertices: []int32{0, 99, 42}}, // unresolvable
	}
	links := []Link{
		{From: 0, To: 1, Cost: 1, OK: Walk}, // endpoint dropped above
		{From: 0, To: 0, Cost: 1, OK: Walk}, // self loop
		{From: 0, To: 7, Cost: 1, OK: Walk}, // out of range
	}
	g := New(vertices, cells, links)

	if got := g.CellFromPosition(mgl32.Vec3{0.5, 0, 0.5}); got != 0 {
		t.Fatalf("expected point to land in cell 0, got %v", got)
	}
	if _, ok := g.Center(1); ok {
		t.Fatalf("degenerate cell 1 should be invalid")
	}
	if _, ok := g.Center(2); ok {
		t.Fatalf("unresolvable cell 2 should be invalid")
	}
	count := 0
	g.ForEachNeighbour(0, Walk, func(CellID, uint16) { count++ })
	if count != 0 {
		t.Fatalf("expected all malformed links dropped, got %d neighbours", count)
	}
}

func TestZeroCostLinkClamped(t *testing.T) {
	vertices := []mgl32.Vec3{
		{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}, {2, 0, 0}, {2, 0, 1},
	}
	cells := []Cell{
		{Center: mgl32.Vec3{0.5, 0, 0.5}, Vertices: []int32{0, 2, 3, 1}},
		{Center: mgl32.Vec3{1.5, 0, 0.5}, Vertices: []int32{2, 4, 5, 3}},
	}
	links := []Link{{From: 0, To: 1, Cost: 0, OK: Walk}}
	g := New(vertices, cells, links)

	g.ForEachNeighbour(0, Walk, func(to CellID, cost uint16) {
		if cost == 0 {
			t.Fatalf("zero-cost link survived construction")
		}
		if cost != 1 {
			t.Fatalf("expected cost clamped to 1, got %d", cost)
		}
	})
}

func TestNeighbourCapabilityFilter(t *testing.T) {
	g := stripGraph(3, Walk|Crawl)

	var walk, fly []CellID
	g.ForEachNeighbour(1, Walk, func(to CellID, _ uint16) { walk = append(walk, to) })
	g.ForEachNeighbour(1, Fly, func(to CellID, _ uint16) { fly = append(fly, to) })

	if len(walk) != 2 {
		t.Fatalf("expected 2 walkable neighbours of cell 1, got %v", walk)
	}
	if len(fly) != 0 {
		t.Fatalf("expected no fly neighbours, got %v", fly)
	}
}
