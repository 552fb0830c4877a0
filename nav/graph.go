package nav

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// CellID indexes a cell in a Graph. Ids are stable for the lifetime of the
// graph; invalid input cells keep their slot but are never matched or linked.
type CellID int32

// NoCell is returned by lookups that find nothing.
const NoCell CellID = -1

// MoveBits is a movement-capability bitset. The host decides which bit means
// what; the graph only intersects them. The named bits below are the
// conventional assignment used by the shipped profiles and the test harness.
type MoveBits uint32

const (
	Walk MoveBits = 1 << iota
	Crawl
	Fly
	Swim
)

// Cell is one convex polygon of the walkable surface, described by its
// center and an ordered ring of vertex indices in the XZ plane.
type Cell struct {
	Center   mgl32.Vec3
	Vertices []int32
}

// Link is a directed edge between two cells. A link is traversable under a
// capability mask iff OK intersects the mask.
type Link struct {
	From CellID
	To   CellID
	Cost uint16
	OK   MoveBits
}

// Graph is an immutable navigation mesh: a vertex table, a cell table, and a
// directed link table with per-cell outgoing indices built at construction.
type Graph struct {
	vertices []mgl32.Vec3
	cells    []Cell
	links    []Link
	valid    []bool
	outgoing [][]int32
}

type buildConfig struct {
	logger *slog.Logger
}

// Option configures graph construction.
type Option func(*buildConfig)

// WithLogger routes construction diagnostics to the given logger instead of
// the default one.
func WithLogger(l *slog.Logger) Option {
	return func(c *buildConfig) {
		c.logger = l
	}
}

// New builds a graph from plain arrays, as handed over by the host's asset
// pipeline. Malformed cells (fewer than three in-range vertices) and
// malformed links (self loops, out-of-range or invalid endpoints) are
// dropped with a warning; construction never fails.
func New(vertices []mgl32.Vec3, cells []Cell, links []Link, opts ...Option) *Graph {
	cfg := buildConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Graph{
		vertices: vertices,
		cells:    cells,
		valid:    make([]bool, len(cells)),
		outgoing: make([][]int32, len(cells)),
	}

	for i, c := range cells {
		resolvable := 0
		for _, v := range c.Vertices {
			if v >= 0 && int(v) < len(vertices) {
				resolvable++
			}
		}
		if resolvable < 3 {
			cfg.logger.Warn("nav: dropping degenerate cell",
				"cell", i, "vertices", len(c.Vertices), "resolvable", resolvable)
			continue
		}
		g.valid[i] = true
	}

	g.links = make([]Link, 0, len(links))
	for i, l := range links {
		if !g.validCell(l.From) || !g.validCell(l.To) {
			cfg.logger.Warn("nav: dropping link with missing endpoint",
				"link", i, "from", l.From, "to", l.To)
			continue
		}
		if l.From == l.To {
			cfg.logger.Warn("nav: dropping self link", "link", i, "cell", l.From)
			continue
		}
		if l.Cost == 0 {
			// Zero-cost links break heuristic admissibility downstream.
			cfg.logger.Warn("nav: clamping zero-cost link", "link", i, "from", l.From, "to", l.To)
			l.Cost = 1
		}
		idx := int32(len(g.links))
		g.links = append(g.links, l)
		g.outgoing[l.From] = append(g.outgoing[l.From], idx)
	}

	return g
}

func (g *Graph) validCell(id CellID) bool {
	return id >= 0 && int(id) < len(g.cells) && g.valid[id]
}

// CellCount reports the size of the cell table, including dropped slots.
func (g *Graph) CellCount() int {
	return len(g.cells)
}

// Center returns the center of the given cell and whether the id refers to a
// valid cell.
func (g *Graph) Center(id CellID) (mgl32.Vec3, bool) {
	if !g.validCell(id) {
		return mgl32.Vec3{}, false
	}
	return g.cells[id].Center, true
}

// ForEachNeighbour visits the targets of every outgoing link of cell from
// whose capability mask intersects bits, in link order.
func (g *Graph) ForEachNeighbour(from CellID, bits MoveBits, fn func(to CellID, cost uint16)) {
	if !g.validCell(from) {
		return
	}
	for _, idx := range g.outgoing[from] {
		l := g.links[idx]
		if l.OK&bits == 0 {
			continue
		}
		fn(l.To, l.Cost)
	}
}
