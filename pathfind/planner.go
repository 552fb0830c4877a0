// Package pathfind computes waypoint paths over a navigation graph using A*
// with a Euclidean heuristic, plus a Dijkstra sweep for closest-reachable
// fallback queries. All "no path" outcomes are nil results, never errors.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/nav"
)

// Planner answers path queries against one immutable graph. It is safe for
// concurrent use because it holds no mutable state between calls.
type Planner struct {
	graph *nav.Graph
}

// New wraps the given graph.
func New(g *nav.Graph) *Planner {
	return &Planner{graph: g}
}

// Graph exposes the underlying navigation graph.
func (p *Planner) Graph() *nav.Graph {
	return p.graph
}

type config struct {
	maxExpansions int
}

// Option tunes a single query.
type Option func(*config)

// WithMaxExpansions caps how many cells one A* call may pop from the open
// set. Exceeding the budget yields no path.
func WithMaxExpansions(n int) Option {
	return func(c *config) {
		c.maxExpansions = n
	}
}

// FindPath returns the cell-center waypoints from a to b under the given
// capability mask, or nil when either endpoint lies outside the mesh or no
// traversable route exists.
func (p *Planner) FindPath(a, b mgl32.Vec3, bits nav.MoveBits, opts ...Option) []mgl32.Vec3 {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := p.graph.CellFromPosition(a)
	goal := p.graph.CellFromPosition(b)
	if start == nav.NoCell || goal == nav.NoCell {
		return nil
	}

	cells := p.astar(start, goal, bits, cfg.maxExpansions)
	if cells == nil {
		return nil
	}
	waypoints := make([]mgl32.Vec3, 0, len(cells))
	for _, id := range cells {
		center, ok := p.graph.Center(id)
		if !ok {
			return nil
		}
		waypoints = append(waypoints, center)
	}
	return waypoints
}

// FindClosestReachableCell runs Dijkstra from the cell containing from and
// returns the reachable cell (the start cell included) whose center is
// nearest to goal. Ties break toward the lower cell id. The second result is
// false when from lies outside the mesh.
func (p *Planner) FindClosestReachableCell(from, goal mgl32.Vec3, bits nav.MoveBits) (nav.CellID, bool) {
	start := p.graph.CellFromPosition(from)
	if start == nav.NoCell {
		return nav.NoCell, false
	}

	dist := p.dijkstraAll(start, bits)

	best := nav.NoCell
	bestDist := float32(math.Inf(1))
	for id, d := range dist {
		if d == unreached {
			continue
		}
		center, ok := p.graph.Center(nav.CellID(id))
		if !ok {
			continue
		}
		if d2 := center.Sub(goal).Len(); d2 < bestDist {
			bestDist = d2
			best = nav.CellID(id)
		}
	}
	if best == nav.NoCell {
		return nav.NoCell, false
	}
	return best, true
}

const unreached = math.MaxUint32

// heuristic under-approximates remaining path cost: straight-line distance
// between cell centers, truncated to the same integer cost domain as links.
func (p *Planner) heuristic(from, to nav.CellID) uint32 {
	a, okA := p.graph.Center(from)
	b, okB := p.graph.Center(to)
	if !okA || !okB {
		return 0
	}
	return uint32(a.Sub(b).Len())
}

func (p *Planner) astar(start, goal nav.CellID, bits nav.MoveBits, budget int) []nav.CellID {
	n := p.graph.CellCount()
	gScore := make([]uint32, n)
	cameFrom := make([]nav.CellID, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = unreached
		cameFrom[i] = nav.NoCell
	}
	gScore[start] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{cell: start, f: p.heuristic(start, goal)})

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true

		if current.cell == goal {
			return reconstruct(cameFrom, start, goal)
		}

		expansions++
		if budget > 0 && expansions > budget {
			return nil
		}

		p.graph.ForEachNeighbour(current.cell, bits, func(to nav.CellID, cost uint16) {
			tentative := gScore[current.cell] + uint32(cost)
			if tentative >= gScore[to] {
				return
			}
			gScore[to] = tentative
			cameFrom[to] = current.cell
			heap.Push(open, &openItem{cell: to, f: tentative + p.heuristic(to, goal)})
		})
	}
	return nil
}

func (p *Planner) dijkstraAll(start nav.CellID, bits nav.MoveBits) []uint32 {
	n := p.graph.CellCount()
	dist := make([]uint32, n)
	closed := make([]bool, n)
	for i := range dist {
		dist[i] = unreached
	}
	dist[start] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{cell: start, f: 0})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true

		p.graph.ForEachNeighbour(current.cell, bits, func(to nav.CellID, cost uint16) {
			tentative := dist[current.cell] + uint32(cost)
			if tentative >= dist[to] {
				return
			}
			dist[to] = tentative
			heap.Push(open, &openItem{cell: to, f: tentative})
		})
	}
	return dist
}

func reconstruct(cameFrom []nav.CellID, start, goal nav.CellID) []nav.CellID {
	path := []nav.CellID{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		if cur == nav.NoCell {
			return nil
		}
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	cell  nav.CellID
	f     uint32
	index int
}

// openSet orders by f score with cell id as the deterministic tie break.
type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].cell < o[j].cell
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
