package nav

import (
	"github.com/go-gl/mathgl/mgl32"
)

// onEdgeEpsilon is the cross-product magnitude below which a point counts as
// lying on a cell edge rather than on either side of it.
const onEdgeEpsilon = 1e-4

// CellFromPosition locates the cell whose XZ polygon contains p. The scan is
// linear and returns the lowest matching cell id, or NoCell when no cell
// contains the point. A miss is an expected outcome, not an error.
func (g *Graph) CellFromPosition(p mgl32.Vec3) CellID {
	for i := range g.cells {
		id := CellID(i)
		if !g.valid[i] {
			continue
		}
		if g.containsXZ(id, p) {
			return id
		}
	}
	return NoCell
}

// containsXZ runs the convex point-in-polygon test on the cell's XZ
// projection. Every consecutive edge's 2D cross product with the point must
// share a sign; near-zero cross products mean "on edge" and are skipped.
func (g *Graph) containsXZ(id CellID, p mgl32.Vec3) bool {
	verts := g.cells[id].Vertices
	ring := make([]mgl32.Vec3, 0, len(verts))
	for _, v := range verts {
		if v < 0 || int(v) >= len(g.vertices) {
			continue
		}
		ring = append(ring, g.vertices[v])
	}
	if len(ring) < 3 {
		return false
	}

	sign := float32(0)
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		ex := b.X() - a.X()
		ez := b.Z() - a.Z()
		px := p.X() - a.X()
		pz := p.Z() - a.Z()
		cross := ex*pz - ez*px
		if cross > -onEdgeEpsilon && cross < onEdgeEpsilon {
			continue
		}
		if sign == 0 {
			if cross > 0 {
				sign = 1
			} else {
				sign = -1
			}
			continue
		}
		if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return true
}
