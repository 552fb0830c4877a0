// Package physics adapts a chipmunk space to the line-of-sight queries the
// AI controllers need. Occluders live in the XZ ground plane; chipmunk's 2D
// coordinates map x to world X and y to world Z, and hit heights are
// interpolated along the ray.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"

	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// Space holds static occluders and entity-sized hit proxies.
type Space struct {
	space  *cp.Space
	shapes map[effect.Entity][]*cp.Shape
}

// NewSpace returns an empty occluder space.
func NewSpace() *Space {
	return &Space{
		space:  cp.NewSpace(),
		shapes: make(map[effect.Entity][]*cp.Shape),
	}
}

// AddCircle registers a cylindrical occluder (a character, a pillar) at the
// given world position.
func (s *Space) AddCircle(e effect.Entity, center mgl32.Vec3, radius float32) {
	shape := cp.NewCircle(s.space.StaticBody, float64(radius), planar(center))
	shape.UserData = e
	s.space.AddShape(shape)
	s.shapes[e] = append(s.shapes[e], shape)
}

// AddBox registers an axis-aligned wall slab spanning width along X and
// depth along Z around the given world position.
func (s *Space) AddBox(e effect.Entity, center mgl32.Vec3, width, depth float32) {
	bb := cp.BB{
		L: float64(center.X() - width/2),
		B: float64(center.Z() - depth/2),
		R: float64(center.X() + width/2),
		T: float64(center.Z() + depth/2),
	}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.UserData = e
	s.space.AddShape(shape)
	s.shapes[e] = append(s.shapes[e], shape)
}

// Remove drops every shape registered for an entity. Moving an occluder is
// a Remove plus a fresh Add.
func (s *Space) Remove(e effect.Entity) {
	for _, shape := range s.shapes[e] {
		s.space.RemoveShape(shape)
	}
	delete(s.shapes, e)
}

// Raycast reports the first shape along the ray. The vertical component of
// the ray is carried through to the hit point but plays no part in the
// query.
func (s *Space) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (world.RaycastHit, bool) {
	if maxDistance <= 0 {
		return world.RaycastHit{}, false
	}
	end := origin.Add(direction.Mul(maxDistance))

	info := s.space.SegmentQueryFirst(planar(origin), planar(end), 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return world.RaycastHit{}, false
	}

	alpha := float32(info.Alpha)
	hit := world.RaycastHit{
		Distance: alpha * maxDistance,
		Point: mgl32.Vec3{
			float32(info.Point.X),
			origin.Y() + (end.Y()-origin.Y())*alpha,
			float32(info.Point.Y),
		},
		Normal: mgl32.Vec3{float32(info.Normal.X), 0, float32(info.Normal.Y)},
	}
	if e, ok := info.Shape.UserData.(effect.Entity); ok {
		hit.Entity = e
	}
	return hit, true
}

func planar(v mgl32.Vec3) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Z())}
}

var _ world.Raycaster = (*Space)(nil)
