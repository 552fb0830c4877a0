// Package world defines the read-only capability surface the AI core needs
// from the surrounding entity store, plus a small map-backed implementation
// for hosts and tests. The core never takes ownership of the full
// entity/component store; it only reads the handful of properties below.
package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
)

// View is the read-only world snapshot a controller sees during one tick.
type View interface {
	// PositionOf resolves an entity's world position and orientation.
	PositionOf(e effect.Entity) (mgl32.Vec3, mgl32.Quat, bool)
	// PlayerEntity is the id of the player, or effect.NoEntity.
	PlayerEntity() effect.Entity
	// DebugAIEnabled reports whether controllers should emit debug draw
	// effects this tick.
	DebugAIEnabled() bool
	// AlertCap returns the entity's alert cap property, if present.
	AlertCap(e effect.Entity) (alert.Cap, bool)
	// AlertTimings returns the entity's alertness timing property, if
	// present.
	AlertTimings(e effect.Entity) (alert.Timings, bool)
	// ClassTag returns the entity's archetype class tag ("turret",
	// "camera", "monster", ...), if present.
	ClassTag(e effect.Entity) (string, bool)
}

// RaycastHit describes the first thing a ray struck.
type RaycastHit struct {
	Entity   effect.Entity
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// Raycaster is the physics collaborator. Implementations must return the
// first hit along the ray, or ok=false for a clear ray.
type Raycaster interface {
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool)
}

// CapAndTimingsFor reads an entity's alert cap and timings from the view,
// substituting the documented defaults silently when either property is
// absent.
func CapAndTimingsFor(v View, e effect.Entity) (alert.Cap, alert.Timings) {
	cap, ok := v.AlertCap(e)
	if !ok {
		cap = alert.DefaultCap
	}
	timings, ok := v.AlertTimings(e)
	if !ok {
		timings = alert.DefaultTimings
	}
	return cap, timings
}
