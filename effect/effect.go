package effect

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Entity identifies an object in the host's world. The core never allocates
// entities; ids are handed in through the world view.
type Entity uint32

// NoEntity is the zero id and never refers to a live object.
const NoEntity Entity = 0

// Effect is a side-effect request produced by the AI core. Controllers return
// effects instead of mutating the world so the host can apply them after all
// controllers have been stepped, keeping ticks order-independent.
type Effect interface {
	isEffect()
}

// None is the empty effect.
type None struct{}

// Multiple composes child effects. The host applies them in order.
type Multiple struct {
	Effects []Effect
}

// SetJointTransform positions an animated joint addressed by integer index.
type SetJointTransform struct {
	Entity    Entity
	Joint     int
	Transform mgl32.Mat4
}

// FireRangedWeapon discharges the entity's projectile weapon with the given
// world-space rotation.
type FireRangedWeapon struct {
	Entity   Entity
	Rotation mgl32.Quat
}

// PlayPositionalSound requests a sound at the entity's position. Tags carry
// the host sound system's key/value query (e.g. event=activate).
type PlayPositionalSound struct {
	Entity Entity
	Tags   []Tag
}

// Tag is one key/value pair of a positional sound query.
type Tag struct {
	Key   string
	Value string
}

// SyncAlertness publishes a changed alert level onto the entity.
type SyncAlertness struct {
	Entity Entity
	Level  int
}

// SetVelocity is the locomotion output of waypoint-following archetypes.
type SetVelocity struct {
	Entity   Entity
	Velocity mgl32.Vec3
}

// EmitSignal broadcasts a named signal from the entity (e.g. a security
// camera's "alarm").
type EmitSignal struct {
	Entity Entity
	Signal string
}

// DrawDebugLines renders debug geometry for one frame.
type DrawDebugLines struct {
	Lines []Line
}

// Line is a single debug segment with a color.
type Line struct {
	From  mgl32.Vec3
	To    mgl32.Vec3
	Color Color
}

// Color is an RGBA quad in [0,1].
type Color struct {
	R, G, B, A float32
}

func (None) isEffect()                {}
func (Multiple) isEffect()            {}
func (SetJointTransform) isEffect()   {}
func (FireRangedWeapon) isEffect()    {}
func (PlayPositionalSound) isEffect() {}
func (SyncAlertness) isEffect()       {}
func (SetVelocity) isEffect()         {}
func (EmitSignal) isEffect()          {}
func (DrawDebugLines) isEffect()      {}

// Sound builds a PlayPositionalSound with a single event tag.
func Sound(ent Entity, event string) Effect {
	return PlayPositionalSound{Entity: ent, Tags: []Tag{{Key: "event", Value: event}}}
}
