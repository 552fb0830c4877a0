package behavior

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// headingForward converts a yaw angle (radians, counter-clockwise around Y,
// zero facing +Z) into a world-space forward vector.
func headingForward(heading float32) mgl32.Vec3 {
	sin, cos := math.Sincos(float64(heading))
	return mgl32.Vec3{float32(sin), 0, float32(cos)}
}

// headingToward is the yaw that faces from one XZ position toward another.
func headingToward(from, to mgl32.Vec3) float32 {
	d := to.Sub(from)
	return float32(math.Atan2(float64(d.X()), float64(d.Z())))
}

// PlayerVisibleInFOV checks whether the player is inside the entity's vision
// cone and unobstructed. The angular test compares the player direction with
// the heading-derived forward vector; the occlusion test asks the physics
// collaborator for the first hit of an eye-to-chest ray and requires it to
// be the player.
func PlayerVisibleInFOV(v world.View, ray world.Raycaster, ent effect.Entity, heading, fovHalfAngleDeg float32, cfg Config) bool {
	cfg = cfg.withDefaults()

	player := v.PlayerEntity()
	if player == effect.NoEntity {
		return false
	}
	entPos, _, ok := v.PositionOf(ent)
	if !ok {
		return false
	}
	playerPos, _, ok := v.PositionOf(player)
	if !ok {
		return false
	}

	toPlayer := playerPos.Sub(entPos)
	dist := toPlayer.Len()
	if dist > cfg.SightRange {
		return false
	}
	if dist > 1e-5 {
		forward := headingForward(heading)
		cos := toPlayer.Normalize().Dot(forward)
		if cos < -1 {
			cos = -1
		} else if cos > 1 {
			cos = 1
		}
		angle := float32(math.Acos(float64(cos)))
		if angle > mgl32.DegToRad(fovHalfAngleDeg) {
			return false
		}
	}

	if ray == nil {
		return false
	}
	eye := entPos.Add(mgl32.Vec3{0, cfg.EyeHeight, 0})
	chest := playerPos.Add(mgl32.Vec3{0, cfg.ChestHeight, 0})
	dir := chest.Sub(eye)
	length := dir.Len()
	if length <= 1e-5 {
		return true
	}
	hit, ok := ray.Raycast(eye, dir.Mul(1/length), length)
	return ok && hit.Entity == player
}
