package behavior

import (
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// SteeringOutput is the heading a steering strategy wants the entity to hold
// at the end of the tick.
type SteeringOutput struct {
	DesiredHeading float32
}

// ChasePlayerSteering turns the entity toward the player, bounded by a
// per-tick turn rate so heavy platforms (turrets, cameras) track smoothly.
type ChasePlayerSteering struct {
	TurnRatePerTick float32 // radians; <= 0 falls back to the default
}

// Steer computes the next heading toward the player. The bool result is
// false when the view has no resolvable player target.
func (s ChasePlayerSteering) Steer(currentHeading float32, v world.View, ray world.Raycaster, ent effect.Entity, now float32) (SteeringOutput, effect.Effect, bool) {
	rate := s.TurnRatePerTick
	if rate <= 0 {
		rate = defaultTurnRatePerTick
	}

	player := v.PlayerEntity()
	if player == effect.NoEntity {
		return SteeringOutput{}, effect.None{}, false
	}
	entPos, _, ok := v.PositionOf(ent)
	if !ok {
		return SteeringOutput{}, effect.None{}, false
	}
	playerPos, _, ok := v.PositionOf(player)
	if !ok {
		return SteeringOutput{}, effect.None{}, false
	}

	delta := wrapAngle(headingToward(entPos, playerPos) - currentHeading)
	if delta > rate {
		delta = rate
	} else if delta < -rate {
		delta = -rate
	}
	return SteeringOutput{DesiredHeading: currentHeading + delta}, effect.None{}, true
}
