// Package behavior hosts the per-archetype AI controllers: hand-written
// state machines for turrets, cameras and monsters, a data-driven FSM
// compiler for YAML-described archetypes, and a tengo script runtime for
// fully scripted ones. Controllers are pure tick steps: they consume a world
// view, the clock and a raycaster, and return an effect tree. They never
// block and never touch the world directly.
package behavior

import (
	"math"

	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// Controller is one AI brain stepped once per simulation tick. now and dt
// are seconds. Implementations must be deterministic given identical inputs.
type Controller interface {
	Update(v world.View, now, dt float32, ray world.Raycaster) effect.Effect
}

// Config is the tuning record shared by the built-in archetypes. Zero values
// fall back to the package defaults below.
type Config struct {
	FOVHalfAngleDeg float32
	EyeHeight       float32
	ChestHeight     float32
	SightRange      float32
	TurnRatePerTick float32 // radians
	OpenTime        float32 // seconds, turret shutter
	FireInterval    float32 // seconds
	MoveSpeed       float32 // units/second, monster locomotion
	SweepRate       float32 // radians/second, camera sweep
	SweepAmplitude  float32 // radians, camera sweep half arc
	ArriveRadius    float32 // waypoint switch distance
}

const (
	defaultFOVHalfAngleDeg = 60.0
	defaultEyeHeight       = 1.0
	defaultChestHeight     = 1.0
	defaultSightRange      = 50.0
	defaultTurnRatePerTick = 0.1
	defaultOpenTime        = 2.5
	defaultFireInterval    = 1.0
	defaultMoveSpeed       = 2.0
	defaultSweepRate       = 0.5
	defaultSweepAmplitude  = math.Pi / 4
	defaultArriveRadius    = 0.25
)

func (c Config) withDefaults() Config {
	if c.FOVHalfAngleDeg <= 0 {
		c.FOVHalfAngleDeg = defaultFOVHalfAngleDeg
	}
	if c.EyeHeight == 0 {
		c.EyeHeight = defaultEyeHeight
	}
	if c.ChestHeight == 0 {
		c.ChestHeight = defaultChestHeight
	}
	if c.SightRange <= 0 {
		c.SightRange = defaultSightRange
	}
	if c.TurnRatePerTick <= 0 {
		c.TurnRatePerTick = defaultTurnRatePerTick
	}
	if c.OpenTime <= 0 {
		c.OpenTime = defaultOpenTime
	}
	if c.FireInterval <= 0 {
		c.FireInterval = defaultFireInterval
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = defaultMoveSpeed
	}
	if c.SweepRate <= 0 {
		c.SweepRate = defaultSweepRate
	}
	if c.SweepAmplitude <= 0 {
		c.SweepAmplitude = defaultSweepAmplitude
	}
	if c.ArriveRadius <= 0 {
		c.ArriveRadius = defaultArriveRadius
	}
	return c
}

// wrapAngle maps an angle difference into (-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
