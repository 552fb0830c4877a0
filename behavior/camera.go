package behavior

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// CameraState is the mode of a wall-mounted security camera.
type CameraState int

const (
	CameraSweeping CameraState = iota
	CameraTracking
	CameraAlarmed
)

func (s CameraState) String() string {
	switch s {
	case CameraSweeping:
		return "sweeping"
	case CameraTracking:
		return "tracking"
	case CameraAlarmed:
		return "alarmed"
	default:
		return "unknown"
	}
}

const cameraYawJoint = 1

// Camera sweeps its mount arc until it spots the player, tracks while it
// keeps sight, and raises the alarm once its alertness escalates to High.
// Its vision cone is narrower than a turret's and sits near the ceiling.
type Camera struct {
	entity     effect.Entity
	cfg        Config
	state      CameraState
	initialYaw float32
	heading    float32
	alertness  alert.State
	steering   ChasePlayerSteering
}

// NewCamera creates a sweeping camera centered on initialYaw (radians).
func NewCamera(ent effect.Entity, initialYaw float32, cfg Config) *Camera {
	cfg = cfg.withDefaults()
	return &Camera{
		entity:     ent,
		cfg:        cfg,
		state:      CameraSweeping,
		initialYaw: initialYaw,
		heading:    initialYaw,
		alertness:  alert.New(alert.Lowest),
		steering:   ChasePlayerSteering{TurnRatePerTick: cfg.TurnRatePerTick},
	}
}

// State reports the current camera mode.
func (c *Camera) State() CameraState {
	return c.state
}

// Heading is the current look yaw in radians.
func (c *Camera) Heading() float32 {
	return c.heading
}

// AlertLevel exposes the camera's alertness.
func (c *Camera) AlertLevel() alert.Level {
	return c.alertness.Level()
}

func (c *Camera) Update(v world.View, now, dt float32, ray world.Raycaster) effect.Effect {
	visible := PlayerVisibleInFOV(v, ray, c.entity, c.heading, c.cfg.FOVHalfAngleDeg, c.cfg)

	var effects []effect.Effect

	cap, timings := world.CapAndTimingsFor(v, c.entity)
	_, level, changed := c.alertness.Update(visible, dt, timings, cap)
	if changed {
		effects = append(effects, alert.SyncEffect(c.entity, &c.alertness))
	}

	switch c.state {
	case CameraSweeping:
		if visible {
			c.state = CameraTracking
		}
	case CameraTracking:
		if level >= alert.High {
			c.state = CameraAlarmed
			effects = append(effects,
				effect.EmitSignal{Entity: c.entity, Signal: "alarm"},
				effect.Sound(c.entity, "alarm"))
		} else if !visible && level < alert.Moderate {
			c.state = CameraSweeping
		}
	case CameraAlarmed:
		if level < alert.High {
			c.state = CameraTracking
		}
	}

	switch c.state {
	case CameraSweeping:
		c.heading = c.initialYaw + c.cfg.SweepAmplitude*float32(math.Sin(float64(now*c.cfg.SweepRate)))
	default:
		if out, _, ok := c.steering.Steer(c.heading, v, ray, c.entity, now); ok {
			c.heading = out.DesiredHeading
		}
	}

	effects = append(effects, effect.SetJointTransform{
		Entity:    c.entity,
		Joint:     cameraYawJoint,
		Transform: mgl32.HomogRotate3DX(c.initialYaw - c.heading - mgl32.DegToRad(90)),
	})

	if v.DebugAIEnabled() {
		if pos, _, ok := v.PositionOf(c.entity); ok {
			effects = append(effects, debugEffect(pos, c.heading, c.cfg.FOVHalfAngleDeg, c.alertness.Level(), visible))
		}
	}

	return effect.Compose(effects...)
}
