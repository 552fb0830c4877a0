package behavior

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// TurretState is the shutter position of a pop-up turret.
type TurretState int

const (
	TurretClosed TurretState = iota
	TurretOpening
	TurretOpen
	TurretClosing
)

func (s TurretState) String() string {
	switch s {
	case TurretClosed:
		return "closed"
	case TurretOpening:
		return "opening"
	case TurretOpen:
		return "open"
	case TurretClosing:
		return "closing"
	default:
		return "unknown"
	}
}

const (
	turretShutterJoint = 2
	turretYawJoint     = 1
	shutterTravel      = -0.75
)

// Turret pops open when the player enters its vision cone, tracks with a
// bounded turn rate, fires on an interval, and folds shut when the player is
// lost. The shutter joint transform is emitted every tick, including while
// closed, to match the original's per-frame write.
type Turret struct {
	entity     effect.Entity
	cfg        Config
	state      TurretState
	progress   float32
	initialYaw float32
	heading    float32
	nextFire   float32
	alertness  alert.State
	steering   ChasePlayerSteering
}

// NewTurret creates a closed turret facing initialYaw (radians).
func NewTurret(ent effect.Entity, initialYaw float32, cfg Config) *Turret {
	cfg = cfg.withDefaults()
	return &Turret{
		entity:     ent,
		cfg:        cfg,
		state:      TurretClosed,
		initialYaw: initialYaw,
		heading:    initialYaw,
		alertness:  alert.New(alert.Lowest),
		steering:   ChasePlayerSteering{TurnRatePerTick: cfg.TurnRatePerTick},
	}
}

// State reports the current shutter state.
func (t *Turret) State() TurretState {
	return t.state
}

// Progress reports the shutter animation progress in [0, 1] for the Opening
// and Closing states.
func (t *Turret) Progress() float32 {
	return t.progress
}

// Heading is the current aim yaw in radians.
func (t *Turret) Heading() float32 {
	return t.heading
}

// AlertLevel exposes the turret's alertness for HUD consumers.
func (t *Turret) AlertLevel() alert.Level {
	return t.alertness.Level()
}

func (t *Turret) Update(v world.View, now, dt float32, ray world.Raycaster) effect.Effect {
	visible := PlayerVisibleInFOV(v, ray, t.entity, t.heading, t.cfg.FOVHalfAngleDeg, t.cfg)

	var effects []effect.Effect

	cap, timings := world.CapAndTimingsFor(v, t.entity)
	if _, _, changed := t.alertness.Update(visible, dt, timings, cap); changed {
		effects = append(effects, alert.SyncEffect(t.entity, &t.alertness))
	}

	switch t.state {
	case TurretClosed:
		if visible {
			t.state = TurretOpening
			t.progress = 0
			effects = append(effects, effect.Sound(t.entity, "activate"))
		}
	case TurretOpen:
		if !visible {
			t.state = TurretClosing
			t.progress = 0
			effects = append(effects, effect.Sound(t.entity, "deactivate"))
		}
	}

	switch t.state {
	case TurretOpening:
		t.progress += dt / t.cfg.OpenTime
		if t.progress >= 1 {
			t.state = TurretOpen
			t.progress = 0
		}
	case TurretClosing:
		t.progress += dt / t.cfg.OpenTime
		if t.progress >= 1 {
			t.state = TurretClosed
			t.progress = 0
		}
	}

	if t.state == TurretOpen {
		if out, _, ok := t.steering.Steer(t.heading, v, ray, t.entity, now); ok {
			t.heading = out.DesiredHeading
		}
		effects = append(effects, effect.SetJointTransform{
			Entity:    t.entity,
			Joint:     turretYawJoint,
			Transform: mgl32.HomogRotate3DX(t.initialYaw - t.heading - mgl32.DegToRad(90)),
		})
		if now >= t.nextFire {
			effects = append(effects, effect.FireRangedWeapon{
				Entity:   t.entity,
				Rotation: mgl32.QuatRotate(t.heading-t.initialYaw, mgl32.Vec3{0, 1, 0}),
			})
			t.nextFire = now + t.cfg.FireInterval
		}
	}

	effects = append(effects, effect.SetJointTransform{
		Entity:    t.entity,
		Joint:     turretShutterJoint,
		Transform: mgl32.Translate3D(shutterTravel*t.openAmount(), 0, 0),
	})

	if v.DebugAIEnabled() {
		if pos, _, ok := v.PositionOf(t.entity); ok {
			effects = append(effects, debugEffect(pos, t.heading, t.cfg.FOVHalfAngleDeg, t.alertness.Level(), visible))
		}
	}

	return effect.Compose(effects...)
}

func (t *Turret) openAmount() float32 {
	switch t.state {
	case TurretOpening:
		return t.progress
	case TurretOpen:
		return 1
	case TurretClosing:
		return 1 - t.progress
	default:
		return 0
	}
}
