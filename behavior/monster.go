package behavior

import (
	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/nav"
	"github.com/hexlater/aicore/pathfind"
	"github.com/hexlater/aicore/world"
)

// MonsterState is the mode of a patrolling creature.
type MonsterState int

const (
	MonsterIdle MonsterState = iota
	MonsterChasing
)

func (s MonsterState) String() string {
	switch s {
	case MonsterIdle:
		return "idle"
	case MonsterChasing:
		return "chasing"
	default:
		return "unknown"
	}
}

// Monster has the widest vision cone of the built-in archetypes. On sighting
// the player it chases along the navigation mesh, delegating movement to a
// Locomotion follower; it gives up once the player is hidden and its
// alertness has decayed below Moderate.
type Monster struct {
	entity     effect.Entity
	cfg        Config
	state      MonsterState
	heading    float32
	alertness  alert.State
	locomotion *Locomotion
}

// NewMonster creates an idle monster. planner may be nil, in which case the
// monster senses and escalates but never moves.
func NewMonster(ent effect.Entity, initialYaw float32, cfg Config, planner *pathfind.Planner, bits nav.MoveBits) *Monster {
	cfg = cfg.withDefaults()
	var loco *Locomotion
	if planner != nil {
		loco = NewLocomotion(planner, bits, cfg.MoveSpeed, cfg.ArriveRadius)
	}
	return &Monster{
		entity:     ent,
		cfg:        cfg,
		state:      MonsterIdle,
		heading:    initialYaw,
		alertness:  alert.New(alert.Lowest),
		locomotion: loco,
	}
}

// State reports the current monster mode.
func (m *Monster) State() MonsterState {
	return m.state
}

// AlertLevel exposes the monster's alertness.
func (m *Monster) AlertLevel() alert.Level {
	return m.alertness.Level()
}

func (m *Monster) Update(v world.View, now, dt float32, ray world.Raycaster) effect.Effect {
	visible := PlayerVisibleInFOV(v, ray, m.entity, m.heading, m.cfg.FOVHalfAngleDeg, m.cfg)

	var effects []effect.Effect

	cap, timings := world.CapAndTimingsFor(v, m.entity)
	_, level, changed := m.alertness.Update(visible, dt, timings, cap)
	if changed {
		effects = append(effects, alert.SyncEffect(m.entity, &m.alertness))
	}

	switch m.state {
	case MonsterIdle:
		if visible {
			m.state = MonsterChasing
			if m.locomotion != nil {
				m.locomotion.Reset()
			}
			effects = append(effects, effect.Sound(m.entity, "alert"))
		}
	case MonsterChasing:
		if !visible && level < alert.Moderate {
			m.state = MonsterIdle
			effects = append(effects, effect.SetVelocity{Entity: m.entity})
		}
	}

	if m.state == MonsterChasing {
		effects = append(effects, m.chase(v)...)
	}

	if v.DebugAIEnabled() {
		if pos, _, ok := v.PositionOf(m.entity); ok {
			effects = append(effects, debugEffect(pos, m.heading, m.cfg.FOVHalfAngleDeg, m.alertness.Level(), visible))
		}
	}

	return effect.Compose(effects...)
}

func (m *Monster) chase(v world.View) []effect.Effect {
	if m.locomotion == nil {
		return nil
	}
	pos, _, ok := v.PositionOf(m.entity)
	if !ok {
		return nil
	}
	playerPos, _, ok := v.PositionOf(v.PlayerEntity())
	if !ok {
		return nil
	}

	vel, ok := m.locomotion.Advance(pos, playerPos)
	if !ok {
		return []effect.Effect{effect.SetVelocity{Entity: m.entity}}
	}
	if vel.Len() > 1e-5 {
		m.heading = headingToward(pos, pos.Add(vel))
	}
	return []effect.Effect{effect.SetVelocity{Entity: m.entity, Velocity: vel}}
}
