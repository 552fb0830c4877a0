package behavior

import (
	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// FSMController runs a compiled data-driven FSM as a Controller. Sensor
// events (sees_player / loses_player) are enqueued every tick; actions and
// checkers may enqueue more. Events are processed after the current state's
// While actions so timers started this tick can already expire.
type FSMController struct {
	entity     effect.Entity
	cfg        Config
	def        *FSMDef
	current    StateID
	timer      float32
	heading    float32
	alertness  alert.State
	initialYaw float32
}

// NewFSMController binds a compiled definition to an entity.
func NewFSMController(ent effect.Entity, initialYaw float32, cfg Config, def *FSMDef) *FSMController {
	return &FSMController{
		entity:     ent,
		cfg:        cfg.withDefaults(),
		def:        def,
		heading:    initialYaw,
		initialYaw: initialYaw,
		alertness:  alert.New(alert.Lowest),
	}
}

// Current reports the active state id.
func (f *FSMController) Current() StateID {
	return f.current
}

func (f *FSMController) Update(v world.View, now, dt float32, ray world.Raycaster) effect.Effect {
	if f.def == nil {
		return effect.None{}
	}

	visible := PlayerVisibleInFOV(v, ray, f.entity, f.heading, f.cfg.FOVHalfAngleDeg, f.cfg)

	var effects []effect.Effect
	cap, timings := world.CapAndTimingsFor(v, f.entity)
	if _, _, changed := f.alertness.Update(visible, dt, timings, cap); changed {
		effects = append(effects, alert.SyncEffect(f.entity, &f.alertness))
	}

	var pending []EventID
	ctx := &ActionContext{
		View:          v,
		Ray:           ray,
		Entity:        f.entity,
		Now:           now,
		DT:            dt,
		PlayerVisible: visible,
		Heading:       &f.heading,
		Alert:         &f.alertness,
		Timer:         &f.timer,
		TurnRate:      f.cfg.TurnRatePerTick,
		Emit:          func(e effect.Effect) { effects = append(effects, e) },
		EnqueueEvent: func(ev EventID) {
			if ev != "" {
				pending = append(pending, ev)
			}
		},
	}

	if f.current == "" {
		f.current = f.def.Initial
		runActions(f.def.States[f.current].OnEnter, ctx)
	}

	if visible {
		ctx.EnqueueEvent("sees_player")
	} else {
		ctx.EnqueueEvent("loses_player")
	}

	runActions(f.def.States[f.current].While, ctx)

	for _, ch := range f.def.Checkers {
		if ch.From != f.current {
			continue
		}
		if ch.Check != nil && ch.Check(ctx) {
			ctx.EnqueueEvent(ch.Event)
		}
	}

	for _, ev := range pending {
		transitions, ok := f.def.Transitions[f.current]
		if !ok {
			continue
		}
		next, ok := transitions[ev]
		if !ok || next == f.current {
			continue
		}
		runActions(f.def.States[f.current].OnExit, ctx)
		f.current = next
		runActions(f.def.States[f.current].OnEnter, ctx)
	}

	if v.DebugAIEnabled() {
		if pos, _, ok := v.PositionOf(f.entity); ok {
			effects = append(effects, debugEffect(pos, f.heading, f.cfg.FOVHalfAngleDeg, f.alertness.Level(), visible))
		}
	}

	return effect.Compose(effects...)
}

func runActions(actions []Action, ctx *ActionContext) {
	for _, a := range actions {
		if a != nil {
			a(ctx)
		}
	}
}
