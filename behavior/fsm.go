package behavior

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// StateID names a state in a data-driven archetype FSM.
type StateID string

// EventID names an event that can drive a transition.
type EventID string

// Action is one step of a state's on_enter/while/on_exit list.
type Action func(ctx *ActionContext)

// ActionContext is what actions and transition checkers see during one tick.
type ActionContext struct {
	View          world.View
	Ray           world.Raycaster
	Entity        effect.Entity
	Now           float32
	DT            float32
	PlayerVisible bool
	Heading       *float32
	Alert         *alert.State
	Timer         *float32
	TurnRate      float32
	Emit          func(effect.Effect)
	EnqueueEvent  func(EventID)
}

// StateDef holds the compiled action lists of one state.
type StateDef struct {
	OnEnter []Action
	While   []Action
	OnExit  []Action
}

// TransitionChecker evaluates a registry-named condition each tick.
type TransitionChecker func(ctx *ActionContext) bool

// TransitionCheckerDef binds a checker to its source state and the synthetic
// event it fires.
type TransitionCheckerDef struct {
	From  StateID
	Event EventID
	Check TransitionChecker
}

// FSMDef is a compiled archetype state machine.
type FSMDef struct {
	Initial     StateID
	States      map[StateID]StateDef
	Transitions map[StateID]map[EventID]StateID
	Checkers    []TransitionCheckerDef
}

// RawFSM is the YAML shape of an archetype FSM. Transitions accept either a
// plain map[event]state or condition entries whose key is looked up in the
// transition registry with an optional {to, arg} value.
type RawFSM struct {
	Initial     string              `yaml:"initial"`
	States      map[string]RawState `yaml:"states"`
	Transitions map[string]any      `yaml:"transitions"`
}

// RawState lists the action maps of one YAML state.
type RawState struct {
	OnEnter []map[string]any `yaml:"on_enter"`
	While   []map[string]any `yaml:"while"`
	OnExit  []map[string]any `yaml:"on_exit"`
}

var actionRegistry = map[string]func(any) Action{
	"play_sound": func(arg any) Action {
		event := fmt.Sprint(arg)
		return func(ctx *ActionContext) {
			if ctx.Emit != nil {
				ctx.Emit(effect.Sound(ctx.Entity, event))
			}
		}
	},
	"emit_signal": func(arg any) Action {
		signal := fmt.Sprint(arg)
		return func(ctx *ActionContext) {
			if ctx.Emit != nil {
				ctx.Emit(effect.EmitSignal{Entity: ctx.Entity, Signal: signal})
			}
		}
	},
	"stop": func(_ any) Action {
		return func(ctx *ActionContext) {
			if ctx.Emit != nil {
				ctx.Emit(effect.SetVelocity{Entity: ctx.Entity})
			}
		}
	},
	"face_player": func(_ any) Action {
		return func(ctx *ActionContext) {
			if ctx.Heading == nil || ctx.View == nil {
				return
			}
			steer := ChasePlayerSteering{TurnRatePerTick: ctx.TurnRate}
			if out, _, ok := steer.Steer(*ctx.Heading, ctx.View, ctx.Ray, ctx.Entity, ctx.Now); ok {
				*ctx.Heading = out.DesiredHeading
			}
		}
	},
	"start_timer": func(arg any) Action {
		seconds := asFloat(arg)
		return func(ctx *ActionContext) {
			if ctx.Timer != nil {
				*ctx.Timer = seconds
			}
		}
	},
	"tick_timer": func(_ any) Action {
		return func(ctx *ActionContext) {
			if ctx.Timer == nil || ctx.EnqueueEvent == nil {
				return
			}
			*ctx.Timer -= ctx.DT
			if *ctx.Timer <= 0 {
				ctx.EnqueueEvent(EventID("timer_expired"))
			}
		}
	},
	"emit_event": func(arg any) Action {
		name := fmt.Sprint(arg)
		return func(ctx *ActionContext) {
			if ctx.EnqueueEvent != nil {
				ctx.EnqueueEvent(EventID(name))
			}
		}
	},
}

var transitionRegistry = map[string]func(any) TransitionChecker{
	"always": func(any) TransitionChecker {
		return func(*ActionContext) bool { return true }
	},
	"sees_player": func(any) TransitionChecker {
		return func(ctx *ActionContext) bool { return ctx.PlayerVisible }
	},
	"loses_player": func(any) TransitionChecker {
		return func(ctx *ActionContext) bool { return !ctx.PlayerVisible }
	},
	"timer_expired": func(any) TransitionChecker {
		return func(ctx *ActionContext) bool {
			return ctx.Timer != nil && *ctx.Timer <= 0
		}
	},
	"alert_at_least": func(arg any) TransitionChecker {
		level := alert.ParseLevel(fmt.Sprint(arg))
		return func(ctx *ActionContext) bool {
			return ctx.Alert != nil && ctx.Alert.Level() >= level
		}
	},
}

func asFloat(v any) float32 {
	switch t := v.(type) {
	case int:
		return float32(t)
	case int64:
		return float32(t)
	case float64:
		return float32(t)
	case float32:
		return t
	default:
		return 0
	}
}

// CompileFSM turns a raw YAML machine into an executable definition.
// Unknown action or condition names are errors; a machine that compiles
// cannot fail at runtime.
func CompileFSM(raw RawFSM) (*FSMDef, error) {
	if raw.Initial == "" {
		return nil, fmt.Errorf("fsm: missing initial state")
	}

	build := func(list []map[string]any) ([]Action, error) {
		if len(list) == 0 {
			return nil, nil
		}
		out := make([]Action, 0, len(list))
		for _, entry := range list {
			for k, v := range entry {
				makeAction, ok := actionRegistry[k]
				if !ok {
					return nil, fmt.Errorf("fsm: unknown action %q", k)
				}
				out = append(out, makeAction(v))
			}
		}
		return out, nil
	}

	states := map[StateID]StateDef{}
	for name, s := range raw.States {
		onEnter, err := build(s.OnEnter)
		if err != nil {
			return nil, err
		}
		while, err := build(s.While)
		if err != nil {
			return nil, err
		}
		onExit, err := build(s.OnExit)
		if err != nil {
			return nil, err
		}
		states[StateID(name)] = StateDef{OnEnter: onEnter, While: while, OnExit: onExit}
	}

	transitions := map[StateID]map[EventID]StateID{}
	var checkers []TransitionCheckerDef

	for from, rawVal := range raw.Transitions {
		fromID := StateID(from)
		transitions[fromID] = map[EventID]StateID{}

		entries, ok := rawVal.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fsm: invalid transitions for state %s", from)
		}
		for key, val := range entries {
			if toStr, ok := val.(string); ok {
				if maker, cond := transitionRegistry[key]; cond {
					eventID := EventID(fmt.Sprintf("__cond_%s_%s", from, key))
					transitions[fromID][eventID] = StateID(toStr)
					checkers = append(checkers, TransitionCheckerDef{From: fromID, Event: eventID, Check: maker(nil)})
				} else {
					transitions[fromID][EventID(key)] = StateID(toStr)
				}
				continue
			}
			m, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("fsm: invalid transition value for %s.%s", from, key)
			}
			maker, cond := transitionRegistry[key]
			if !cond {
				return nil, fmt.Errorf("fsm: unknown condition %q", key)
			}
			toState, _ := m["to"].(string)
			if toState == "" {
				return nil, fmt.Errorf("fsm: missing to state for transition %s.%s", from, key)
			}
			eventID := EventID(fmt.Sprintf("__cond_%s_%s", from, key))
			transitions[fromID][eventID] = StateID(toState)
			checkers = append(checkers, TransitionCheckerDef{From: fromID, Event: eventID, Check: maker(m["arg"])})
		}
	}

	for from, events := range transitions {
		if _, ok := states[from]; !ok {
			return nil, fmt.Errorf("fsm: transitions declared for undefined state %q", from)
		}
		for _, to := range events {
			if _, ok := states[to]; !ok {
				return nil, fmt.Errorf("fsm: transition from %q targets undefined state %q", from, to)
			}
		}
	}

	if _, ok := states[StateID(raw.Initial)]; !ok {
		return nil, fmt.Errorf("fsm: initial state %q not defined", raw.Initial)
	}

	return &FSMDef{
		Initial:     StateID(raw.Initial),
		States:      states,
		Transitions: transitions,
		Checkers:    checkers,
	}, nil
}

// ParseFSM unmarshals and compiles a YAML archetype FSM.
func ParseFSM(data []byte) (*FSMDef, error) {
	var raw RawFSM
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fsm: parse: %w", err)
	}
	return CompileFSM(raw)
}
