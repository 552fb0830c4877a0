package behavior

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/world"
)

// scriptLifecycleDispatch is appended to every behavior script so one
// compiled program can serve all three lifecycle phases.
const scriptLifecycleDispatch = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

// ScriptController drives an entity from a tengo behavior script. Scripts
// define onEnter/update/onExit functions and an optional initial_state
// global, and talk back through the engine map (transition, play_sound,
// set_velocity, ...). Script errors are logged and skip the tick; they never
// abort the host.
type ScriptController struct {
	entity    effect.Entity
	cfg       Config
	compiled  *tengo.Compiled
	stateData *tengo.Map
	current   StateID
	pending   StateID
	started   bool
	heading   float32
	alertness alert.State
	logger    *slog.Logger
}

// NewScriptController compiles the given script source for one entity.
func NewScriptController(ent effect.Entity, initialYaw float32, cfg Config, src []byte) (*ScriptController, error) {
	full := string(src) + "\n" + scriptLifecycleDispatch
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile script: %w", err)
	}

	sc := &ScriptController{
		entity:    ent,
		cfg:       cfg.withDefaults(),
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		current:   StateID("idle"),
		heading:   initialYaw,
		alertness: alert.New(alert.Lowest),
		logger:    slog.Default(),
	}

	// Resolve the optional initial_state global by running the program once
	// in a phase no branch matches.
	if err := sc.runPhase("noop", sc.current, &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		return nil, fmt.Errorf("behavior: script init: %w", err)
	}
	if compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(compiled.Get("initial_state").String()); s != "" {
			sc.current = StateID(strings.Trim(s, "\""))
		}
	}
	return sc, nil
}

// Current reports the script's active state name.
func (sc *ScriptController) Current() StateID {
	return sc.current
}

func (sc *ScriptController) Update(v world.View, now, dt float32, ray world.Raycaster) effect.Effect {
	visible := PlayerVisibleInFOV(v, ray, sc.entity, sc.heading, sc.cfg.FOVHalfAngleDeg, sc.cfg)

	var effects []effect.Effect
	cap, timings := world.CapAndTimingsFor(v, sc.entity)
	if _, _, changed := sc.alertness.Update(visible, dt, timings, cap); changed {
		effects = append(effects, alert.SyncEffect(sc.entity, &sc.alertness))
	}

	eventSet := map[string]bool{}
	if visible {
		eventSet["sees_player"] = true
	} else {
		eventSet["loses_player"] = true
	}

	engine := sc.buildEngine(v, ray, now, dt, visible, eventSet, func(e effect.Effect) {
		effects = append(effects, e)
	})

	if !sc.started {
		if err := sc.runPhase("enter", sc.current, engine); err != nil {
			sc.logger.Warn("behavior: script onEnter failed", "entity", sc.entity, "state", sc.current, "err", err)
			return effect.Compose(effects...)
		}
		sc.started = true
	}

	if err := sc.runPhase("update", sc.current, engine); err != nil {
		sc.logger.Warn("behavior: script update failed", "entity", sc.entity, "state", sc.current, "err", err)
		return effect.Compose(effects...)
	}

	if sc.pending != "" && sc.pending != sc.current {
		prev := sc.current
		if err := sc.runPhase("exit", prev, engine); err != nil {
			sc.logger.Warn("behavior: script onExit failed", "entity", sc.entity, "state", prev, "err", err)
			return effect.Compose(effects...)
		}
		sc.current = sc.pending
		sc.pending = ""
		if err := sc.runPhase("enter", sc.current, engine); err != nil {
			sc.logger.Warn("behavior: script onEnter failed", "entity", sc.entity, "state", sc.current, "err", err)
		}
	} else {
		sc.pending = ""
	}

	if v.DebugAIEnabled() {
		if pos, _, ok := v.PositionOf(sc.entity); ok {
			effects = append(effects, debugEffect(pos, sc.heading, sc.cfg.FOVHalfAngleDeg, sc.alertness.Level(), visible))
		}
	}

	return effect.Compose(effects...)
}

func (sc *ScriptController) runPhase(phase string, current StateID, engine *tengo.ImmutableMap) error {
	if err := sc.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := sc.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := sc.compiled.Set("__state", sc.stateData); err != nil {
		return err
	}
	if err := sc.compiled.Set("__current_state", string(current)); err != nil {
		return err
	}
	return sc.compiled.Run()
}

func (sc *ScriptController) buildEngine(v world.View, ray world.Raycaster, now, dt float32, visible bool, eventSet map[string]bool, emit func(effect.Effect)) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = userFunc("transition", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		sc.pending = StateID(name)
		return tengo.TrueValue, nil
	})

	values["event"] = userFunc("event", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolValue(eventSet[objectAsString(args[0])]), nil
	})

	values["consume_event"] = userFunc("consume_event", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		if eventSet[name] {
			delete(eventSet, name)
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	})

	values["player_visible"] = userFunc("player_visible", func(...tengo.Object) (tengo.Object, error) {
		return boolValue(visible), nil
	})

	values["alert_level"] = userFunc("alert_level", func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(sc.alertness.Level())}, nil
	})

	values["get_position"] = userFunc("get_position", func(...tengo.Object) (tengo.Object, error) {
		pos, _, ok := v.PositionOf(sc.entity)
		if !ok {
			return vec3Array(0, 0, 0), nil
		}
		return vec3Array(pos.X(), pos.Y(), pos.Z()), nil
	})

	values["get_player_position"] = userFunc("get_player_position", func(...tengo.Object) (tengo.Object, error) {
		pos, _, ok := v.PositionOf(v.PlayerEntity())
		if !ok {
			return vec3Array(0, 0, 0), nil
		}
		return vec3Array(pos.X(), pos.Y(), pos.Z()), nil
	})

	values["play_sound"] = userFunc("play_sound", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		emit(effect.Sound(sc.entity, objectAsString(args[0])))
		return tengo.TrueValue, nil
	})

	values["emit_signal"] = userFunc("emit_signal", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		emit(effect.EmitSignal{Entity: sc.entity, Signal: objectAsString(args[0])})
		return tengo.TrueValue, nil
	})

	values["set_velocity"] = userFunc("set_velocity", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		emit(effect.SetVelocity{
			Entity:   sc.entity,
			Velocity: mgl32.Vec3{objectAsFloat(args[0]), objectAsFloat(args[1]), objectAsFloat(args[2])},
		})
		return tengo.TrueValue, nil
	})

	values["face_player"] = userFunc("face_player", func(...tengo.Object) (tengo.Object, error) {
		steer := ChasePlayerSteering{TurnRatePerTick: sc.cfg.TurnRatePerTick}
		out, _, ok := steer.Steer(sc.heading, v, ray, sc.entity, now)
		if !ok {
			return tengo.FalseValue, nil
		}
		sc.heading = out.DesiredHeading
		return tengo.TrueValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func userFunc(name string, fn tengo.CallableFunc) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: fn}
}

func boolValue(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vec3Array(x, y, z float32) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: float64(x)},
		&tengo.Float{Value: float64(y)},
		&tengo.Float{Value: float64(z)},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) float32 {
	switch v := obj.(type) {
	case *tengo.Float:
		return float32(v.Value)
	case *tengo.Int:
		return float32(v.Value)
	default:
		return 0
	}
}
