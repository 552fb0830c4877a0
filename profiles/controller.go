package profiles

import (
	"fmt"

	"github.com/hexlater/aicore/behavior"
	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/pathfind"
)

// NewController builds the controller an archetype profile describes.
// planner may be nil for archetypes that do not move. For kind fsm the FSM
// field names a second profile file holding the machine; for kind script the
// Script field names a tengo file.
func NewController(spec *ArchetypeSpec, ent effect.Entity, initialYaw float32, planner *pathfind.Planner) (behavior.Controller, error) {
	cfg := spec.Config()

	switch spec.Kind {
	case "turret":
		return behavior.NewTurret(ent, initialYaw, cfg), nil
	case "camera":
		return behavior.NewCamera(ent, initialYaw, cfg), nil
	case "monster":
		return behavior.NewMonster(ent, initialYaw, cfg, planner, spec.MoveBits()), nil
	case "fsm":
		if spec.FSM == "" {
			return nil, fmt.Errorf("profiles: archetype %s: kind fsm without an fsm file", spec.Name)
		}
		data, err := Load(spec.FSM)
		if err != nil {
			return nil, fmt.Errorf("profiles: archetype %s: %w", spec.Name, err)
		}
		def, err := behavior.ParseFSM(data)
		if err != nil {
			return nil, fmt.Errorf("profiles: archetype %s: %w", spec.Name, err)
		}
		return behavior.NewFSMController(ent, initialYaw, cfg, def), nil
	case "script":
		if spec.Script == "" {
			return nil, fmt.Errorf("profiles: archetype %s: kind script without a script file", spec.Name)
		}
		src, err := LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("profiles: archetype %s: %w", spec.Name, err)
		}
		return behavior.NewScriptController(ent, initialYaw, cfg, src)
	default:
		return nil, fmt.Errorf("profiles: archetype %s: unknown kind %q", spec.Name, spec.Kind)
	}
}
