// Package profiles holds the YAML archetype profiles that tune the AI
// controllers, plus their tengo behavior scripts. Profiles are embedded in
// the binary and overridable from a profiles/ directory next to the host,
// with an fsnotify watcher for live editing.
package profiles

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/behavior"
	"github.com/hexlater/aicore/nav"
)

// ArchetypeSpec is one archetype profile: which controller kind to build and
// every tunable it reads. Zero values fall back to the controller defaults.
type ArchetypeSpec struct {
	Name   string     `yaml:"name"`
	Kind   string     `yaml:"kind"` // turret | camera | monster | fsm | script
	Vision VisionSpec `yaml:"vision"`
	Alert  AlertSpec  `yaml:"alert"`
	Turret TurretSpec `yaml:"turret"`
	Camera CameraSpec `yaml:"camera"`
	Motion MotionSpec `yaml:"motion"`
	FSM    string     `yaml:"fsm"`    // profile file with the machine, kind fsm
	Script string     `yaml:"script"` // script file, kind script
}

type VisionSpec struct {
	FOVHalfAngleDeg float32 `yaml:"fov_half_angle_deg"`
	EyeHeight       float32 `yaml:"eye_height"`
	ChestHeight     float32 `yaml:"chest_height"`
	SightRange      float32 `yaml:"sight_range"`
}

type AlertSpec struct {
	Cap     CapSpec     `yaml:"cap"`
	Timings TimingsSpec `yaml:"timings"`
}

// CapSpec names alert levels as strings (lowest/low/moderate/high).
type CapSpec struct {
	Max      string `yaml:"max"`
	Min      string `yaml:"min"`
	MinRelax string `yaml:"min_relax"`
}

type TimingsSpec struct {
	EscalateToModerateMS uint32 `yaml:"escalate_to_moderate_ms"`
	EscalateToHighMS     uint32 `yaml:"escalate_to_high_ms"`
	DecayFromModerateMS  uint32 `yaml:"decay_from_moderate_ms"`
	DecayFromHighMS      uint32 `yaml:"decay_from_high_ms"`
	IgnoreRangeMS        uint32 `yaml:"ignore_range_ms"`
}

type TurretSpec struct {
	OpenTimeSec     float32 `yaml:"open_time_sec"`
	FireIntervalSec float32 `yaml:"fire_interval_sec"`
	TurnRatePerTick float32 `yaml:"turn_rate_per_tick"`
}

type CameraSpec struct {
	SweepRate       float32 `yaml:"sweep_rate"`      // radians/second
	SweepAmplitude  float32 `yaml:"sweep_amplitude"` // radians
	TurnRatePerTick float32 `yaml:"turn_rate_per_tick"`
}

type MotionSpec struct {
	MoveSpeed    float32  `yaml:"move_speed"`
	ArriveRadius float32  `yaml:"arrive_radius"`
	Modes        []string `yaml:"modes"` // walk | crawl | fly | swim
}

// LoadSpec reads and unmarshals any profile file into the given spec type.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("profiles: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("profiles: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadArchetype reads one archetype profile by file name.
func LoadArchetype(filename string) (*ArchetypeSpec, error) {
	spec, err := LoadSpec[ArchetypeSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the tunables into a controller configuration. The turret
// turn rate wins over the camera one when both are set; profiles in practice
// fill only the block matching their kind.
func (s *ArchetypeSpec) Config() behavior.Config {
	cfg := behavior.Config{
		FOVHalfAngleDeg: s.Vision.FOVHalfAngleDeg,
		EyeHeight:       s.Vision.EyeHeight,
		ChestHeight:     s.Vision.ChestHeight,
		SightRange:      s.Vision.SightRange,
		OpenTime:        s.Turret.OpenTimeSec,
		FireInterval:    s.Turret.FireIntervalSec,
		MoveSpeed:       s.Motion.MoveSpeed,
		ArriveRadius:    s.Motion.ArriveRadius,
		SweepRate:       s.Camera.SweepRate,
		SweepAmplitude:  s.Camera.SweepAmplitude,
		TurnRatePerTick: s.Turret.TurnRatePerTick,
	}
	if cfg.TurnRatePerTick == 0 {
		cfg.TurnRatePerTick = s.Camera.TurnRatePerTick
	}
	return cfg
}

// AlertCap converts the named levels, normalized so a hand-edited profile
// cannot produce an inconsistent cap.
func (s *ArchetypeSpec) AlertCap() alert.Cap {
	return alert.Cap{
		Max:      alert.ParseLevel(s.Alert.Cap.Max),
		Min:      alert.ParseLevel(s.Alert.Cap.Min),
		MinRelax: alert.ParseLevel(s.Alert.Cap.MinRelax),
	}.Normalize()
}

// AlertTimings converts the millisecond thresholds, substituting the package
// defaults when the profile leaves the block empty.
func (s *ArchetypeSpec) AlertTimings() alert.Timings {
	t := s.Alert.Timings
	if t == (TimingsSpec{}) {
		return alert.DefaultTimings
	}
	return alert.NewTimings(alert.RawTimings{
		EscalateToModerateMS: t.EscalateToModerateMS,
		EscalateToHighMS:     t.EscalateToHighMS,
		DecayFromModerateMS:  t.DecayFromModerateMS,
		DecayFromHighMS:      t.DecayFromHighMS,
		IgnoreRangeMS:        t.IgnoreRangeMS,
	})
}

// MoveBits converts the motion mode names. An empty list means walking.
func (s *ArchetypeSpec) MoveBits() nav.MoveBits {
	if len(s.Motion.Modes) == 0 {
		return nav.Walk
	}
	var bits nav.MoveBits
	for _, mode := range s.Motion.Modes {
		switch mode {
		case "walk":
			bits |= nav.Walk
		case "crawl":
			bits |= nav.Crawl
		case "fly":
			bits |= nav.Fly
		case "swim":
			bits |= nav.Swim
		}
	}
	if bits == 0 {
		bits = nav.Walk
	}
	return bits
}
