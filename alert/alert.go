package alert

// Level is how suspicious/aggressive an AI currently is. Levels are totally
// ordered; Lowest is fully at rest, High is full combat reaction.
type Level int

const (
	Lowest Level = iota
	Low
	Moderate
	High
)

func (l Level) String() string {
	switch l {
	case Lowest:
		return "lowest"
	case Low:
		return "low"
	case Moderate:
		return "moderate"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// ParseLevel maps a profile string to a Level. Unknown names map to Lowest.
func ParseLevel(name string) Level {
	switch name {
	case "low":
		return Low
	case "moderate":
		return Moderate
	case "high":
		return High
	default:
		return Lowest
	}
}

// Cap bounds the alert levels an entity may occupy. MinRelax is the instant
// reaction floor: a sighted entity steps up toward it immediately, one level
// per tick, without waiting on the escalation timer.
type Cap struct {
	Max      Level
	Min      Level
	MinRelax Level
}

// DefaultCap is substituted when an entity carries no cap property. Max of
// Lowest means the entity never escalates.
var DefaultCap = Cap{Max: Lowest, Min: Lowest, MinRelax: Lowest}

// Normalize forces Min <= MinRelax <= Max so malformed host data cannot
// break the clamp law.
func (c Cap) Normalize() Cap {
	if c.Max < c.Min {
		c.Max = c.Min
	}
	if c.MinRelax < c.Min {
		c.MinRelax = c.Min
	}
	if c.MinRelax > c.Max {
		c.MinRelax = c.Max
	}
	return c
}

// Clamp returns level limited to [c.Min, c.Max].
func Clamp(l Level, c Cap) Level {
	c = c.Normalize()
	if l < c.Min {
		return c.Min
	}
	if l > c.Max {
		return c.Max
	}
	return l
}

// RawTimings is the host-side timing record, all fields in milliseconds.
type RawTimings struct {
	EscalateToModerateMS uint32
	EscalateToHighMS     uint32
	DecayFromModerateMS  uint32
	DecayFromHighMS      uint32
	IgnoreRangeMS        uint32
}

// Timings holds the same five thresholds converted to seconds.
type Timings struct {
	EscalateToModerate float32
	EscalateToHigh     float32
	DecayFromModerate  float32
	DecayFromHigh      float32
	IgnoreRange        float32
}

// NewTimings converts a raw millisecond record.
func NewTimings(raw RawTimings) Timings {
	return Timings{
		EscalateToModerate: float32(raw.EscalateToModerateMS) / 1000,
		EscalateToHigh:     float32(raw.EscalateToHighMS) / 1000,
		DecayFromModerate:  float32(raw.DecayFromModerateMS) / 1000,
		DecayFromHigh:      float32(raw.DecayFromHighMS) / 1000,
		IgnoreRange:        float32(raw.IgnoreRangeMS) / 1000,
	}
}

// DefaultTimings is substituted when an entity carries no timing property:
// 2 s per escalation step, 4 s per decay step, 1 s ignore range.
var DefaultTimings = NewTimings(RawTimings{
	EscalateToModerateMS: 2000,
	EscalateToHighMS:     2000,
	DecayFromModerateMS:  4000,
	DecayFromHighMS:      4000,
	IgnoreRangeMS:        1000,
})

func escalateThreshold(from Level, t Timings) float32 {
	if from >= Moderate {
		return t.EscalateToHigh
	}
	return t.EscalateToModerate
}

func decayThreshold(from Level, t Timings) float32 {
	if from >= High {
		return t.DecayFromHigh
	}
	return t.DecayFromModerate
}
