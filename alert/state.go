package alert

import (
	"github.com/hexlater/aicore/effect"
)

// State tracks one entity's alert level over time. Levels rise toward the
// cap maximum while the player is visible and fall back toward the cap
// minimum once the ignore range has elapsed without a sighting. A level
// never moves more than one step per Update call.
type State struct {
	level        Level
	acc          float32
	sinceVisible float32
	wasVisible   bool
	everVisible  bool
}

// New returns a state resting at the given level with an empty accumulator.
func New(initial Level) State {
	return State{level: initial}
}

// Level is the current alert level.
func (s *State) Level() Level {
	return s.level
}

// Update advances the state by dt seconds given whether the player is
// visible this tick. It returns the entry and exit levels and whether they
// differ.
func (s *State) Update(visible bool, dt float32, t Timings, c Cap) (old, now Level, changed bool) {
	if dt < 0 {
		dt = 0
	}
	c = c.Normalize()
	s.level = Clamp(s.level, c)
	old = s.level

	if visible != s.wasVisible {
		s.acc = 0
		s.wasVisible = visible
	}

	if visible {
		s.everVisible = true
		s.sinceVisible = 0
		if s.level >= c.Max {
			s.acc = 0
		} else {
			s.acc += dt
			if s.level < c.MinRelax {
				// Reaction floor: step up immediately, keep the
				// accumulator running toward the next threshold.
				s.level++
			} else if s.acc >= escalateThreshold(s.level, t) {
				s.level++
				s.acc = 0
			}
		}
	} else {
		s.sinceVisible += dt
		switch {
		case s.level <= c.Min:
			s.acc = 0
		case s.everVisible && s.sinceVisible <= t.IgnoreRange:
			// Recently lost sight; hold the level.
		default:
			s.acc += dt
			if s.acc >= decayThreshold(s.level, t) {
				s.level--
				s.acc = 0
			}
		}
	}

	s.level = Clamp(s.level, c)
	return old, s.level, s.level != old
}

// SyncEffect builds the effect that publishes the state's level onto the
// entity.
func SyncEffect(ent effect.Entity, s *State) effect.Effect {
	return effect.SyncAlertness{Entity: ent, Level: int(s.level)}
}
