package alert

import (
	"testing"

	"github.com/hexlater/aicore/effect"
)

var combatCap = Cap{Max: High, Min: Lowest, MinRelax: Low}

func TestClampLaw(t *testing.T) {
	levels := []Level{Lowest, Low, Moderate, High}
	caps := []Cap{
		{Max: High, Min: Lowest, MinRelax: Low},
		{Max: Moderate, Min: Low, MinRelax: Low},
		{Max: Lowest, Min: Lowest, MinRelax: Lowest},
		{Max: High, Min: High, MinRelax: High},
		// malformed on purpose; Normalize must repair it
		{Max: Lowest, Min: Lowest, MinRelax: Low},
	}
	for _, c := range caps {
		n := c.Normalize()
		if n.Min > n.MinRelax || n.MinRelax > n.Max {
			t.Fatalf("Normalize(%+v) = %+v violates min <= relax <= max", c, n)
		}
		for _, l := range levels {
			got := Clamp(l, c)
			if got < n.Min || got > n.Max {
				t.Fatalf("Clamp(%v, %+v) = %v out of [%v, %v]", l, c, got, n.Min, n.Max)
			}
		}
	}
}

func TestEscalateLiteral(t *testing.T) {
	// timings(escalate_to_moderate=2s, escalate_to_high=2s): four half-second
	// visible ticks reach Moderate, four more reach High, one more holds.
	timings := NewTimings(RawTimings{
		EscalateToModerateMS: 2000,
		EscalateToHighMS:     2000,
		DecayFromModerateMS:  4000,
		DecayFromHighMS:      4000,
		IgnoreRangeMS:        1000,
	})
	s := New(Lowest)

	for i := 0; i < 4; i++ {
		s.Update(true, 0.5, timings, combatCap)
	}
	if s.Level() != Moderate {
		t.Fatalf("after 4 ticks expected Moderate, got %v", s.Level())
	}
	for i := 0; i < 4; i++ {
		s.Update(true, 0.5, timings, combatCap)
	}
	if s.Level() != High {
		t.Fatalf("after 8 ticks expected High, got %v", s.Level())
	}
	if _, now, changed := s.Update(true, 0.5, timings, combatCap); changed || now != High {
		t.Fatalf("at cap max expected High unchanged, got %v changed=%v", now, changed)
	}
}

func TestMonotoneEscalation(t *testing.T) {
	s := New(Lowest)
	prev := s.Level()
	reachedAt := -1
	for i := 0; i < 100; i++ {
		s.Update(true, 0.1, DefaultTimings, combatCap)
		if s.Level() < prev {
			t.Fatalf("tick %d: level regressed %v -> %v under continuous visibility", i, prev, s.Level())
		}
		prev = s.Level()
		if s.Level() == High && reachedAt < 0 {
			reachedAt = i
		}
	}
	if reachedAt < 0 {
		t.Fatalf("never reached High under continuous visibility")
	}
	// Both escalation thresholds together are 4s, so 40 ticks at 0.1s.
	if reachedAt >= 40 {
		t.Fatalf("reached High at tick %d, expected under 40", reachedAt)
	}
}

func TestMonotoneDecay(t *testing.T) {
	s := New(Lowest)
	for i := 0; i < 100; i++ {
		s.Update(true, 0.1, DefaultTimings, combatCap)
	}
	if s.Level() != High {
		t.Fatalf("setup: expected High, got %v", s.Level())
	}

	prev := s.Level()
	for i := 0; i < 2000; i++ {
		_, now, _ := s.Update(false, 0.1, DefaultTimings, combatCap)
		if now > prev {
			t.Fatalf("tick %d: level rose %v -> %v while hidden", i, prev, now)
		}
		prev = now
		if now == combatCap.Min {
			return
		}
	}
	t.Fatalf("never decayed to cap minimum, stuck at %v", s.Level())
}

func TestSingleStepPerTick(t *testing.T) {
	cases := []struct {
		name    string
		visible bool
		dt      float32
		start   Level
	}{
		{"huge_dt_visible", true, 1000, Lowest},
		{"huge_dt_hidden", false, 1000, High},
		{"relax_floor", true, 0.01, Lowest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New(c.start)
			if c.start > Lowest {
				// mark as previously visible so decay applies
				s.Update(true, 0.01, DefaultTimings, combatCap)
				s.level = c.start
			}
			old, now, _ := s.Update(c.visible, c.dt, DefaultTimings, combatCap)
			diff := int(now) - int(old)
			if diff < -1 || diff > 1 {
				t.Fatalf("level moved %d steps in one tick (%v -> %v)", diff, old, now)
			}
		})
	}
}

func TestIgnoreRangeHoldsLevel(t *testing.T) {
	s := New(Lowest)
	for i := 0; i < 100; i++ {
		s.Update(true, 0.1, DefaultTimings, combatCap)
	}
	// Inside the 1 s ignore range nothing decays.
	for i := 0; i < 9; i++ {
		if _, _, changed := s.Update(false, 0.1, DefaultTimings, combatCap); changed {
			t.Fatalf("tick %d: level changed inside ignore range", i)
		}
	}
}

func TestVisibilityFlipResetsAccumulator(t *testing.T) {
	timings := NewTimings(RawTimings{
		EscalateToModerateMS: 2000,
		EscalateToHighMS:     2000,
		DecayFromModerateMS:  4000,
		DecayFromHighMS:      4000,
		IgnoreRangeMS:        0,
	})
	s := New(Lowest)
	// Almost escalate, then look away; the partial progress must not carry
	// into the next sighting.
	s.Update(true, 0.5, timings, combatCap)  // bumps to Low via relax floor
	s.Update(true, 1.4, timings, combatCap)  // acc 1.9 < 2.0
	s.Update(false, 0.1, timings, combatCap) // flip resets
	old, now, _ := s.Update(true, 0.2, timings, combatCap)
	if now > old {
		t.Fatalf("escalated %v -> %v from stale accumulator after re-sighting", old, now)
	}
}

func TestDefaultCapNeverEscalates(t *testing.T) {
	s := New(Lowest)
	for i := 0; i < 50; i++ {
		if _, now, changed := s.Update(true, 1, DefaultTimings, DefaultCap); changed || now != Lowest {
			t.Fatalf("default cap escalated to %v", now)
		}
	}
}

func TestSyncEffect(t *testing.T) {
	s := New(Moderate)
	e := SyncEffect(effect.Entity(7), &s)
	sync, ok := e.(effect.SyncAlertness)
	if !ok {
		t.Fatalf("expected SyncAlertness, got %T", e)
	}
	if sync.Entity != 7 || sync.Level != int(Moderate) {
		t.Fatalf("unexpected sync payload %+v", sync)
	}
}
