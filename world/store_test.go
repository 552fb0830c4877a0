package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	e := s.Spawn(mgl32.Vec3{1, 2, 3})
	player := s.Spawn(mgl32.Vec3{0, 0, 0})
	s.SetPlayer(player)

	pos, _, ok := s.PositionOf(e)
	if !ok || pos != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("unexpected position %v ok=%v", pos, ok)
	}
	if s.PlayerEntity() != player {
		t.Fatalf("expected player %v, got %v", player, s.PlayerEntity())
	}

	s.Despawn(player)
	if s.PlayerEntity() != 0 {
		t.Fatalf("despawning the player should clear the player id")
	}
	if _, _, ok := s.PositionOf(player); ok {
		t.Fatalf("despawned entity still resolvable")
	}
}

func TestStoreProperties(t *testing.T) {
	s := NewStore()
	e := s.Spawn(mgl32.Vec3{})

	if _, ok := s.AlertCap(e); ok {
		t.Fatalf("fresh entity should have no cap")
	}
	cap, timings := CapAndTimingsFor(s, e)
	if cap != alert.DefaultCap {
		t.Fatalf("expected default cap, got %+v", cap)
	}
	if timings != alert.DefaultTimings {
		t.Fatalf("expected default timings, got %+v", timings)
	}

	want := alert.Cap{Max: alert.High, Min: alert.Lowest, MinRelax: alert.Low}
	s.SetAlertCap(e, want)
	s.SetClassTag(e, "turret")
	if got, ok := s.AlertCap(e); !ok || got != want {
		t.Fatalf("expected cap %+v, got %+v ok=%v", want, got, ok)
	}
	if class, ok := s.ClassTag(e); !ok || class != "turret" {
		t.Fatalf("expected class turret, got %q ok=%v", class, ok)
	}
}
