package pathtest

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/nav"
	"github.com/hexlater/aicore/pathfind"
)

func stripPlanner(t *testing.T, n int, isolateLast bool) *pathfind.Planner {
	t.Helper()
	vertices := make([]mgl32.Vec3, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		vertices = append(vertices,
			mgl32.Vec3{float32(i), 0, 0},
			mgl32.Vec3{float32(i), 0, 1},
		)
	}
	cells := make([]nav.Cell, 0, n)
	for i := 0; i < n; i++ {
		left := int32(2 * i)
		right := int32(2 * (i + 1))
		cells = append(cells, nav.Cell{
			Center:   mgl32.Vec3{float32(i) + 0.5, 0, 0.5},
			Vertices: []int32{left, right, right + 1, left + 1},
		})
	}
	var links []nav.Link
	for i := 0; i < n-1; i++ {
		if isolateLast && i == n-2 {
			break
		}
		links = append(links,
			nav.Link{From: nav.CellID(i), To: nav.CellID(i + 1), Cost: 1, OK: nav.Walk},
			nav.Link{From: nav.CellID(i + 1), To: nav.CellID(i), Cost: 1, OK: nav.Walk},
		)
	}
	return pathfind.New(nav.New(vertices, cells, links))
}

func TestHarnessCycle(t *testing.T) {
	h := NewHarness(stripPlanner(t, 5, false), nav.Walk)
	viz := NewVisualizationStore()

	status := h.HandleAction("cycle", mgl32.Vec3{1, 0, 1}, viz)
	if h.State() != WaitingForGoal {
		t.Fatalf("expected WaitingForGoal, got %v (%s)", h.State(), status)
	}
	if _, ok := viz.Get("test_start"); !ok {
		t.Fatalf("expected a start marker in the store")
	}

	status = h.HandleAction("cycle", mgl32.Vec3{4, 0, 1}, viz)
	if h.State() != ShowingPath {
		t.Fatalf("expected ShowingPath, got %v (%s)", h.State(), status)
	}
	path, ok := viz.Get("test_path")
	if !ok {
		t.Fatalf("expected a published path")
	}
	if len(path.Waypoints) < 2 {
		t.Fatalf("expected at least 2 waypoints, got %d", len(path.Waypoints))
	}
	if _, ok := viz.Get("test_start"); ok {
		t.Fatalf("expected the start marker to be replaced by the path")
	}

	h.HandleAction("cycle", mgl32.Vec3{}, viz)
	if h.State() != WaitingForStart {
		t.Fatalf("expected WaitingForStart after the third cycle")
	}
	if viz.Len() != 0 {
		t.Fatalf("expected an empty store, keys %v", viz.Names())
	}
}

func TestHarnessMarkers(t *testing.T) {
	h := NewHarness(stripPlanner(t, 5, false), nav.Walk)
	viz := NewVisualizationStore()

	h.HandleAction("cycle", mgl32.Vec3{0.5, 0, 0.5}, viz)
	h.HandleAction("cycle", mgl32.Vec3{4.5, 0, 0.5}, viz)

	path, _ := viz.Get("test_path")
	var starts, goals, waypoints int
	for _, m := range path.Markers {
		switch m.Kind {
		case MarkerStart:
			starts++
		case MarkerGoal:
			goals++
		case MarkerWaypoint:
			waypoints++
		}
	}
	if starts != 1 || goals != 1 {
		t.Fatalf("expected exactly one start and one goal marker, got %d/%d", starts, goals)
	}
	if waypoints != len(path.Waypoints) {
		t.Fatalf("expected one marker per waypoint, got %d for %d", waypoints, len(path.Waypoints))
	}
}

func TestHarnessClosestReachableFallback(t *testing.T) {
	// The goal cell is disconnected; the probe should route to the closest
	// reachable cell instead of giving up.
	h := NewHarness(stripPlanner(t, 5, true), nav.Walk)
	viz := NewVisualizationStore()

	h.HandleAction("cycle", mgl32.Vec3{0.5, 0, 0.5}, viz)
	status := h.HandleAction("cycle", mgl32.Vec3{4.5, 0, 0.5}, viz)
	if h.State() != ShowingPath {
		t.Fatalf("expected a fallback path, got %v (%s)", h.State(), status)
	}
	if !strings.Contains(status, "closest reachable") {
		t.Fatalf("expected the status to mention the fallback, got %q", status)
	}
	path, _ := viz.Get("test_path")
	last := path.Waypoints[len(path.Waypoints)-1]
	if last.X() > 4 {
		t.Fatalf("fallback path must stop short of the isolated cell, ends at %v", last)
	}
}

func TestHarnessNoPathPossible(t *testing.T) {
	h := NewHarness(stripPlanner(t, 5, false), nav.Walk)
	viz := NewVisualizationStore()

	// A start recorded off the mesh cannot seed any search.
	h.HandleAction("cycle", mgl32.Vec3{100, 0, 100}, viz)
	status := h.HandleAction("cycle", mgl32.Vec3{0.5, 0, 0.5}, viz)
	if !strings.Contains(status, "no path possible") {
		t.Fatalf("expected a no-path status, got %q", status)
	}
	if h.State() != WaitingForGoal {
		t.Fatalf("a failed goal must not advance the state, got %v", h.State())
	}
}

func TestHarnessSetGoalNeedsStart(t *testing.T) {
	h := NewHarness(stripPlanner(t, 5, false), nav.Walk)
	viz := NewVisualizationStore()

	status := h.HandleAction("set_goal", mgl32.Vec3{1, 0, 1}, viz)
	if h.State() != WaitingForStart {
		t.Fatalf("misuse must not mutate state, got %v", h.State())
	}
	if !strings.Contains(status, "start") {
		t.Fatalf("expected a guidance message, got %q", status)
	}
	if viz.Len() != 0 {
		t.Fatalf("misuse must not touch the store")
	}
}

func TestHarnessIdempotentReset(t *testing.T) {
	h := NewHarness(stripPlanner(t, 5, false), nav.Walk)
	viz := NewVisualizationStore()

	h.HandleAction("cycle", mgl32.Vec3{0.5, 0, 0.5}, viz)
	h.HandleAction("reset", mgl32.Vec3{}, viz)
	h.HandleAction("reset", mgl32.Vec3{}, viz)
	if viz.Len() != 0 {
		t.Fatalf("expected an empty store after reset")
	}
	if h.State() != WaitingForStart {
		t.Fatalf("expected WaitingForStart after reset")
	}
}

func TestHarnessWithoutPlanner(t *testing.T) {
	h := NewHarness(nil, nav.Walk)
	viz := NewVisualizationStore()

	status := h.HandleAction("cycle", mgl32.Vec3{1, 0, 1}, viz)
	if !strings.Contains(status, "no pathfinding service") {
		t.Fatalf("expected a diagnostic, got %q", status)
	}
	if h.State() != WaitingForStart {
		t.Fatalf("expected no state change without a planner")
	}
	if h.HandleAction("reset", mgl32.Vec3{}, viz) == "" {
		t.Fatalf("reset must still answer without a planner")
	}
}

func TestHarnessUnknownAction(t *testing.T) {
	h := NewHarness(stripPlanner(t, 5, false), nav.Walk)
	status := h.HandleAction("moonwalk", mgl32.Vec3{}, NewVisualizationStore())
	if !strings.Contains(status, "unknown action") {
		t.Fatalf("expected an unknown-action status, got %q", status)
	}
}
