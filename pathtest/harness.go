package pathtest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/effect"
	"github.com/hexlater/aicore/nav"
	"github.com/hexlater/aicore/pathfind"
)

// HarnessState is the probe's position in its cycle.
type HarnessState int

const (
	WaitingForStart HarnessState = iota
	WaitingForGoal
	ShowingPath
)

func (s HarnessState) String() string {
	switch s {
	case WaitingForStart:
		return "waiting_for_start"
	case WaitingForGoal:
		return "waiting_for_goal"
	case ShowingPath:
		return "showing_path"
	default:
		return "unknown"
	}
}

// Visualization keys the harness owns.
const (
	startKey = "test_start"
	pathKey  = "test_path"
)

var (
	startColor = effect.Color{R: 0.2, G: 0.9, B: 0.2, A: 1}
	goalColor  = effect.Color{R: 0.9, G: 0.2, B: 0.2, A: 1}
	pathColor  = effect.Color{R: 0.2, G: 0.6, B: 0.9, A: 1}
)

// Harness drives path probing from a debug keybind: first press records the
// start, second runs the planner to the player's new position, third clears.
type Harness struct {
	planner *pathfind.Planner
	bits    nav.MoveBits
	state   HarnessState
	start   mgl32.Vec3
}

// NewHarness builds a probe over the given planner. planner may be nil; the
// harness then answers every action with a diagnostic.
func NewHarness(planner *pathfind.Planner, bits nav.MoveBits) *Harness {
	if bits == 0 {
		bits = nav.Walk
	}
	return &Harness{planner: planner, bits: bits}
}

// State reports the probe's cycle position.
func (h *Harness) State() HarnessState {
	return h.state
}

// HandleAction runs one probe action at the player's position and returns a
// status line. Unknown actions are reported, never fatal.
func (h *Harness) HandleAction(action string, playerPos mgl32.Vec3, viz *VisualizationStore) string {
	if action == "reset" {
		return h.reset(viz)
	}
	if h.planner == nil {
		return "path test: no pathfinding service attached"
	}

	switch action {
	case "cycle":
		switch h.state {
		case WaitingForStart:
			return h.setStart(playerPos, viz)
		case WaitingForGoal:
			return h.setGoal(playerPos, viz)
		default:
			return h.reset(viz)
		}
	case "set_start":
		return h.setStart(playerPos, viz)
	case "set_goal":
		if h.state != WaitingForGoal {
			return "path test: set a start point first"
		}
		return h.setGoal(playerPos, viz)
	default:
		return fmt.Sprintf("path test: unknown action %q", action)
	}
}

func (h *Harness) setStart(pos mgl32.Vec3, viz *VisualizationStore) string {
	h.start = pos
	h.state = WaitingForGoal
	if viz != nil {
		viz.Set(ComputedPath{
			Name:    startKey,
			Color:   startColor,
			Markers: []Marker{{Position: pos, Kind: MarkerStart, Color: startColor}},
		})
	}
	return fmt.Sprintf("path test: start (%.1f, %.1f, %.1f); move to the goal and trigger again",
		pos.X(), pos.Y(), pos.Z())
}

func (h *Harness) setGoal(goal mgl32.Vec3, viz *VisualizationStore) string {
	waypoints := h.planner.FindPath(h.start, goal, h.bits)
	note := ""
	if waypoints == nil {
		cell, ok := h.planner.FindClosestReachableCell(h.start, goal, h.bits)
		if !ok {
			return "path test: no path possible"
		}
		center, ok := h.planner.Graph().Center(cell)
		if !ok {
			return "path test: no path possible"
		}
		waypoints = h.planner.FindPath(h.start, center, h.bits)
		if waypoints == nil {
			return "path test: no path possible"
		}
		note = fmt.Sprintf(" (closest reachable cell %d)", cell)
	}

	// A degenerate answer still gets a drawable 3-point line.
	if len(waypoints) == 0 {
		mid := h.start.Add(goal).Mul(0.5)
		waypoints = []mgl32.Vec3{h.start, mid, goal}
	}

	if viz != nil {
		markers := make([]Marker, 0, len(waypoints)+2)
		markers = append(markers, Marker{Position: h.start, Kind: MarkerStart, Color: startColor})
		for _, wp := range waypoints {
			markers = append(markers, Marker{Position: wp, Kind: MarkerWaypoint, Color: pathColor})
		}
		markers = append(markers, Marker{Position: goal, Kind: MarkerGoal, Color: goalColor})

		viz.Remove(startKey)
		viz.Set(ComputedPath{
			Name:      pathKey,
			Waypoints: waypoints,
			Color:     pathColor,
			Markers:   markers,
		})
	}
	h.state = ShowingPath
	return fmt.Sprintf("path test: %d waypoints%s", len(waypoints), note)
}

func (h *Harness) reset(viz *VisualizationStore) string {
	if viz != nil {
		viz.Remove(startKey)
		viz.Remove(pathKey)
	}
	h.state = WaitingForStart
	h.start = mgl32.Vec3{}
	return "path test: cleared"
}
