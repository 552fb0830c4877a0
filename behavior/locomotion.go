package behavior

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/nav"
	"github.com/hexlater/aicore/pathfind"
)

// Locomotion follows cell-center waypoint paths toward a moving goal. It
// repaths when the goal drifts to a different cell or the current path runs
// out, and falls back to the closest reachable cell when the goal itself is
// unreachable.
type Locomotion struct {
	planner  *pathfind.Planner
	bits     nav.MoveBits
	speed    float32
	arrive   float32
	path     []mgl32.Vec3
	index    int
	goalCell nav.CellID
}

// NewLocomotion builds a follower over the given planner.
func NewLocomotion(planner *pathfind.Planner, bits nav.MoveBits, speed, arriveRadius float32) *Locomotion {
	if speed <= 0 {
		speed = defaultMoveSpeed
	}
	if arriveRadius <= 0 {
		arriveRadius = defaultArriveRadius
	}
	return &Locomotion{
		planner:  planner,
		bits:     bits,
		speed:    speed,
		arrive:   arriveRadius,
		goalCell: nav.NoCell,
	}
}

// Path exposes the waypoints currently being followed.
func (l *Locomotion) Path() []mgl32.Vec3 {
	return l.path
}

// Reset drops the current path so the next Advance replans.
func (l *Locomotion) Reset() {
	l.path = nil
	l.index = 0
	l.goalCell = nav.NoCell
}

// Advance returns the velocity toward the next waypoint, replanning as
// needed. ok is false when no route toward the goal exists at all.
func (l *Locomotion) Advance(pos, goal mgl32.Vec3) (mgl32.Vec3, bool) {
	if l.planner == nil {
		return mgl32.Vec3{}, false
	}

	goalCell := l.planner.Graph().CellFromPosition(goal)
	if l.path == nil || l.index >= len(l.path) || (goalCell != nav.NoCell && goalCell != l.goalCell) {
		if !l.replan(pos, goal, goalCell) {
			return mgl32.Vec3{}, false
		}
	}

	for l.index < len(l.path) {
		to := l.path[l.index].Sub(pos)
		to[1] = 0
		if to.Len() > l.arrive {
			return to.Normalize().Mul(l.speed), true
		}
		l.index++
	}

	// Path exhausted: close the final gap straight toward the goal.
	to := goal.Sub(pos)
	to[1] = 0
	if to.Len() > l.arrive {
		return to.Normalize().Mul(l.speed), true
	}
	return mgl32.Vec3{}, true
}

func (l *Locomotion) replan(pos, goal mgl32.Vec3, goalCell nav.CellID) bool {
	path := l.planner.FindPath(pos, goal, l.bits)
	if path == nil {
		fallback, ok := l.planner.FindClosestReachableCell(pos, goal, l.bits)
		if !ok {
			l.Reset()
			return false
		}
		center, ok := l.planner.Graph().Center(fallback)
		if !ok {
			l.Reset()
			return false
		}
		path = l.planner.FindPath(pos, center, l.bits)
		if path == nil {
			l.Reset()
			return false
		}
	}
	l.path = path
	l.index = 0
	l.goalCell = goalCell
	return true
}
