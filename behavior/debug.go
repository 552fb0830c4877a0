package behavior

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hexlater/aicore/alert"
	"github.com/hexlater/aicore/effect"
)

var alertBarColors = [...]effect.Color{
	alert.Lowest:   {R: 0.2, G: 0.8, B: 0.2, A: 1},
	alert.Low:      {R: 0.8, G: 0.8, B: 0.2, A: 1},
	alert.Moderate: {R: 0.9, G: 0.5, B: 0.1, A: 1},
	alert.High:     {R: 0.9, G: 0.1, B: 0.1, A: 1},
}

// alertBarLines builds the vertical debug bar above an entity. Height and
// color encode the current alert level.
func alertBarLines(pos mgl32.Vec3, level alert.Level) []effect.Line {
	height := 0.25 * float32(level+1)
	base := pos.Add(mgl32.Vec3{0, 2.0, 0})
	return []effect.Line{{
		From:  base,
		To:    base.Add(mgl32.Vec3{0, height, 0}),
		Color: alertBarColors[alert.Clamp(level, alert.Cap{Max: alert.High, Min: alert.Lowest, MinRelax: alert.Lowest})],
	}}
}

// fovConeLines builds three debug lines: the forward ray plus the two cone
// edges. The forward color encodes current visibility.
func fovConeLines(pos mgl32.Vec3, heading, fovHalfAngleDeg, length float32, visible bool) []effect.Line {
	forwardColor := effect.Color{R: 0.9, G: 0.1, B: 0.1, A: 1}
	if visible {
		forwardColor = effect.Color{R: 0.1, G: 0.9, B: 0.1, A: 1}
	}
	edgeColor := effect.Color{R: 0.7, G: 0.7, B: 0.7, A: 1}

	half := mgl32.DegToRad(fovHalfAngleDeg)
	origin := pos.Add(mgl32.Vec3{0, 1.0, 0})
	return []effect.Line{
		{From: origin, To: origin.Add(headingForward(heading).Mul(length)), Color: forwardColor},
		{From: origin, To: origin.Add(headingForward(heading + half).Mul(length)), Color: edgeColor},
		{From: origin, To: origin.Add(headingForward(heading - half).Mul(length)), Color: edgeColor},
	}
}

// debugEffect assembles the standard per-archetype debug output.
func debugEffect(pos mgl32.Vec3, heading, fovHalfAngleDeg float32, level alert.Level, visible bool) effect.Effect {
	lines := alertBarLines(pos, level)
	lines = append(lines, fovConeLines(pos, heading, fovHalfAngleDeg, 3.0, visible)...)
	return effect.DrawDebugLines{Lines: lines}
}
