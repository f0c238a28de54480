package box

import (
	gomath "math"

	"github.com/Faultbox/boxfold/pkg/math"
)

// applyTransforms writes node positions and rotations from a.state and
// a.params. Every value is assigned outright, never accumulated.
func (a *Assembly) applyTransforms() {
	p, s := a.params, a.state
	cos, sin := gomath.Cos(s.Opening), gomath.Sin(s.Opening)

	// Width sides stand at the ends of the length sides and swing about
	// their own vertical axis.
	frontWidth := a.nodes[Front][Width][Side]
	backWidth := a.nodes[Back][Width][Side]
	frontWidth.Position = math.Vec3{X: float32(0.5 * p.Length)}
	backWidth.Position = math.Vec3{X: float32(-0.5 * p.Length)}
	frontWidth.Rotation = math.Vec3{Y: float32(s.Opening)}
	backWidth.Rotation = math.Vec3{Y: float32(s.Opening)}

	// Length sides slide so the box stays centred as it opens.
	a.nodes[Front][Length][Side].Position = math.Vec3{
		X: float32(-0.5 * cos * p.Width),
		Z: float32(0.5 * sin * p.Width),
	}
	a.nodes[Back][Length][Side].Position = math.Vec3{
		X: float32(0.5 * cos * p.Width),
		Z: float32(-0.5 * sin * p.Width),
	}

	for _, h := range Halves {
		// Front flaps fold toward -Z, back flaps toward +Z; both inward.
		sign := 1.0
		if h == Front {
			sign = -1
		}
		for _, ax := range Axes {
			a.nodes[h][ax][Top].Rotation = math.Vec3{X: float32(sign * s.Flap(h, ax, Top))}
			a.nodes[h][ax][Bottom].Rotation = math.Vec3{X: float32(-sign * s.Flap(h, ax, Bottom))}
		}
	}

	a.overlay.place(a.nodes[Front][Length][Side].Position, p)
}
