// Package animation evaluates declarative tween tables. A Timeline is a
// fixed list of tracks; evaluating it at a time is a pure function with no
// playhead or tween-engine state carried between frames.
package animation

import "math"

// Easing maps normalized time t in [0,1] to an interpolation factor.
// Overshooting curves may leave [0,1] between the endpoints.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return t
}

// Power1InOut is a quadratic ease-in-out.
func Power1InOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	t2 := -2*t + 2
	return 1 - t2*t2/2
}

// BackIn returns an ease-in that first pulls back below 0 before
// accelerating to 1. Larger overshoot pulls back further.
func BackIn(overshoot float64) Easing {
	c3 := overshoot + 1
	return func(t float64) float64 {
		return c3*t*t*t - overshoot*t*t
	}
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
