package geometry

import "math"

// foldExponent controls how sharply a folded edge tapers. Damping stays near
// 1 across most of the panel and drops to 0 at the edge.
const foldExponent = 10

// minHalfExtent guards the damping term against division by zero.
const minHalfExtent = 1e-9

// FoldRule marks which panel edges are creases. A folded edge pulls the
// layer's z offset to zero so liners meet; an open edge keeps full height.
type FoldRule struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// AllEdges folds every edge; used by side walls.
var AllEdges = FoldRule{Top: true, Right: true, Bottom: true, Left: true}

// FoldFactor returns the damping multiplier for coordinate c on an axis of
// length size: 1 at the centre, 0 at either end.
func FoldFactor(c, size float64) float64 {
	half := 0.5 * size
	if half < minHalfExtent {
		return 1
	}
	return 1 - math.Pow(c/half, foldExponent)
}

// Damp applies the rule to a z offset at panel-local (x, y) on a w x h panel.
// Each axis is damped independently, only toward the edge on the same side.
func (r FoldRule) Damp(x, y, z, w, h float64) float64 {
	if (x > 0 && r.Right) || (x < 0 && r.Left) {
		z *= FoldFactor(x, w)
	}
	if (y > 0 && r.Top) || (y < 0 && r.Bottom) {
		z *= FoldFactor(y, h)
	}
	return z
}
