package geometry

import "math"

// linerRipple is the flute imprint visible through a liner.
const linerRipple = 0.01

// OffsetFunc maps a panel-local x to the layer's z offset before folding.
type OffsetFunc func(x float64) float64

// InnerLiner is the inside face: half a thickness back plus a faint ripple.
func InnerLiner(thickness, fluteFrequency float64) OffsetFunc {
	return func(x float64) float64 {
		return -0.5*thickness + linerRipple*math.Sin(fluteFrequency*x)
	}
}

// OuterLiner is the outside face: half a thickness forward plus a faint ripple.
func OuterLiner(thickness, fluteFrequency float64) OffsetFunc {
	return func(x float64) float64 {
		return 0.5*thickness + linerRipple*math.Sin(fluteFrequency*x)
	}
}

// FluteCore is the corrugated medium between the liners.
func FluteCore(thickness, fluteFrequency float64) OffsetFunc {
	return func(x float64) float64 {
		return 0.5 * thickness * math.Sin(fluteFrequency*x)
	}
}

// Layer is one deformed copy of a grid. Every layer built from the same Grid
// shares its vertex order and index list.
type Layer struct {
	Positions [][3]float32
	Indices   []uint32
}

// BuildLayer samples g, offsets each vertex along z and applies the fold rule.
func BuildLayer(g Grid, offset OffsetFunc, folds FoldRule) Layer {
	positions := make([][3]float32, 0, g.VertexCount())
	for iy := 0; iy < g.Rows(); iy++ {
		for ix := 0; ix < g.Columns(); ix++ {
			x, y := g.Point(ix, iy)
			z := folds.Damp(x, y, offset(x), g.Width, g.Height)
			positions = append(positions, [3]float32{float32(x), float32(y), float32(z)})
		}
	}
	return Layer{
		Positions: positions,
		Indices:   g.Indices(),
	}
}
