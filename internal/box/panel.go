package box

import (
	"github.com/Faultbox/boxfold/internal/geometry"
)

// Hinge-only fold rules for flaps: the edge touching the side is creased,
// the other three stay open.
var (
	topFlapFolds    = geometry.FoldRule{Bottom: true}
	bottomFlapFolds = geometry.FoldRule{Top: true}
)

// PanelSet holds the three meshes of one side group.
type PanelSet struct {
	Top        *geometry.Mesh
	Side       *geometry.Mesh
	Bottom     *geometry.Mesh
	Dimensions Dimensions
}

// Mesh returns the mesh for part.
func (s PanelSet) Mesh(part Part) *geometry.Mesh {
	switch part {
	case Top:
		return s.Top
	case Bottom:
		return s.Bottom
	default:
		return s.Side
	}
}

// BuildPanels builds the side wall and both flaps for axis. Flap meshes are
// shifted so their hinge edge sits on the local origin.
func BuildPanels(p Params, axis Axis) (PanelSet, error) {
	if err := p.Validate(); err != nil {
		return PanelSet{}, err
	}
	d := p.Dimensions(axis)

	sideGrid, err := newGrid(axis, "side", d.SideWidth, d.SideHeight)
	if err != nil {
		return PanelSet{}, err
	}
	flapGrid, err := newGrid(axis, "flap", d.FlapWidth, d.FlapHeight)
	if err != nil {
		return PanelSet{}, err
	}

	inner := geometry.InnerLiner(p.Thickness, p.FluteFrequency)
	outer := geometry.OuterLiner(p.Thickness, p.FluteFrequency)
	core := geometry.FluteCore(p.Thickness, p.FluteFrequency)

	side := geometry.ComposePanel(
		geometry.BuildLayer(sideGrid, inner, geometry.AllEdges),
		geometry.BuildLayer(sideGrid, outer, geometry.AllEdges),
	)

	flap := func(folds geometry.FoldRule, shift float64) *geometry.Mesh {
		m := geometry.ComposePanel(
			geometry.BuildLayer(flapGrid, inner, folds),
			geometry.BuildLayer(flapGrid, outer, folds),
			geometry.BuildLayer(flapGrid, core, folds),
		)
		m.Translate(0, float32(shift), 0)
		return m
	}

	return PanelSet{
		Top:        flap(topFlapFolds, 0.5*d.FlapHeight),
		Side:       side,
		Bottom:     flap(bottomFlapFolds, -0.5*d.FlapHeight),
		Dimensions: d,
	}, nil
}

// newGrid reports a resolution failure against the dimension that caused it.
func newGrid(axis Axis, panel string, w, h float64) (geometry.Grid, error) {
	g, err := geometry.NewGrid(w, h)
	if err == nil {
		return g, nil
	}
	name, value := panel+"Width", w
	if geometry.Segments(geometry.WidthDensity, w) >= 1 {
		name, value = panel+"Height", h
	}
	return geometry.Grid{}, &DimensionError{Dimension: axis.String() + "." + name, Value: value, Err: err}
}
