package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Sampling density of a panel grid, in segments per unit of physical size.
// Panels are dense across their width where the flute ripple lives and
// sparse along their height where the surface is straight.
const (
	WidthDensity  = 5.0
	HeightDensity = 0.2
)

// ErrResolution is returned when a panel is too small to hold one segment.
var ErrResolution = errors.New("grid resolution below 1")

// Grid is a flat rectangle of Width x Height centred on the origin in the XY
// plane, facing +Z, split into SegmentsX x SegmentsY quads.
type Grid struct {
	Width     float64
	Height    float64
	SegmentsX int
	SegmentsY int
}

// NewGrid creates a grid whose resolution follows the panel's physical size.
func NewGrid(width, height float64) (Grid, error) {
	g := Grid{
		Width:     width,
		Height:    height,
		SegmentsX: Segments(WidthDensity, width),
		SegmentsY: Segments(HeightDensity, height),
	}
	if g.SegmentsX < 1 || g.SegmentsY < 1 {
		return Grid{}, fmt.Errorf("%w: %gx%g gives %dx%d segments",
			ErrResolution, width, height, g.SegmentsX, g.SegmentsY)
	}
	return g, nil
}

// Segments returns the segment count for size at density; 0 for NaN or
// non-positive sizes.
func Segments(density, size float64) int {
	if math.IsNaN(size) || size <= 0 {
		return 0
	}
	return int(math.Floor(density * size))
}

// Columns returns the number of vertices per row.
func (g Grid) Columns() int {
	return g.SegmentsX + 1
}

// Rows returns the number of vertex rows.
func (g Grid) Rows() int {
	return g.SegmentsY + 1
}

// VertexCount returns the number of grid samples.
func (g Grid) VertexCount() int {
	return g.Columns() * g.Rows()
}

// Point returns the flat position of sample (ix, iy). Row 0 is the top edge
// (y = +Height/2), column 0 the left edge (x = -Width/2).
func (g Grid) Point(ix, iy int) (x, y float64) {
	x = float64(ix)*g.Width/float64(g.SegmentsX) - 0.5*g.Width
	y = 0.5*g.Height - float64(iy)*g.Height/float64(g.SegmentsY)
	return x, y
}

// Indices returns the triangle list for the grid, two counter-clockwise
// triangles per quad when seen from +Z.
func (g Grid) Indices() []uint32 {
	cols := uint32(g.Columns())
	indices := make([]uint32, 0, g.SegmentsX*g.SegmentsY*6)
	for iy := uint32(0); iy < uint32(g.SegmentsY); iy++ {
		for ix := uint32(0); ix < uint32(g.SegmentsX); ix++ {
			a := ix + cols*iy
			b := ix + cols*(iy+1)
			c := (ix + 1) + cols*(iy+1)
			d := (ix + 1) + cols*iy
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return indices
}
