package geometry

import (
	"fmt"
	"math"
)

// ComposePanel merges two liners and an optional flute core into one mesh.
// Layers are concatenated without welding, so the gap between liner and
// flute stays visible at open edges. Mismatched topology means the layers
// were not built from the same grid, which is a bug in the caller.
func ComposePanel(layers ...Layer) *Mesh {
	if len(layers) < 2 || len(layers) > 3 {
		panic(fmt.Sprintf("geometry: panel needs 2 or 3 layers, got %d", len(layers)))
	}
	return Merge(layers...)
}

// Merge concatenates layers sharing one topology and recomputes normals over
// the combined triangle set.
func Merge(layers ...Layer) *Mesh {
	if len(layers) == 0 {
		panic("geometry: merge of zero layers")
	}

	first := layers[0]
	for i, l := range layers[1:] {
		if len(l.Positions) != len(first.Positions) || len(l.Indices) != len(first.Indices) {
			panic(fmt.Sprintf("geometry: layer %d topology %d/%d does not match layer 0 %d/%d",
				i+1, len(l.Positions), len(l.Indices), len(first.Positions), len(first.Indices)))
		}
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, len(first.Positions)*len(layers)),
		Indices:  make([]uint32, 0, len(first.Indices)*len(layers)),
		Bounds:   emptyBounds(),
		Layers:   len(layers),
	}

	for _, l := range layers {
		base := uint32(len(mesh.Vertices))
		for _, p := range l.Positions {
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: p})
			updateBounds(&mesh.Bounds, p)
		}
		for _, idx := range l.Indices {
			mesh.Indices = append(mesh.Indices, base+idx)
		}
	}

	ComputeNormals(mesh.Vertices, mesh.Indices)
	return mesh
}

// ComputeNormals sets smooth per-vertex normals: unnormalised face normals
// (weighted by triangle area) are summed at each corner, then normalised.
func ComputeNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = [3]float32{}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := vertices[i0].Position
		p1 := vertices[i1].Position
		p2 := vertices[i2].Position

		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := cross(e1, e2)

		for _, idx := range [3]uint32{i0, i1, i2} {
			vertices[idx].Normal[0] += n[0]
			vertices[idx].Normal[1] += n[1]
			vertices[idx].Normal[2] += n[2]
		}
	}

	for i := range vertices {
		vertices[i].Normal = normalize(vertices[i].Normal)
	}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if l == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(float64(l)))
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}
