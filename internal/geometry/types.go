// Package geometry builds the deformed vertex buffers that make up one
// corrugated panel: a flat grid per layer, rippled and folded, then merged.
package geometry

import "math"

// Vertex is a panel mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is a merged panel ready for GPU upload. A Mesh is never modified after
// the panel factory hands it to the assembly.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	// Layers is the number of merged layers; each owns an equal, contiguous
	// slice of Vertices.
	Layers int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Finite reports whether every position and normal is free of NaN/Inf.
func (m *Mesh) Finite() bool {
	for i := range m.Vertices {
		if !finite(m.Vertices[i].Position) || !finite(m.Vertices[i].Normal) {
			return false
		}
	}
	return true
}

// Translate moves every vertex by (dx, dy, dz).
func (m *Mesh) Translate(dx, dy, dz float32) {
	for i := range m.Vertices {
		p := &m.Vertices[i].Position
		p[0] += dx
		p[1] += dy
		p[2] += dz
	}
	m.Bounds.Min = [3]float32{m.Bounds.Min[0] + dx, m.Bounds.Min[1] + dy, m.Bounds.Min[2] + dz}
	m.Bounds.Max = [3]float32{m.Bounds.Max[0] + dx, m.Bounds.Max[1] + dy, m.Bounds.Max[2] + dz}
}

func finite(v [3]float32) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
