package geometry

// NewQuad returns a flat w x h rectangle centred on the origin, facing +Z.
// Used for overlays that sit in front of a panel.
func NewQuad(w, h float32) *Mesh {
	hw, hh := w/2, h/2
	normal := [3]float32{0, 0, 1}
	mesh := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-hw, -hh, 0}, Normal: normal},
			{Position: [3]float32{hw, -hh, 0}, Normal: normal},
			{Position: [3]float32{hw, hh, 0}, Normal: normal},
			{Position: [3]float32{-hw, hh, 0}, Normal: normal},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Bounds:  emptyBounds(),
		Layers:  1,
	}
	for _, v := range mesh.Vertices {
		updateBounds(&mesh.Bounds, v.Position)
	}
	return mesh
}
