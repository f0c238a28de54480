package geometry

import (
	"math"
	"testing"
)

func flatLayer(g Grid, z float64) Layer {
	return BuildLayer(g, func(float64) float64 { return z }, FoldRule{})
}

func TestMergeConcatenatesLayers(t *testing.T) {
	g := Grid{Width: 4, Height: 2, SegmentsX: 4, SegmentsY: 2}
	a := flatLayer(g, -0.5)
	b := flatLayer(g, 0.5)

	mesh := Merge(a, b)

	if mesh.VertexCount() != 2*g.VertexCount() {
		t.Errorf("VertexCount = %d, want %d", mesh.VertexCount(), 2*g.VertexCount())
	}
	if mesh.TriangleCount() != 2*len(a.Indices)/3 {
		t.Errorf("TriangleCount = %d, want %d", mesh.TriangleCount(), 2*len(a.Indices)/3)
	}
	if mesh.Layers != 2 {
		t.Errorf("Layers = %d, want 2", mesh.Layers)
	}

	// Second layer's indices are offset past the first layer's vertices.
	second := mesh.Indices[len(a.Indices):]
	for _, idx := range second {
		if int(idx) < g.VertexCount() {
			t.Fatalf("second layer index %d points into first layer", idx)
		}
	}

	if mesh.Bounds.Min[2] != -0.5 || mesh.Bounds.Max[2] != 0.5 {
		t.Errorf("Bounds z = [%g, %g], want [-0.5, 0.5]", mesh.Bounds.Min[2], mesh.Bounds.Max[2])
	}
}

func TestMergeNormalsFaceOutward(t *testing.T) {
	g := Grid{Width: 4, Height: 2, SegmentsX: 4, SegmentsY: 2}
	mesh := Merge(flatLayer(g, 0), flatLayer(g, 0.1))

	for i, v := range mesh.Vertices {
		n := v.Normal
		if math.Abs(float64(n[2])-1) > 1e-5 || math.Abs(float64(n[0])) > 1e-5 || math.Abs(float64(n[1])) > 1e-5 {
			t.Fatalf("vertex %d normal = %v, want (0, 0, 1)", i, n)
		}
	}
}

func TestMergeTopologyMismatchPanics(t *testing.T) {
	a := flatLayer(Grid{Width: 4, Height: 2, SegmentsX: 4, SegmentsY: 2}, 0)
	b := flatLayer(Grid{Width: 4, Height: 2, SegmentsX: 2, SegmentsY: 2}, 0)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched layers")
		}
	}()
	Merge(a, b)
}

func TestComposePanelLayerCount(t *testing.T) {
	g := Grid{Width: 4, Height: 2, SegmentsX: 4, SegmentsY: 2}
	l := flatLayer(g, 0)

	for _, n := range []int{1, 4} {
		layers := make([]Layer, n)
		for i := range layers {
			layers[i] = l
		}
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ComposePanel with %d layers: expected panic", n)
				}
			}()
			ComposePanel(layers...)
		}()
	}

	if mesh := ComposePanel(l, l, l); mesh.Layers != 3 {
		t.Errorf("ComposePanel(3 layers).Layers = %d, want 3", mesh.Layers)
	}
}

func TestMeshTranslate(t *testing.T) {
	g := Grid{Width: 4, Height: 2, SegmentsX: 4, SegmentsY: 2}
	mesh := Merge(flatLayer(g, 0))
	mesh.Translate(0, 1, 0)

	if mesh.Bounds.Min[1] != 0 || mesh.Bounds.Max[1] != 2 {
		t.Errorf("Bounds y = [%g, %g], want [0, 2]", mesh.Bounds.Min[1], mesh.Bounds.Max[1])
	}
	if !mesh.Finite() {
		t.Error("translated mesh reports non-finite values")
	}
}
