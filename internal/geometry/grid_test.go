package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestNewGridResolution(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantX, wantY  int
	}{
		{"length side", 80, 45, 400, 9},
		{"width side", 27, 45, 135, 9},
		{"flap", 78, 12.75, 390, 2},
		{"smallest flap", 13, 6.75, 65, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if err != nil {
				t.Fatalf("NewGrid(%g, %g) error: %v", tt.width, tt.height, err)
			}
			if g.SegmentsX != tt.wantX || g.SegmentsY != tt.wantY {
				t.Errorf("segments = %dx%d, want %dx%d", g.SegmentsX, g.SegmentsY, tt.wantX, tt.wantY)
			}
			if g.VertexCount() != (tt.wantX+1)*(tt.wantY+1) {
				t.Errorf("VertexCount = %d, want %d", g.VertexCount(), (tt.wantX+1)*(tt.wantY+1))
			}
		})
	}
}

func TestNewGridTooSmall(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"short", 40, 4},
		{"narrow", 0.1, 40},
		{"zero", 0, 0},
		{"negative", -5, 20},
		{"nan", math.NaN(), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.width, tt.height)
			if !errors.Is(err, ErrResolution) {
				t.Errorf("NewGrid(%g, %g) error = %v, want ErrResolution", tt.width, tt.height, err)
			}
		})
	}
}

func TestGridPointCorners(t *testing.T) {
	g, err := NewGrid(80, 45)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	x, y := g.Point(0, 0)
	if x != -40 || y != 22.5 {
		t.Errorf("Point(0,0) = (%g, %g), want (-40, 22.5)", x, y)
	}
	x, y = g.Point(g.SegmentsX, g.SegmentsY)
	if x != 40 || y != -22.5 {
		t.Errorf("Point(last) = (%g, %g), want (40, -22.5)", x, y)
	}
}

func TestGridIndices(t *testing.T) {
	g := Grid{Width: 2, Height: 2, SegmentsX: 2, SegmentsY: 1}
	indices := g.Indices()

	if len(indices) != 2*1*6 {
		t.Fatalf("len(indices) = %d, want 12", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= g.VertexCount() {
			t.Errorf("index %d out of range %d", idx, g.VertexCount())
		}
	}
}
