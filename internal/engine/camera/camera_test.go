package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/boxfold/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestSetEyeRoundTrip(t *testing.T) {
	eye := math.Vec3{X: 40, Y: 90, Z: 110}
	c := NewOrbitCamera(eye)

	got := c.Position()
	if !approx(got.X, eye.X) || !approx(got.Y, eye.Y) || !approx(got.Z, eye.Z) {
		t.Errorf("Position() = %v, want %v", got, eye)
	}
}

func TestZoomLimits(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{Z: 100})

	// 1.3^2 = 1.69, 1.3^3 = 2.197 which clamps.
	for i, want := range []bool{true, true, false, false} {
		if got := c.ZoomIn(); got != want {
			t.Errorf("ZoomIn #%d = %v, want %v", i+1, got, want)
		}
	}
	if c.ZoomLevel() != MaxZoom {
		t.Errorf("ZoomLevel = %g, want %g", c.ZoomLevel(), float32(MaxZoom))
	}

	for c.ZoomOut() {
	}
	if c.ZoomLevel() != MinZoom {
		t.Errorf("ZoomLevel = %g, want %g", c.ZoomLevel(), float32(MinZoom))
	}
}

func TestZoomTransition(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{Z: 100})
	c.ZoomIn()

	if c.Zoom() != 1 {
		t.Errorf("Zoom before update = %g, want 1", c.Zoom())
	}
	c.Update(0.1)
	if !approx(c.Zoom(), 1.15) {
		t.Errorf("Zoom halfway = %g, want 1.15", c.Zoom())
	}
	c.Update(1)
	if !approx(c.Zoom(), 1.3) {
		t.Errorf("Zoom after transition = %g, want 1.3", c.Zoom())
	}
}

func TestZoomNarrowsProjection(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{Z: 100})
	wide := c.ProjectionMatrix(1)
	c.ZoomIn()
	c.Update(1)
	narrow := c.ProjectionMatrix(1)

	// m[5] is cot(fov/2): larger means a narrower view.
	if !approx(narrow[5], wide[5]*1.3) {
		t.Errorf("zoomed m[5] = %g, want %g", narrow[5], wide[5]*1.3)
	}
}

func TestAutoRotate(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{Z: 100})
	c.AutoRotateSpeed = 0.25

	start := c.RotationY
	c.Update(60)
	// 0.25 turns per minute.
	if !approx(c.RotationY-start, gomath.Pi/2) {
		t.Errorf("rotated %g rad in a minute, want pi/2", c.RotationY-start)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{Z: 100})
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %g, want %g", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %g, want %g", c.RotationX, c.MinPitch)
	}
}
