// Package camera provides the orbit camera used to present the box.
package camera

import (
	gomath "math"

	"github.com/Faultbox/boxfold/pkg/math"
)

// Zoom steps and limits for the manual zoom controls.
const (
	ZoomInFactor  = 1.3
	ZoomOutFactor = 0.75
	MinZoom       = 0.4
	MaxZoom       = 2.0
)

// zoomDuration is how long the displayed zoom takes to reach a new level.
const zoomDuration = 0.2

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinPitch float32
	MaxPitch float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32

	// AutoRotateSpeed is in turns per minute; 0 disables auto-rotation.
	AutoRotateSpeed float32

	// Sensitivity
	DragSensitivity float32

	zoom       float32 // displayed zoom
	zoomTarget float32
	zoomFrom   float32
	zoomT      float32
}

// NewOrbitCamera creates a camera at the given eye position looking at the
// origin.
func NewOrbitCamera(eye math.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		FovY:            float32(45 * gomath.Pi / 180),
		Near:            10,
		Far:             1000,
		DragSensitivity: 0.005,
		zoom:            1,
		zoomTarget:      1,
		zoomFrom:        1,
		zoomT:           1,
	}
	c.SetEye(eye)
	return c
}

// SetEye places the camera at eye, keeping the current center.
func (c *OrbitCamera) SetEye(eye math.Vec3) {
	d := eye.Sub(c.Center)
	c.Distance = d.Length()
	if c.Distance == 0 {
		return
	}
	c.RotationX = float32(gomath.Asin(float64(d.Y / c.Distance)))
	c.RotationY = float32(gomath.Atan2(float64(d.X), float64(d.Z)))
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for aspect. Zooming
// narrows the field of view rather than moving the camera.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	half := gomath.Atan(gomath.Tan(float64(c.FovY)/2) / float64(c.zoom))
	return math.Perspective(float32(2*half), aspect, c.Near, c.Far)
}

// Update advances auto-rotation and the zoom transition by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.AutoRotateSpeed != 0 {
		c.RotationY += 2 * gomath.Pi / 60 * c.AutoRotateSpeed * dt
	}
	if c.zoomT < 1 {
		c.zoomT += dt / zoomDuration
		if c.zoomT > 1 {
			c.zoomT = 1
		}
		c.zoom = c.zoomFrom + (c.zoomTarget-c.zoomFrom)*c.zoomT
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// ZoomIn multiplies the zoom level by ZoomInFactor. It returns false once
// the level sits at MaxZoom.
func (c *OrbitCamera) ZoomIn() bool {
	return c.setZoom(c.zoomTarget * ZoomInFactor)
}

// ZoomOut multiplies the zoom level by ZoomOutFactor. It returns false once
// the level sits at MinZoom.
func (c *OrbitCamera) ZoomOut() bool {
	return c.setZoom(c.zoomTarget * ZoomOutFactor)
}

func (c *OrbitCamera) setZoom(level float32) bool {
	inRange := true
	if level > MaxZoom {
		level, inRange = MaxZoom, false
	} else if level < MinZoom {
		level, inRange = MinZoom, false
	}
	c.zoomFrom = c.zoom
	c.zoomTarget = level
	c.zoomT = 0
	return inRange
}

// ZoomLevel returns the requested zoom level.
func (c *OrbitCamera) ZoomLevel() float32 {
	return c.zoomTarget
}

// Zoom returns the zoom currently applied to the projection.
func (c *OrbitCamera) Zoom() float32 {
	return c.zoom
}

// Orientation returns the camera's world rotation as a matrix, used to carry
// lights along with the view.
func (c *OrbitCamera) Orientation() math.Mat4 {
	view := c.ViewMatrix()
	view[12], view[13], view[14] = 0, 0, 0
	return view.Inverse()
}
