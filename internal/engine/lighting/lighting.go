// Package lighting describes the light rig that shades the box panels.
package lighting

import (
	"fmt"

	"github.com/Faultbox/boxfold/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 4

// PointLight is a light position in camera-aligned space.
type PointLight struct {
	Position  [3]float32
	Intensity float32
}

// Rig is an ambient term plus point lights that rotate with the camera, so
// the box is lit the same way from every orbit angle.
type Rig struct {
	Ambient float32
	Lights  []PointLight
}

// Default is a soft ambient fill with a key light from above and a side
// light from the front right.
func Default() Rig {
	return Rig{
		Ambient: 0.5,
		Lights: []PointLight{
			{Position: [3]float32{-30, 300, 0}, Intensity: 0.5},
			{Position: [3]float32{50, 0, 150}, Intensity: 0.7},
		},
	}
}

// Validate checks that the rig fits the shader.
func (r Rig) Validate() error {
	if len(r.Lights) > MaxPointLights {
		return fmt.Errorf("at most %d lights supported, got %d", MaxPointLights, len(r.Lights))
	}
	if r.Ambient < 0 || r.Ambient > 1 {
		return fmt.Errorf("ambient %g must be within [0, 1]", r.Ambient)
	}
	for i, l := range r.Lights {
		if l.Intensity < 0 {
			return fmt.Errorf("light %d: intensity %g must not be negative", i, l.Intensity)
		}
	}
	return nil
}

// Oriented returns the lights moved into world space by the camera rotation.
func (r Rig) Oriented(rotation math.Mat4) []PointLight {
	out := make([]PointLight, len(r.Lights))
	for i, l := range r.Lights {
		out[i] = PointLight{
			Position:  rotation.TransformPoint(l.Position),
			Intensity: l.Intensity,
		}
	}
	return out
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...], padded to MaxPointLights.
func Positions(lights []PointLight) []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range lights {
		if i == MaxPointLights {
			break
		}
		copy(result[i*3:i*3+3], light.Position[:])
	}
	return result
}

// Intensities returns intensities as a flat float32 slice for GPU upload,
// padded to MaxPointLights.
func Intensities(lights []PointLight) []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range lights {
		if i == MaxPointLights {
			break
		}
		result[i] = light.Intensity
	}
	return result
}
