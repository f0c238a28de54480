// Package box assembles corrugated panels into the six-sided fold-out box
// and poses it from a single progress value.
package box

import (
	"errors"
	"fmt"
	"math"
)

// Params are the physical box dimensions in scene units.
type Params struct {
	Width          float64 `yaml:"width" envconfig:"WIDTH"`
	Length         float64 `yaml:"length" envconfig:"LENGTH"`
	Depth          float64 `yaml:"depth" envconfig:"DEPTH"`
	Thickness      float64 `yaml:"thickness" envconfig:"THICKNESS"`
	FluteFrequency float64 `yaml:"flute_frequency" envconfig:"FLUTE_FREQUENCY"`
	FlapGap        float64 `yaml:"flap_gap" envconfig:"FLAP_GAP"`
}

// DefaultParams returns the stock box.
func DefaultParams() Params {
	return Params{
		Width:          27,
		Length:         80,
		Depth:          45,
		Thickness:      0.6,
		FluteFrequency: 5,
		FlapGap:        1,
	}
}

// Half selects one of the two L-shaped halves of the box.
type Half int

const (
	Back Half = iota
	Front
)

func (h Half) String() string {
	if h == Front {
		return "front"
	}
	return "back"
}

// Axis selects which box dimension a side spans.
type Axis int

const (
	Length Axis = iota
	Width
)

func (a Axis) String() string {
	if a == Width {
		return "width"
	}
	return "length"
}

// Part is one panel of a side group.
type Part int

const (
	Top Part = iota
	Side
	Bottom
)

func (p Part) String() string {
	switch p {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "side"
	}
}

// Halves, Axes and Parts list every enum value in table order.
var (
	Halves = [2]Half{Back, Front}
	Axes   = [2]Axis{Length, Width}
	Parts  = [3]Part{Top, Side, Bottom}
)

// Dimensions are the panel sizes derived for one axis.
type Dimensions struct {
	SideWidth  float64
	SideHeight float64
	FlapWidth  float64
	FlapHeight float64
}

// Dimensions derives the side and flap sizes for axis.
func (p Params) Dimensions(axis Axis) Dimensions {
	sideWidth := p.Length
	if axis == Width {
		sideWidth = p.Width
	}
	return Dimensions{
		SideWidth:  sideWidth,
		SideHeight: p.Depth,
		FlapWidth:  sideWidth - 2*p.FlapGap,
		FlapHeight: 0.5*p.Width - 0.75*p.FlapGap,
	}
}

// ErrInvalidDimension is matched by every parameter validation failure.
var ErrInvalidDimension = errors.New("invalid box dimension")

var errNotPositive = errors.New("must be positive and finite")

// DimensionError names the dimension that made a build impossible.
type DimensionError struct {
	Dimension string
	Value     float64
	Err       error
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("box: %s=%g: %v", e.Dimension, e.Value, e.Err)
}

func (e *DimensionError) Unwrap() error {
	return e.Err
}

// Is makes every DimensionError match ErrInvalidDimension.
func (e *DimensionError) Is(target error) bool {
	return target == ErrInvalidDimension
}

// Validate checks the base parameters and the derived flap sizes. Grid
// resolution is checked when panels are built.
func (p Params) Validate() error {
	base := []struct {
		name  string
		value float64
	}{
		{"width", p.Width},
		{"length", p.Length},
		{"depth", p.Depth},
		{"thickness", p.Thickness},
		{"fluteFrequency", p.FluteFrequency},
	}
	for _, b := range base {
		if err := positive(b.name, b.value); err != nil {
			return err
		}
	}
	if p.FlapGap < 0 || !isFinite(p.FlapGap) {
		return &DimensionError{Dimension: "flapGap", Value: p.FlapGap, Err: errors.New("must be non-negative and finite")}
	}

	for _, axis := range Axes {
		d := p.Dimensions(axis)
		if err := positive("flapHeight", d.FlapHeight); err != nil {
			return err
		}
		if err := positive(axis.String()+".flapWidth", d.FlapWidth); err != nil {
			return err
		}
	}
	return nil
}

func positive(name string, v float64) error {
	if v > 0 && isFinite(v) {
		return nil
	}
	return &DimensionError{Dimension: name, Value: v, Err: errNotPositive}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Range is an inclusive designer range with a control step.
type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Clamp returns v limited to the range. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < r.Min:
		return r.Min
	case v > r.Max:
		return r.Max
	}
	return v
}

// Limits bounds the user-adjustable parameters. FlapGap is not adjustable.
type Limits struct {
	Width          Range `yaml:"width"`
	Length         Range `yaml:"length"`
	Depth          Range `yaml:"depth"`
	Thickness      Range `yaml:"thickness"`
	FluteFrequency Range `yaml:"flute_frequency"`
}

// DefaultLimits returns ranges that always yield a buildable box with the
// default flap gap.
func DefaultLimits() Limits {
	return Limits{
		Width:          Range{Min: 15, Max: 70, Step: 1},
		Length:         Range{Min: 70, Max: 120, Step: 1},
		Depth:          Range{Min: 15, Max: 70, Step: 1},
		Thickness:      Range{Min: 0.1, Max: 1, Step: 0.05},
		FluteFrequency: Range{Min: 3, Max: 7, Step: 1},
	}
}

// Clamp limits every adjustable parameter and returns the names of the
// ones that changed.
func (l Limits) Clamp(p Params) (Params, []string) {
	var changed []string
	clamp := func(name string, r Range, v *float64) {
		c := r.Clamp(*v)
		if c != *v {
			changed = append(changed, name)
			*v = c
		}
	}
	clamp("width", l.Width, &p.Width)
	clamp("length", l.Length, &p.Length)
	clamp("depth", l.Depth, &p.Depth)
	clamp("thickness", l.Thickness, &p.Thickness)
	clamp("fluteFrequency", l.FluteFrequency, &p.FluteFrequency)
	return p, changed
}
