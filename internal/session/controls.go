package session

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/boxfold/internal/animation"
	"github.com/Faultbox/boxfold/internal/box"
)

// Param is a user-adjustable box parameter.
type Param int

const (
	ParamWidth Param = iota
	ParamLength
	ParamDepth
	ParamThickness
	ParamFlute
)

var paramNames = [...]string{"width", "length", "depth", "thickness", "flute"}

// Adjustable lists every parameter in panel order.
var Adjustable = []Param{ParamWidth, ParamLength, ParamDepth, ParamThickness, ParamFlute}

func (p Param) String() string {
	if p < 0 || int(p) >= len(paramNames) {
		return fmt.Sprintf("param(%d)", int(p))
	}
	return paramNames[p]
}

// Command is a user action, usually bound to a key by the front end.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdScrollForward
	CmdScrollBack
	CmdPageForward
	CmdPageBack
	CmdJumpStart
	CmdJumpEnd
	CmdIncrease
	CmdDecrease
	CmdZoomIn
	CmdZoomOut
	CmdToggleRotate
	CmdReset
	CmdScreenshot
	CmdSelectWidth
	CmdSelectLength
	CmdSelectDepth
	CmdSelectThickness
	CmdSelectFlute
)

// pageSteps is how many scroll steps a page key moves.
const pageSteps = 10

// Controls holds the state the user drives: box parameters within their
// limits and the scroll position that drives the fold.
type Controls struct {
	limits   box.Limits
	defaults box.Params
	params   box.Params
	selected Param

	target   float64 // scroll position
	progress float64 // displayed progress, trails target by the scrub time
	step     float64
	scrub    float64
}

// NewControls clamps params into limits and starts both scroll position and
// displayed progress at progress.
func NewControls(params box.Params, limits box.Limits, progress, step, scrub float64) *Controls {
	params, _ = limits.Clamp(params)
	p := animation.ClampProgress(progress)
	return &Controls{
		limits:   limits,
		defaults: params,
		params:   params,
		target:   p,
		progress: p,
		step:     step,
		scrub:    scrub,
	}
}

// Params returns the current parameters.
func (c *Controls) Params() box.Params {
	return c.params
}

// SetParams replaces the parameters, e.g. to roll back a failed rebuild.
func (c *Controls) SetParams(p box.Params) {
	c.params = p
}

// Selected returns the parameter the increase and decrease keys act on.
func (c *Controls) Selected() Param {
	return c.selected
}

// Select chooses the parameter the increase and decrease keys act on.
func (c *Controls) Select(p Param) {
	if p >= ParamWidth && p <= ParamFlute {
		c.selected = p
	}
}

// Adjust moves the selected parameter by dir steps and reports whether it
// changed. The result never leaves the parameter's range.
func (c *Controls) Adjust(dir int) bool {
	r, v := c.field(c.selected)
	return c.Set(c.selected, *v+float64(dir)*r.Step)
}

// Set moves p to v, clamped into its range and snapped to its step grid,
// and reports whether it changed.
func (c *Controls) Set(p Param, v float64) bool {
	r, field := c.field(p)
	next := snap(r, v)
	if next == *field {
		return false
	}
	*field = next
	return true
}

// Range returns the limits of p.
func (c *Controls) Range(p Param) box.Range {
	r, _ := c.field(p)
	return r
}

// snap clamps v into r and rounds it to r's step grid so repeated steps or
// slider drags do not drift.
func snap(r box.Range, v float64) float64 {
	v = r.Clamp(v)
	if r.Step > 0 {
		v = r.Clamp(r.Min + gomath.Round((v-r.Min)/r.Step)*r.Step)
	}
	return v
}

// Reset restores the starting parameters and reports whether any changed.
func (c *Controls) Reset() bool {
	if c.params == c.defaults {
		return false
	}
	c.params = c.defaults
	return true
}

// Value returns the current value of p.
func (c *Controls) Value(p Param) float64 {
	_, v := c.field(p)
	return *v
}

func (c *Controls) field(p Param) (box.Range, *float64) {
	switch p {
	case ParamLength:
		return c.limits.Length, &c.params.Length
	case ParamDepth:
		return c.limits.Depth, &c.params.Depth
	case ParamThickness:
		return c.limits.Thickness, &c.params.Thickness
	case ParamFlute:
		return c.limits.FluteFrequency, &c.params.FluteFrequency
	default:
		return c.limits.Width, &c.params.Width
	}
}

// Scroll moves the scroll position by steps scroll steps.
func (c *Controls) Scroll(steps float64) {
	c.SetTarget(c.target + steps*c.step)
}

// SetTarget sets the scroll position, clamped to [0,1].
func (c *Controls) SetTarget(p float64) {
	c.target = animation.ClampProgress(p)
}

// Target returns the scroll position.
func (c *Controls) Target() float64 {
	return c.target
}

// Progress returns the displayed progress.
func (c *Controls) Progress() float64 {
	return c.progress
}

// Update eases the displayed progress toward the scroll position. It
// closes about 95% of the gap in one scrub period.
func (c *Controls) Update(dt float64) float64 {
	if c.scrub <= 0 {
		c.progress = c.target
		return c.progress
	}
	k := 1 - gomath.Exp(-3*dt/c.scrub)
	c.progress += (c.target - c.progress) * k
	if gomath.Abs(c.target-c.progress) < 1e-4 {
		c.progress = c.target
	}
	return c.progress
}

// Apply runs a scroll, selection or parameter command and reports whether
// the parameters changed. Other commands are ignored.
func (c *Controls) Apply(cmd Command) bool {
	switch cmd {
	case CmdScrollForward:
		c.Scroll(1)
	case CmdScrollBack:
		c.Scroll(-1)
	case CmdPageForward:
		c.Scroll(pageSteps)
	case CmdPageBack:
		c.Scroll(-pageSteps)
	case CmdJumpStart:
		c.SetTarget(0)
	case CmdJumpEnd:
		c.SetTarget(1)
	case CmdIncrease:
		return c.Adjust(1)
	case CmdDecrease:
		return c.Adjust(-1)
	case CmdReset:
		return c.Reset()
	case CmdSelectWidth, CmdSelectLength, CmdSelectDepth, CmdSelectThickness, CmdSelectFlute:
		c.Select(Param(cmd - CmdSelectWidth))
	}
	return false
}
