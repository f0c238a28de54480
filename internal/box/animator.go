package box

import (
	"math"

	"github.com/Faultbox/boxfold/internal/animation"
)

// State is the pose of the box at one progress value. Flaps is indexed by
// [Half][Axis][edge] where edge 0 is the top flap and 1 the bottom flap.
type State struct {
	Opening float64
	Flaps   [2][2][2]float64
}

// Flap returns the angle of the top or bottom flap of a side group. It
// returns 0 for Side.
func (s State) Flap(h Half, a Axis, p Part) float64 {
	switch p {
	case Top:
		return s.Flaps[h][a][0]
	case Bottom:
		return s.Flaps[h][a][1]
	}
	return 0
}

const (
	openingSlot = 0
	stateSlots  = 9
)

func flapSlot(h Half, a Axis, p Part) int {
	edge := 0
	if p == Bottom {
		edge = 1
	}
	return 1 + int(h)*4 + int(a)*2 + edge
}

// foldTimeline opens the box, then tucks the bottom flaps, then the top.
// Angles start at 0, so every track tweens from the closed pose.
var foldTimeline = animation.NewTimeline(stateSlots,
	animation.Track{
		Targets:  []int{openingSlot},
		Start:    0,
		Duration: 0.5,
		To:       math.Pi / 2,
		Ease:     animation.Power1InOut,
	},
	animation.Track{
		Targets:  []int{flapSlot(Back, Width, Bottom), flapSlot(Front, Width, Bottom)},
		Start:    0.5,
		Duration: 0.3,
		To:       0.6 * math.Pi,
		Ease:     animation.BackIn(3),
	},
	animation.Track{
		Targets:  []int{flapSlot(Back, Length, Bottom)},
		Start:    0.6,
		Duration: 0.4,
		To:       0.5 * math.Pi,
		Ease:     animation.BackIn(2),
	},
	animation.Track{
		Targets:  []int{flapSlot(Front, Length, Bottom)},
		Start:    0.8,
		Duration: 0.4,
		To:       0.49 * math.Pi,
		Ease:     animation.BackIn(3),
	},
	animation.Track{
		Targets:  []int{flapSlot(Back, Width, Top), flapSlot(Front, Width, Top)},
		Start:    0.8,
		Duration: 0.3,
		To:       0.6 * math.Pi,
		Ease:     animation.BackIn(3),
	},
	animation.Track{
		Targets:  []int{flapSlot(Back, Length, Top)},
		Start:    1.0,
		Duration: 0.4,
		To:       0.5 * math.Pi,
		Ease:     animation.BackIn(3),
	},
	animation.Track{
		Targets:  []int{flapSlot(Front, Length, Top)},
		Start:    1.1,
		Duration: 0.5,
		To:       0.49 * math.Pi,
		Ease:     animation.BackIn(4),
	},
)

// Evaluate computes the pose for progress in [0,1]. Out-of-range and NaN
// progress is clamped, so the result is always finite.
func Evaluate(progress float64) State {
	var slots [stateSlots]float64
	foldTimeline.EvaluateProgress(progress, slots[:])

	s := State{Opening: slots[openingSlot]}
	for _, h := range Halves {
		for _, a := range Axes {
			s.Flaps[h][a][0] = slots[flapSlot(h, a, Top)]
			s.Flaps[h][a][1] = slots[flapSlot(h, a, Bottom)]
		}
	}
	return s
}

// TimelineDuration is the length of the fold sequence in timeline seconds.
func TimelineDuration() float64 {
	return foldTimeline.Duration()
}
