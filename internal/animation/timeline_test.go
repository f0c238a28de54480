package animation

import (
	"math"
	"testing"
)

func TestTimelineDuration(t *testing.T) {
	tl := NewTimeline(2,
		Track{Targets: []int{0}, Start: 0, Duration: 0.5, To: 1},
		Track{Targets: []int{1}, Start: 1.1, Duration: 0.5, To: 1},
	)
	if got := tl.Duration(); math.Abs(got-1.6) > 1e-12 {
		t.Errorf("Duration() = %g, want 1.6", got)
	}
}

func TestTimelineEvaluate(t *testing.T) {
	tl := NewTimeline(3,
		Track{Targets: []int{0, 1}, Start: 0, Duration: 1, From: 0, To: 10, Ease: Linear},
		Track{Targets: []int{2}, Start: 1, Duration: 1, From: 5, To: 7, Ease: Linear},
	)

	tests := []struct {
		time float64
		want [3]float64
	}{
		{0, [3]float64{0, 0, 5}},
		{0.5, [3]float64{5, 5, 5}},
		{1, [3]float64{10, 10, 5}},
		{1.5, [3]float64{10, 10, 6}},
		{3, [3]float64{10, 10, 7}},
	}

	out := make([]float64, 3)
	for _, tt := range tests {
		tl.Evaluate(tt.time, out)
		for i := range out {
			if math.Abs(out[i]-tt.want[i]) > 1e-12 {
				t.Errorf("Evaluate(%g)[%d] = %g, want %g", tt.time, i, out[i], tt.want[i])
			}
		}
	}
}

func TestTimelineLaterTrackWins(t *testing.T) {
	tl := NewTimeline(1,
		Track{Targets: []int{0}, Start: 0, Duration: 1, From: 0, To: 1},
		Track{Targets: []int{0}, Start: 2, Duration: 1, From: 1, To: 0},
	)
	out := make([]float64, 1)

	tl.Evaluate(1.5, out)
	if out[0] != 1 {
		t.Errorf("between tracks = %g, want 1", out[0])
	}
	tl.Evaluate(3, out)
	if out[0] != 0 {
		t.Errorf("after second track = %g, want 0", out[0])
	}
}

func TestEvaluateProgressClamps(t *testing.T) {
	tl := NewTimeline(1, Track{Targets: []int{0}, Start: 0, Duration: 2, From: 0, To: 4})
	out := make([]float64, 1)

	tests := []struct {
		name     string
		progress float64
		want     float64
	}{
		{"zero", 0, 0},
		{"half", 0.5, 2},
		{"one", 1, 4},
		{"overshoot", 1.7, 4},
		{"negative", -3, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl.EvaluateProgress(tt.progress, out)
			if math.Abs(out[0]-tt.want) > 1e-12 {
				t.Errorf("EvaluateProgress(%g) = %g, want %g", tt.progress, out[0], tt.want)
			}
		})
	}
}

func TestNewTimelineRejectsBadTarget(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range target")
		}
	}()
	NewTimeline(1, Track{Targets: []int{1}, Duration: 1})
}
