package animation

// Track tweens one or more target slots from From to To over
// [Start, Start+Duration] in timeline time.
type Track struct {
	Targets  []int
	Start    float64
	Duration float64
	From     float64
	To       float64
	Ease     Easing
}

// End returns the time at which the track reaches To.
func (tr Track) End() float64 {
	return tr.Start + tr.Duration
}

// valueAt returns the track's value at time; before Start it holds From,
// after End it holds To.
func (tr Track) valueAt(time float64) float64 {
	t := 1.0
	if tr.Duration > 0 {
		t = clamp01((time - tr.Start) / tr.Duration)
	} else if time < tr.Start {
		t = 0
	}
	ease := tr.Ease
	if ease == nil {
		ease = Linear
	}
	return tr.From + (tr.To-tr.From)*ease(t)
}

// Timeline is an immutable table of tracks writing into a fixed number of
// target slots.
type Timeline struct {
	tracks   []Track
	targets  int
	duration float64
}

// NewTimeline builds a timeline over targets slots. It panics if a track
// names a slot outside [0, targets), which is a table authoring mistake.
func NewTimeline(targets int, tracks ...Track) *Timeline {
	tl := &Timeline{
		tracks:  append([]Track(nil), tracks...),
		targets: targets,
	}
	for _, tr := range tl.tracks {
		for _, slot := range tr.Targets {
			if slot < 0 || slot >= targets {
				panic("animation: track target out of range")
			}
		}
		if tr.End() > tl.duration {
			tl.duration = tr.End()
		}
	}
	return tl
}

// Duration returns the end time of the last track.
func (tl *Timeline) Duration() float64 {
	return tl.duration
}

// Evaluate writes every slot's value at time into out, which must hold
// the slot count given to NewTimeline. A slot takes the value of the latest
// track that has started; before any of its tracks start it holds the
// earliest track's From. Slots with no tracks are left untouched.
func (tl *Timeline) Evaluate(time float64, out []float64) {
	if len(out) < tl.targets {
		panic("animation: output buffer smaller than target count")
	}

	for slot := 0; slot < tl.targets; slot++ {
		var active, first *Track
		for i := range tl.tracks {
			tr := &tl.tracks[i]
			if !hasTarget(tr, slot) {
				continue
			}
			if first == nil || tr.Start < first.Start {
				first = tr
			}
			if tr.Start <= time && (active == nil || tr.Start >= active.Start) {
				active = tr
			}
		}
		switch {
		case active != nil:
			out[slot] = active.valueAt(time)
		case first != nil:
			out[slot] = first.From
		}
	}
}

// EvaluateProgress evaluates at normalized progress, mapping [0,1] onto the
// whole timeline. Progress is clamped first, so NaN or out-of-range input
// never reaches the tracks.
func (tl *Timeline) EvaluateProgress(progress float64, out []float64) {
	tl.Evaluate(ClampProgress(progress)*tl.duration, out)
}

// ClampProgress clamps progress to [0,1]; NaN becomes 0.
func ClampProgress(progress float64) float64 {
	return clamp01(progress)
}

func hasTarget(tr *Track, slot int) bool {
	for _, s := range tr.Targets {
		if s == slot {
			return true
		}
	}
	return false
}
