package session

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/config"
	"github.com/Faultbox/boxfold/internal/engine/renderer"
	"github.com/Faultbox/boxfold/pkg/math"
)

const (
	screenW = 1280
	screenH = 720
)

func newSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// plateScreenPoint projects a point on the copyright plate, in plate-local
// units, to pixel coordinates with the origin top left.
func plateScreenPoint(s *Session, local math.Vec3) (float32, float32) {
	world := s.Assembly().Overlay().Node().WorldMatrix().TransformVec3(local)
	viewProj := s.Projection(screenW, screenH).Mul(s.Camera().ViewMatrix())
	clip := viewProj.MulVec4(math.Vec4{world.X, world.Y, world.Z, 1})
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	return (nx + 1) / 2 * screenW, (1 - ny) / 2 * screenH
}

func TestNewAppliesLayout(t *testing.T) {
	tests := []struct {
		name       string
		layout     string
		wantWidth  float64
		wantLength float64
		wantEyeY   float32
	}{
		{"desktop", config.LayoutDesktop, 27 / 0.8, 80, 90},
		{"mobile", config.LayoutMobile, 27, box.DefaultLimits().Length.Min, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Viewer.Layout = tt.layout
			s := newSession(t, cfg)

			p := s.Assembly().Params()
			if gomath.Abs(p.Width-tt.wantWidth) > 1e-9 || p.Length != tt.wantLength {
				t.Errorf("params = %g x %g, want %g x %g", p.Width, p.Length, tt.wantWidth, tt.wantLength)
			}
			if got := s.Camera().Position().Y; gomath.Abs(float64(got-tt.wantEyeY)) > 1e-3 {
				t.Errorf("eye y = %g, want %g", got, tt.wantEyeY)
			}
		})
	}
}

func TestPickPlateHalves(t *testing.T) {
	s := newSession(t, nil)
	h := float32(s.Assembly().Overlay().Config().Height)

	tests := []struct {
		name  string
		local math.Vec3
		want  box.Link
	}{
		{"upper half", math.Vec3{Y: h / 4}, box.LinkEmail},
		{"lower half", math.Vec3{Y: -h / 4}, box.LinkInstagram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := plateScreenPoint(s, tt.local)
			if got := s.Pick(x, y, screenW, screenH); got != tt.want {
				t.Errorf("Pick(%g, %g) = %s, want %s", x, y, got, tt.want)
			}
		})
	}

	if got := s.Pick(0, 0, screenW, screenH); got != box.LinkNone {
		t.Errorf("Pick at the corner = %s, want none", got)
	}
	if got := s.Pick(10, 10, 0, 0); got != box.LinkNone {
		t.Errorf("Pick on an empty viewport = %s, want none", got)
	}
}

func TestHoverHighlightsPlate(t *testing.T) {
	s := newSession(t, nil)
	h := float32(s.Assembly().Overlay().Config().Height)
	x, y := plateScreenPoint(s, math.Vec3{Y: h / 4})

	if !s.Hover(x, y, screenW, screenH) {
		t.Fatal("first hover reported no change")
	}
	if s.Hover(x, y, screenW, screenH) {
		t.Error("repeated hover reported a change")
	}

	items := s.Frame(screenW, screenH).Items
	if len(items) != 13 {
		t.Fatalf("frame has %d items, want 12 panels and the plate", len(items))
	}
	overlays := 0
	for _, it := range items {
		if !it.Overlay {
			if it.Label != nil || it.Highlight != renderer.HighlightNone {
				t.Error("panel item carries overlay state")
			}
			continue
		}
		overlays++
		if it.Highlight != renderer.HighlightUpper {
			t.Errorf("plate highlight = %d, want upper", it.Highlight)
		}
		if it.Label == nil {
			t.Error("plate has no label")
		}
	}
	if overlays != 1 {
		t.Errorf("frame has %d overlay items, want 1", overlays)
	}

	if !s.SetHovered(box.LinkNone) || s.Hovered() != box.LinkNone {
		t.Error("clearing hover did not take")
	}
}

func TestClick(t *testing.T) {
	s := newSession(t, nil)
	h := float32(s.Assembly().Overlay().Config().Height)

	x, y := plateScreenPoint(s, math.Vec3{Y: -h / 4})
	if got := s.Click(x, y, screenW, screenH); got != "https://instagram.com/okayokay" {
		t.Errorf("Click on the lower half = %q, want the Instagram URL", got)
	}
	if got := s.Click(0, 0, screenW, screenH); got != "" {
		t.Errorf("Click off the plate = %q, want empty", got)
	}
}

func TestSetParamRebuilds(t *testing.T) {
	s := newSession(t, nil)
	before := s.Assembly().Node(box.Keys()[0]).Mesh

	if !s.SetParam(ParamDepth, 50.2) {
		t.Fatal("SetParam reported no change")
	}
	if got := s.Assembly().Params().Depth; got != 50 {
		t.Errorf("depth = %g, want 50", got)
	}
	if s.Assembly().Node(box.Keys()[0]).Mesh == before {
		t.Error("meshes were not rebuilt")
	}
	if s.SetParam(ParamDepth, 50) {
		t.Error("setting the same value reported a change")
	}
}

func TestCommand(t *testing.T) {
	s := newSession(t, nil)

	s.Command(CmdSelectLength)
	s.Command(CmdIncrease)
	if got, want := s.Assembly().Params().Length, box.DefaultParams().Length+1; got != want {
		t.Errorf("length after increase = %g, want %g", got, want)
	}
	s.Command(CmdReset)
	if got := s.Assembly().Params().Length; got != box.DefaultParams().Length {
		t.Errorf("length after reset = %g, want %g", got, box.DefaultParams().Length)
	}

	zoom := s.Camera().ZoomLevel()
	s.Command(CmdZoomOut)
	if s.Camera().ZoomLevel() >= zoom {
		t.Errorf("zoom out left level at %g", s.Camera().ZoomLevel())
	}

	speed := s.Camera().AutoRotateSpeed
	s.Command(CmdToggleRotate)
	if s.Camera().AutoRotateSpeed != 0 {
		t.Error("toggle did not stop rotation")
	}
	s.Command(CmdToggleRotate)
	if s.Camera().AutoRotateSpeed != speed {
		t.Errorf("rotation speed = %g, want %g", s.Camera().AutoRotateSpeed, speed)
	}

	s.Command(CmdQuit)
	s.Command(CmdScreenshot)
}

func TestUpdateFollowsScroll(t *testing.T) {
	s := newSession(t, nil)
	s.Controls().SetTarget(1)
	for i := 0; i < 600; i++ {
		s.Update(1.0 / 60)
	}
	if got := s.Assembly().State().Opening; gomath.Abs(got-gomath.Pi/2) > 1e-6 {
		t.Errorf("opening = %g, want %g", got, gomath.Pi/2)
	}
}
