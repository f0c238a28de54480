// Package session holds the interactive box state shared by the viewer
// front ends: parameters, scroll-driven fold progress, the orbit camera and
// the copyright plate links.
package session

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/config"
	"github.com/Faultbox/boxfold/internal/engine/camera"
	"github.com/Faultbox/boxfold/internal/engine/label"
	"github.com/Faultbox/boxfold/internal/engine/picking"
	"github.com/Faultbox/boxfold/internal/engine/renderer"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/pkg/math"
)

// Camera eye positions per layout.
var (
	desktopEye = math.Vec3{X: 40, Y: 90, Z: 110}
	mobileEye  = math.Vec3{X: 40, Y: 60, Z: 110}
)

// labelScale is plate label pixels per world unit.
const labelScale = 8

// Session is one box on screen and everything the user can do to it.
type Session struct {
	cfg      *config.Config
	camera   *camera.OrbitCamera
	assembly *box.Assembly
	controls *Controls
	label    *image.RGBA
	hovered  box.Link
	log      *zap.Logger
}

// New builds the box from cfg. The layout policy is applied to the
// configured parameters once, here.
func New(cfg *config.Config) (*Session, error) {
	s := &Session{
		cfg: cfg,
		log: logger.Named("session"),
	}

	params := cfg.LayoutParams(cfg.Box)
	s.controls = NewControls(params, cfg.Limits, cfg.Viewer.InitialProgress, cfg.Viewer.ScrollStep, cfg.Viewer.Scrub)
	if clamped, changed := cfg.Limits.Clamp(params); len(changed) > 0 {
		s.log.Warn("parameters clamped to limits",
			zap.Strings("params", changed),
			zap.Any("result", clamped),
		)
	}

	s.assembly = box.New(cfg.Copyright)
	if err := s.assembly.Rebuild(s.controls.Params()); err != nil {
		return nil, fmt.Errorf("failed to build box: %w", err)
	}
	s.assembly.ApplyAnimation(s.controls.Progress())

	eye := desktopEye
	if cfg.Viewer.Layout == config.LayoutMobile {
		eye = mobileEye
	}
	s.camera = camera.NewOrbitCamera(eye)
	s.camera.AutoRotateSpeed = float32(cfg.Viewer.AutoRotateSpeed)

	s.label = label.Render(s.assembly.Overlay().Lines(),
		int(cfg.Copyright.Width*labelScale), int(cfg.Copyright.Height*labelScale), label.Ink)
	return s, nil
}

// Camera returns the orbit camera.
func (s *Session) Camera() *camera.OrbitCamera {
	return s.camera
}

// Assembly returns the box.
func (s *Session) Assembly() *box.Assembly {
	return s.assembly
}

// Controls returns the parameter and scroll state.
func (s *Session) Controls() *Controls {
	return s.controls
}

// Hovered returns the link under the pointer as of the last Hover.
func (s *Session) Hovered() box.Link {
	return s.hovered
}

// Command runs cmd. Quitting and screenshots belong to the front end and
// are ignored here.
func (s *Session) Command(cmd Command) {
	switch cmd {
	case CmdNone, CmdQuit, CmdScreenshot:
	case CmdZoomIn:
		if !s.camera.ZoomIn() {
			s.log.Debug("zoom at maximum", zap.Float32("level", s.camera.ZoomLevel()))
		}
	case CmdZoomOut:
		if !s.camera.ZoomOut() {
			s.log.Debug("zoom at minimum", zap.Float32("level", s.camera.ZoomLevel()))
		}
	case CmdToggleRotate:
		if s.camera.AutoRotateSpeed != 0 {
			s.camera.AutoRotateSpeed = 0
		} else {
			s.camera.AutoRotateSpeed = float32(s.cfg.Viewer.AutoRotateSpeed)
		}
	case CmdSelectWidth, CmdSelectLength, CmdSelectDepth, CmdSelectThickness, CmdSelectFlute:
		s.controls.Apply(cmd)
		sel := s.controls.Selected()
		s.log.Info("parameter selected",
			zap.Stringer("param", sel),
			zap.Float64("value", s.controls.Value(sel)),
		)
	default:
		if s.controls.Apply(cmd) {
			s.rebuild()
		}
	}
}

// SetParam moves p to v within its limits and rebuilds the box if it
// changed.
func (s *Session) SetParam(p Param, v float64) bool {
	if !s.controls.Set(p, v) {
		return false
	}
	s.rebuild()
	return true
}

// rebuild regenerates the box from the controls, rolling the controls back
// if the box rejects the parameters.
func (s *Session) rebuild() {
	if err := s.assembly.Rebuild(s.controls.Params()); err != nil {
		s.log.Error("rebuild failed", zap.Error(err))
		s.controls.SetParams(s.assembly.Params())
	}
}

// Update advances the camera and the scrubbed fold by dt seconds.
func (s *Session) Update(dt float64) {
	s.camera.Update(float32(dt))
	s.assembly.ApplyAnimation(s.controls.Update(dt))
}

// Projection returns the camera projection for a w x h viewport.
func (s *Session) Projection(w, h int) math.Mat4 {
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	return s.camera.ProjectionMatrix(aspect)
}

// Pick casts a ray through (x, y) of a w x h viewport, origin top left, and
// returns the plate link it hits.
func (s *Session) Pick(x, y float32, w, h int) box.Link {
	if w <= 0 || h <= 0 {
		return box.LinkNone
	}
	viewProj := s.Projection(w, h).Mul(s.camera.ViewMatrix())
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), viewProj.Inverse())
	return s.assembly.Overlay().HitTest(ray)
}

// Hover picks at (x, y) and reports whether the hovered link changed. The
// plate moves with the box, so front ends call it every frame.
func (s *Session) Hover(x, y float32, w, h int) bool {
	return s.SetHovered(s.Pick(x, y, w, h))
}

// SetHovered replaces the hovered link and reports whether it changed.
func (s *Session) SetHovered(l box.Link) bool {
	if l == s.hovered {
		return false
	}
	s.hovered = l
	s.log.Debug("hover", zap.Stringer("link", l))
	return true
}

// Click returns the URL of the link at (x, y), or "" when the click missed
// the plate.
func (s *Session) Click(x, y float32, w, h int) string {
	link := s.Pick(x, y, w, h)
	if link == box.LinkNone {
		return ""
	}
	url := s.assembly.Overlay().URL(link)
	s.log.Info("link activated", zap.Stringer("link", link), zap.String("url", url))
	return url
}

// Frame assembles the draw list for a w x h viewport.
func (s *Session) Frame(w, h int) renderer.Frame {
	return renderer.Frame{
		View:          s.camera.ViewMatrix(),
		Projection:    s.Projection(w, h),
		LightRotation: s.camera.Orientation(),
		Items:         s.items(),
	}
}

// items flattens the scene graph into draw items.
func (s *Session) items() []renderer.Item {
	overlay := s.assembly.Overlay().Node()
	items := make([]renderer.Item, 0, 13)
	s.assembly.Root().Walk(func(n *box.Node, world math.Mat4) {
		if n.Mesh == nil {
			return
		}
		it := renderer.Item{Mesh: n.Mesh, Model: world}
		if n == overlay {
			it.Overlay = true
			it.Highlight = highlightFor(s.hovered)
			it.Label = s.label
		}
		items = append(items, it)
	})
	return items
}

func highlightFor(l box.Link) renderer.Highlight {
	switch l {
	case box.LinkEmail:
		return renderer.HighlightUpper
	case box.LinkInstagram:
		return renderer.HighlightLower
	}
	return renderer.HighlightNone
}
