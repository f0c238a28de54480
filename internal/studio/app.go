// Package studio runs the box viewer inside an ImGui window: the scene is
// rendered offscreen and shown behind a panel of parameter sliders.
package studio

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/config"
	"github.com/Faultbox/boxfold/internal/engine/debug"
	"github.com/Faultbox/boxfold/internal/engine/framebuffer"
	"github.com/Faultbox/boxfold/internal/engine/lighting"
	"github.com/Faultbox/boxfold/internal/engine/renderer"
	"github.com/Faultbox/boxfold/internal/engine/ui"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/internal/session"
)

const (
	title    = "boxfold studio"
	fontSize = 16
)

// App is the studio instance.
type App struct {
	cfg      *config.Config
	backend  *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	session  *session.Session
	pointer  session.Pointer
	shots    *debug.Screenshots
	capture  bool

	lastTime   time.Time
	fpsTimer   time.Time
	frameCount int
	fps        int

	log *zap.Logger
}

// New creates the window, the offscreen target and the box.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("studio"),
	}

	var err error
	a.session, err = session.New(cfg)
	if err != nil {
		return nil, err
	}

	a.backend, err = ui.NewBackend(title, cfg.Viewer.Width, cfg.Viewer.Height, fontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		Color:  cfg.Viewer.Color,
	}, lighting.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.fb, err = framebuffer.New(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height))
	if err != nil {
		a.renderer.Close()
		return nil, fmt.Errorf("failed to create scene target: %w", err)
	}

	a.shots = debug.NewScreenshots(cfg.Viewer.ScreenshotDir, "boxfold")

	a.log.Info("studio initialized",
		zap.String("layout", cfg.Viewer.Layout),
		zap.Float64("progress", a.session.Controls().Progress()),
	)
	return a, nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() {
	a.lastTime = time.Now()
	a.fpsTimer = a.lastTime
	a.log.Info("starting frame loop")
	a.backend.Run(a.frame)
}

// Close cleans up GL resources.
func (a *App) Close() {
	a.log.Info("closing studio")

	if a.fb != nil {
		a.fb.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
}

func (a *App) frame() {
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	a.keys()
	a.session.Update(dt)

	x, y, w, h := a.backend.GetViewport()
	a.scene(x, y, w, h)
	a.panel(x, y)

	a.frameCount++
	if time.Since(a.fpsTimer) >= time.Second {
		a.fps = a.frameCount
		if a.cfg.Viewer.ShowFPS {
			a.backend.SetWindowTitle(fmt.Sprintf("%s (%d fps)", title, a.fps))
		}
		a.log.Debug("fps", zap.Int("count", a.fps), zap.Float64("dt_ms", dt*1000))
		a.frameCount = 0
		a.fpsTimer = now
	}
}

// keys runs bound keys unless a widget such as a slider has focus.
func (a *App) keys() {
	if imgui.IsAnyItemActive() {
		return
	}
	for key, cmd := range bindings {
		if ui.IsKeyPressed(key) {
			a.command(cmd)
		}
	}
}

func (a *App) command(cmd session.Command) {
	switch cmd {
	case session.CmdQuit:
		a.backend.Close()
	case session.CmdScreenshot:
		a.capture = true
	default:
		a.session.Command(cmd)
	}
}

// scene renders the box offscreen and shows it as a full-viewport image
// behind the panel.
func (a *App) scene(x, y, w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	sx, sy := ui.FramebufferScale()
	pw, ph := int32(w*sx), int32(h*sy)

	if a.fb.Resize(pw, ph) {
		a.log.Debug("scene target resized", zap.Int32("width", pw), zap.Int32("height", ph))
	}
	restore := a.fb.BindWithViewport()
	fw, fh := a.fb.Size()
	if rw, rh := a.renderer.Size(); rw != int(fw) || rh != int(fh) {
		a.renderer.Resize(int(fw), int(fh))
	}
	a.renderer.Begin()
	a.renderer.Draw(a.session.Frame(int(fw), int(fh)))
	a.renderer.End()
	if a.capture {
		a.capture = false
		a.screenshot()
	}
	restore()

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(a.fb.ColorTexture()))
		imgui.ImageV(*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1), // UV flipped
			imgui.NewVec2(1, 0))
		a.mouse(imgui.IsItemHovered(), x, y, w, h)
	}
	imgui.End()
	imgui.PopStyleVar()
}

// mouse handles orbit drags, wheel scrolling, plate hover and clicks over
// the scene image. Coordinates are logical pixels relative to the image.
func (a *App) mouse(hovered bool, x, y, w, h float32) {
	pos := imgui.MousePos()
	mx, my := pos.X-x, pos.Y-y
	px, py := int(mx), int(my)

	if hovered && imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
		a.pointer.Press(px, py)
	}
	dx, dy := a.pointer.Move(px, py)
	if a.pointer.Dragging() {
		a.session.Camera().HandleDrag(float32(dx), float32(dy))
	}
	if imgui.IsMouseReleased(imgui.MouseButtonLeft) && a.pointer.Release(px, py) {
		a.click(mx, my, int(w), int(h))
	}

	if !hovered {
		a.session.SetHovered(box.LinkNone)
		return
	}
	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		// Wheel down scrolls the page forward, which folds the box further.
		a.session.Controls().Scroll(-float64(wheel))
	}
	a.session.Hover(mx, my, int(w), int(h))
	if a.session.Hovered() != box.LinkNone {
		imgui.SetMouseCursor(imgui.MouseCursorHand)
	}
}

func (a *App) click(x, y float32, w, h int) {
	url := a.session.Click(x, y, w, h)
	if url == "" {
		return
	}
	if err := browser.OpenURL(url); err != nil {
		a.log.Warn("failed to open link", zap.Error(err))
	}
}

// screenshot saves the scene just rendered, without the panel.
func (a *App) screenshot() {
	w, h := a.fb.Size()
	name, err := a.shots.Save(a.fb.ReadPixels(), int(w), int(h), a.session.Controls().Progress())
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}
