package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/config"
	"github.com/Faultbox/boxfold/internal/engine/debug"
	"github.com/Faultbox/boxfold/internal/engine/input"
	"github.com/Faultbox/boxfold/internal/engine/lighting"
	"github.com/Faultbox/boxfold/internal/engine/renderer"
	"github.com/Faultbox/boxfold/internal/engine/window"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/internal/session"
)

const title = "boxfold"

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	session  *session.Session
	pointer  session.Pointer
	shots    *debug.Screenshots
	capture  bool
	log      *zap.Logger
}

// New creates the window, renderer and box.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	var err error
	a.session, err = session.New(cfg)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.GetSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  w,
		Height: h,
		Color:  cfg.Viewer.Color,
	}, lighting.Default())
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.shots = debug.NewScreenshots(cfg.Viewer.ScreenshotDir, title)

	a.log.Info("viewer initialized",
		zap.String("layout", cfg.Viewer.Layout),
		zap.Float64("progress", a.session.Controls().Progress()),
	)
	return a, nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}

		// 2. Update
		a.update(dt)

		// 3. Render
		a.render()

		if a.capture {
			a.capture = false
			a.screenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Viewer.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s (%d fps)", title, frameCount))
			}
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		a.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		a.command(CommandForKey(event.Key))

	case input.EventMouseWheel:
		// Wheel down scrolls the page forward, which folds the box further.
		a.session.Controls().Scroll(-float64(event.Wheel))

	case input.EventMouseMove:
		dx, dy := a.pointer.Move(event.MouseX, event.MouseY)
		if a.pointer.Dragging() {
			a.session.Camera().HandleDrag(float32(dx), float32(dy))
		}

	case input.EventMouseDown:
		a.pointer.Press(event.MouseX, event.MouseY)

	case input.EventMouseUp:
		if a.pointer.Release(event.MouseX, event.MouseY) {
			a.click()
		}
	}
}

func (a *App) command(cmd session.Command) {
	switch cmd {
	case session.CmdQuit:
		a.running = false
	case session.CmdScreenshot:
		a.capture = true
	default:
		a.session.Command(cmd)
	}
}

// screenshot saves the frame just rendered, before it is presented.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.shots.Save(pixels, w, h, a.session.Controls().Progress())
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

func (a *App) click() {
	w, h := a.renderer.Size()
	url := a.session.Click(float32(a.pointer.X), float32(a.pointer.Y), w, h)
	if url == "" {
		return
	}
	if err := window.OpenURL(url); err != nil {
		a.log.Warn("failed to open link", zap.Error(err))
	}
}

func (a *App) update(dt float64) {
	a.session.Update(dt)

	w, h := a.renderer.Size()
	if a.session.Hover(float32(a.pointer.X), float32(a.pointer.Y), w, h) {
		a.window.SetPointer(a.session.Hovered() != box.LinkNone)
	}
}

func (a *App) render() {
	w, h := a.renderer.Size()
	a.renderer.Begin()
	a.renderer.Draw(a.session.Frame(w, h))
	a.renderer.End()
}
