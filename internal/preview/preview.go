// Package preview draws a wireframe of the box in a terminal and lets the
// user scrub the fold with the keyboard.
package preview

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/animation"
	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/engine/camera"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/pkg/math"
)

const frameInterval = 33 * time.Millisecond

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2

var (
	sideStyle    = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x9C8D7B))
	flapStyle    = tcell.StyleDefault.Foreground(tcell.ColorTan)
	overlayStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle  = tcell.StyleDefault.Reverse(true)
)

// Preview renders an assembly onto a tcell screen.
type Preview struct {
	screen   tcell.Screen
	assembly *box.Assembly
	camera   *camera.OrbitCamera
	progress float64
	step     float64
	rotate   float32
	log      *zap.Logger
}

// New creates a preview of a built assembly. step is the progress change per
// arrow key press.
func New(screen tcell.Screen, a *box.Assembly, cam *camera.OrbitCamera, progress, step float64) *Preview {
	p := &Preview{
		screen:   screen,
		assembly: a,
		camera:   cam,
		step:     step,
		rotate:   cam.AutoRotateSpeed,
		log:      logger.Named("preview"),
	}
	p.SetProgress(progress)
	return p
}

// Progress returns the current fold progress.
func (p *Preview) Progress() float64 {
	return p.progress
}

// SetProgress moves the fold to progress, clamped to [0,1].
func (p *Preview) SetProgress(progress float64) {
	p.progress = animation.ClampProgress(progress)
	p.assembly.ApplyAnimation(p.progress)
}

// Run draws frames until ctx is done or the user quits.
func (p *Preview) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	p.log.Info("preview started", zap.Float64("progress", p.progress))
	last := time.Now()
	p.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !p.HandleEvent(ev) {
				p.log.Info("preview closed", zap.Float64("progress", p.progress))
				return nil
			}

		case now := <-ticker.C:
			p.camera.Update(float32(now.Sub(last).Seconds()))
			last = now
			p.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

// HandleKey applies one key press and reports whether to keep running.
func (p *Preview) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight, tcell.KeyDown:
		p.SetProgress(p.progress + p.step)
	case tcell.KeyLeft, tcell.KeyUp:
		p.SetProgress(p.progress - p.step)
	case tcell.KeyHome:
		p.SetProgress(0)
	case tcell.KeyEnd:
		p.SetProgress(1)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'l', 'j':
			p.SetProgress(p.progress + p.step)
		case 'h', 'k':
			p.SetProgress(p.progress - p.step)
		case '+', '=':
			p.camera.ZoomIn()
		case '-':
			p.camera.ZoomOut()
		case 'r':
			if p.camera.AutoRotateSpeed != 0 {
				p.camera.AutoRotateSpeed = 0
			} else {
				p.camera.AutoRotateSpeed = p.rotate
			}
		}
	}
	return true
}

// Draw renders the current pose and a status line.
func (p *Preview) Draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		p.screen.Show()
		return
	}

	aspect := float32(w) / float32(rows*cellAspect)
	viewProj := p.camera.ProjectionMatrix(aspect).Mul(p.camera.ViewMatrix())
	overlay := p.assembly.Overlay().Node()

	p.assembly.Root().Walk(func(n *box.Node, world math.Mat4) {
		if n.Mesh == nil {
			return
		}
		ch, style := '#', sideStyle
		switch {
		case n == overlay:
			ch, style = '.', overlayStyle
		case n.Parent() != nil && n.Parent().Mesh != nil:
			ch, style = '+', flapStyle
		}
		p.outline(n.Mesh.Bounds.Min, n.Mesh.Bounds.Max, viewProj.Mul(world), w, rows, ch, style)
	})

	p.status(w, h-1)
	p.screen.Show()
}

// outline draws the edges of the panel rectangle spanned by the x/y bounds.
func (p *Preview) outline(lo, hi [3]float32, mvp math.Mat4, w, h int, ch rune, style tcell.Style) {
	corners := [4][2]float32{{lo[0], lo[1]}, {hi[0], lo[1]}, {hi[0], hi[1]}, {lo[0], hi[1]}}
	var pts [4][2]int
	for i, c := range corners {
		x, y, ok := project(mvp, c[0], c[1], w, h)
		if !ok {
			return
		}
		pts[i] = [2]int{x, y}
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		line(a[0], a[1], b[0], b[1], func(x, y int) {
			if x >= 0 && x < w && y >= 0 && y < h {
				p.screen.SetContent(x, y, ch, nil, style)
			}
		})
	}
}

// maxNDC bounds projected coordinates so a line never walks more than a few
// screens of cells.
const maxNDC = 4

// project maps a local point on the z=0 plane to a cell. ok is false when
// the point is behind the camera or lands far outside the view.
func project(mvp math.Mat4, x, y float32, w, h int) (cx, cy int, ok bool) {
	clip := mvp.MulVec4(math.Vec4{x, y, 0, 1})
	if clip[3] <= 1e-6 {
		return 0, 0, false
	}
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	if nx < -maxNDC || nx > maxNDC || ny < -maxNDC || ny > maxNDC {
		return 0, 0, false
	}
	cx = int(gomath.Round(float64((nx + 1) / 2 * float32(w-1))))
	cy = int(gomath.Round(float64((1 - ny) / 2 * float32(h-1))))
	return cx, cy, true
}

// line walks the cells from (x0,y0) to (x1,y1) with Bresenham's algorithm.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (p *Preview) status(w, y int) {
	s := p.assembly.State()
	text := fmt.Sprintf(" progress %.2f  opening %3.0f°  zoom %.2f  ←/→ fold  +/- zoom  r rotate  q quit",
		p.progress, s.Opening*180/gomath.Pi, p.camera.ZoomLevel())
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		p.screen.SetContent(x, y, r, nil, statusStyle)
		x++
	}
	for ; x < w; x++ {
		p.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
