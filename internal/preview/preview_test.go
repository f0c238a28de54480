package preview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/engine/camera"
	"github.com/Faultbox/boxfold/pkg/math"
)

func newPreview(t *testing.T, progress float64) (*Preview, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 40)

	a := box.New(box.DefaultOverlayConfig())
	if err := a.Rebuild(box.DefaultParams()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	cam := camera.NewOrbitCamera(math.Vec3{X: 40, Y: 90, Z: 110})
	cam.AutoRotateSpeed = 0.25
	return New(screen, a, cam, progress, 0.05), screen
}

// countRune counts r in the drawing area above the status line.
func countRune(screen tcell.Screen, r rune) int {
	w, h := screen.Size()
	n := 0
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			if c, _, _, _ := screen.GetContent(x, y); c == r {
				n++
			}
		}
	}
	return n
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(c)
	}
	return b.String()
}

func TestDrawShowsPanels(t *testing.T) {
	p, screen := newPreview(t, 1)
	p.Draw()

	if n := countRune(screen, '#'); n == 0 {
		t.Error("no side outlines drawn")
	}
	if n := countRune(screen, '+'); n == 0 {
		t.Error("no flap outlines drawn")
	}
	if n := countRune(screen, '.'); n == 0 {
		t.Error("no copyright plate drawn")
	}

	_, h := screen.Size()
	if status := row(screen, h-1); !strings.Contains(status, "progress 1.00") {
		t.Errorf("status line = %q, want progress 1.00", status)
	}
}

func TestHandleKeyScrubs(t *testing.T) {
	p, _ := newPreview(t, 0.5)

	tests := []struct {
		key  tcell.Key
		r    rune
		want float64
	}{
		{tcell.KeyRight, 0, 0.55},
		{tcell.KeyRune, 'h', 0.5},
		{tcell.KeyLeft, 0, 0.45},
		{tcell.KeyEnd, 0, 1},
		{tcell.KeyRight, 0, 1},
		{tcell.KeyHome, 0, 0},
		{tcell.KeyUp, 0, 0},
	}
	for i, tt := range tests {
		if !p.HandleKey(tt.key, tt.r) {
			t.Fatalf("step %d: HandleKey asked to quit", i)
		}
		if got := p.Progress(); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("step %d: progress = %g, want %g", i, got, tt.want)
		}
	}
}

func TestHandleKeyAnimatesAssembly(t *testing.T) {
	p, _ := newPreview(t, 0)
	p.HandleKey(tcell.KeyEnd, 0)

	want := box.Evaluate(1)
	if got := p.assembly.State(); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
}

func TestHandleKeyZoomAndQuit(t *testing.T) {
	p, _ := newPreview(t, 0)

	p.HandleKey(tcell.KeyRune, '+')
	if got := p.camera.ZoomLevel(); got <= 1 {
		t.Errorf("zoom after + = %g, want > 1", got)
	}
	p.HandleKey(tcell.KeyRune, 'r')
	if p.camera.AutoRotateSpeed != 0 {
		t.Errorf("auto-rotate = %g after toggle, want 0", p.camera.AutoRotateSpeed)
	}
	p.HandleKey(tcell.KeyRune, 'r')
	if p.camera.AutoRotateSpeed == 0 {
		t.Error("auto-rotate not restored")
	}

	for _, k := range []struct {
		key tcell.Key
		r   rune
	}{{tcell.KeyEscape, 0}, {tcell.KeyRune, 'q'}, {tcell.KeyCtrlC, 0}} {
		if p.HandleKey(k.key, k.r) {
			t.Errorf("HandleKey(%v, %q) kept running", k.key, k.r)
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"point", 3, 3, 3, 3, 1},
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 2, 5, 2, 0, 6},
		{"diagonal", 0, 0, 4, 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 0
			var lastX, lastY int
			line(tt.x0, tt.y0, tt.x1, tt.y1, func(x, y int) {
				n++
				lastX, lastY = x, y
			})
			if n != tt.want {
				t.Errorf("plotted %d cells, want %d", n, tt.want)
			}
			if lastX != tt.x1 || lastY != tt.y1 {
				t.Errorf("ended at (%d,%d), want (%d,%d)", lastX, lastY, tt.x1, tt.y1)
			}
		})
	}
}

func TestProject(t *testing.T) {
	// w scaled down as for a point just in front of the near plane.
	nearCamera := math.Identity()
	nearCamera[15] = 1e-5

	tests := []struct {
		name   string
		mvp    math.Mat4
		x, y   float32
		wantOK bool
		wantX  int
		wantY  int
	}{
		{name: "center", mvp: math.Identity(), wantOK: true, wantX: 50, wantY: 20},
		{name: "corner", mvp: math.Identity(), x: -1, y: 1, wantOK: true, wantX: 0, wantY: 0},
		{name: "off screen", mvp: math.Identity(), x: 3, y: -3, wantOK: true, wantX: 200, wantY: 80},
		{name: "near camera", mvp: nearCamera, x: 1, y: 1},
		{name: "behind camera", mvp: negW(), x: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := project(tt.mvp, tt.x, tt.y, 101, 41)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("cell = (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestOutlineNearCameraSkipped(t *testing.T) {
	p, screen := newPreview(t, 0)
	nearCamera := math.Identity()
	nearCamera[15] = 1e-5

	p.outline([3]float32{-1, -1, 0}, [3]float32{1, 1, 0}, nearCamera, 100, 39, '#', sideStyle)
	if n := countRune(screen, '#'); n != 0 {
		t.Errorf("outline drew %d cells for a corner at the camera, want 0", n)
	}
}

func negW() math.Mat4 {
	m := math.Identity()
	m[15] = -1
	return m
}
