package studio

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/session"
)

const (
	panelMargin = 10
	sliderWidth = 180
)

// panel draws the parameter window: one slider per adjustable parameter,
// the fold position and the view toggles.
func (a *App) panel(x, y float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(x+panelMargin, y+panelMargin), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowBgAlpha(0.85)

	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("Box", nil, flags) {
		c := a.session.Controls()
		for _, p := range session.Adjustable {
			r := c.Range(p)
			v := float32(c.Value(p))
			imgui.SetNextItemWidth(sliderWidth)
			if imgui.SliderFloatV(sliderLabel(p, c.Selected()), &v, float32(r.Min), float32(r.Max), sliderFormat(r), imgui.SliderFlagsAlwaysClamp) {
				a.session.SetParam(p, float64(v))
			}
		}

		imgui.Separator()

		fold := float32(c.Target())
		imgui.SetNextItemWidth(sliderWidth)
		if imgui.SliderFloatV("Fold", &fold, 0, 1, "%.2f", imgui.SliderFlagsAlwaysClamp) {
			c.SetTarget(float64(fold))
		}
		opening := a.session.Assembly().State().Opening * 180 / gomath.Pi
		imgui.TextDisabled(fmt.Sprintf("Opening %.0f°", opening))

		imgui.Separator()

		cam := a.session.Camera()
		if imgui.Button("-##zoom") {
			a.command(session.CmdZoomOut)
		}
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("Zoom %.2fx", cam.ZoomLevel()))
		imgui.SameLine()
		if imgui.Button("+##zoom") {
			a.command(session.CmdZoomIn)
		}

		rotate := cam.AutoRotateSpeed != 0
		if imgui.Checkbox("Rotate", &rotate) {
			a.command(session.CmdToggleRotate)
		}
		imgui.SameLine()
		if imgui.Button("Reset") {
			a.command(session.CmdReset)
		}
		imgui.SameLine()
		if imgui.Button("Screenshot") {
			a.command(session.CmdScreenshot)
		}

		if a.cfg.Viewer.ShowFPS {
			imgui.TextDisabled(fmt.Sprintf("%d fps", a.fps))
		}
		imgui.TextDisabled("Wheel to fold, drag to orbit")
	}
	imgui.End()
}

// sliderLabel names p's slider, marking the parameter the arrow keys
// adjust. The ### suffix keeps the widget ID stable when the mark moves.
func sliderLabel(p, selected session.Param) string {
	id := p.String()
	name := strings.ToUpper(id[:1]) + id[1:]
	if p == selected {
		name += " *"
	}
	return name + "###" + id
}

// sliderFormat shows as many decimals as the range's step needs.
func sliderFormat(r box.Range) string {
	if r.Step <= 0 || r.Step >= 1 {
		return "%.0f"
	}
	decimals := int(gomath.Ceil(-gomath.Log10(r.Step) - 1e-9))
	return fmt.Sprintf("%%.%df", decimals)
}
