package studio

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/boxfold/internal/session"
)

// bindings mirror the SDL viewer's keys so the panel is optional.
var bindings = map[imgui.Key]session.Command{
	imgui.KeyEscape:         session.CmdQuit,
	imgui.KeyQ:              session.CmdQuit,
	imgui.KeyDownArrow:      session.CmdScrollForward,
	imgui.KeyUpArrow:        session.CmdScrollBack,
	imgui.KeyPageDown:       session.CmdPageForward,
	imgui.KeyPageUp:         session.CmdPageBack,
	imgui.KeyHome:           session.CmdJumpStart,
	imgui.KeyEnd:            session.CmdJumpEnd,
	imgui.KeyRightArrow:     session.CmdIncrease,
	imgui.KeyLeftArrow:      session.CmdDecrease,
	imgui.KeyEqual:          session.CmdZoomIn,
	imgui.KeyKeypadAdd:      session.CmdZoomIn,
	imgui.KeyMinus:          session.CmdZoomOut,
	imgui.KeyKeypadSubtract: session.CmdZoomOut,
	imgui.KeyR:              session.CmdToggleRotate,
	imgui.KeyBackspace:      session.CmdReset,
	imgui.KeyF12:            session.CmdScreenshot,
	imgui.KeyP:              session.CmdScreenshot,
	imgui.Key1:              session.CmdSelectWidth,
	imgui.Key2:              session.CmdSelectLength,
	imgui.Key3:              session.CmdSelectDepth,
	imgui.Key4:              session.CmdSelectThickness,
	imgui.Key5:              session.CmdSelectFlute,
}

// CommandForKey returns the command bound to key.
func CommandForKey(key imgui.Key) session.Command {
	return bindings[key]
}
