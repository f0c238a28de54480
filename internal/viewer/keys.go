// Package viewer runs the SDL box viewer: scroll-driven folding, parameter
// keys, zoom and the clickable copyright plate.
package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/boxfold/internal/session"
)

var bindings = map[sdl.Scancode]session.Command{
	sdl.SCANCODE_ESCAPE:    session.CmdQuit,
	sdl.SCANCODE_Q:         session.CmdQuit,
	sdl.SCANCODE_DOWN:      session.CmdScrollForward,
	sdl.SCANCODE_UP:        session.CmdScrollBack,
	sdl.SCANCODE_PAGEDOWN:  session.CmdPageForward,
	sdl.SCANCODE_PAGEUP:    session.CmdPageBack,
	sdl.SCANCODE_HOME:      session.CmdJumpStart,
	sdl.SCANCODE_END:       session.CmdJumpEnd,
	sdl.SCANCODE_RIGHT:     session.CmdIncrease,
	sdl.SCANCODE_LEFT:      session.CmdDecrease,
	sdl.SCANCODE_EQUALS:    session.CmdZoomIn,
	sdl.SCANCODE_KP_PLUS:   session.CmdZoomIn,
	sdl.SCANCODE_MINUS:     session.CmdZoomOut,
	sdl.SCANCODE_KP_MINUS:  session.CmdZoomOut,
	sdl.SCANCODE_R:         session.CmdToggleRotate,
	sdl.SCANCODE_BACKSPACE: session.CmdReset,
	sdl.SCANCODE_F12:       session.CmdScreenshot,
	sdl.SCANCODE_P:         session.CmdScreenshot,
	sdl.SCANCODE_1:         session.CmdSelectWidth,
	sdl.SCANCODE_2:         session.CmdSelectLength,
	sdl.SCANCODE_3:         session.CmdSelectDepth,
	sdl.SCANCODE_4:         session.CmdSelectThickness,
	sdl.SCANCODE_5:         session.CmdSelectFlute,
}

// CommandForKey returns the command bound to sc.
func CommandForKey(sc sdl.Scancode) session.Command {
	return bindings[sc]
}
