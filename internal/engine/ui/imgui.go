// Package ui wraps the ImGui SDL backend that hosts the studio window.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// latinGlyphRanges covers Basic Latin and Latin-1, which includes the
// degree sign. Pairs of [start, end] terminated by 0.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0,
}

// fontPaths are tried in order; the built-in ImGui font is used when none
// exists.
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",        // macOS
	"C:\\Windows\\Fonts\\segoeui.ttf",                     // Windows
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",     // Debian, Ubuntu
	"/usr/share/fonts/dejavu-sans-fonts/DejaVuSans.ttf",   // Fedora
	"/usr/share/fonts/TTF/DejaVuSans.ttf",                 // Arch
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf", // Noto
}

// Backend owns the window, GL context and ImGui frame loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and GL context.
func NewBackend(title string, width, height int, fontSize float32) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		loadFont(fontSize)
	})

	b.backend.SetBgColor(imgui.NewVec4(1, 1, 1, 1))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

func loadFont(size float32) {
	path := firstExisting(fontPaths)
	if path == "" {
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, fontCfg, &latinGlyphRanges[0])
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Run starts the main render loop and returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Close asks the render loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetViewport returns the main viewport work area in logical pixels.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// FramebufferScale returns physical pixels per logical pixel.
func FramebufferScale() (float32, float32) {
	s := imgui.CurrentIO().DisplayFramebufferScale()
	if s.X <= 0 || s.Y <= 0 {
		return 1, 1
	}
	return s.X, s.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
