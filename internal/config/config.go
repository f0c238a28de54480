// Package config handles boxfold configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/boxfold/internal/box"
)

// Layout names accepted by ViewerConfig.Layout.
const (
	LayoutDesktop = "desktop"
	LayoutMobile  = "mobile"
)

// Config holds all boxfold settings.
type Config struct {
	Box       box.Params        `yaml:"box"`
	Limits    box.Limits        `yaml:"limits"`
	Copyright box.OverlayConfig `yaml:"copyright"`
	Viewer    ViewerConfig      `yaml:"viewer"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// ViewerConfig holds display and interaction settings.
type ViewerConfig struct {
	Width      int  `yaml:"width" envconfig:"WIDTH"`
	Height     int  `yaml:"height" envconfig:"HEIGHT"`
	Fullscreen bool `yaml:"fullscreen" envconfig:"FULLSCREEN"`
	VSync      bool `yaml:"vsync" envconfig:"VSYNC"`
	ShowFPS    bool `yaml:"show_fps" envconfig:"SHOW_FPS"`

	// Layout scales the initial box for the screen: desktop widens it,
	// mobile shortens it.
	Layout string `yaml:"layout" envconfig:"LAYOUT"`

	// AutoRotateSpeed is in camera turns per minute.
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed" envconfig:"AUTO_ROTATE_SPEED"`
	// ScrollStep is the progress change per wheel notch or arrow key.
	ScrollStep float64 `yaml:"scroll_step" envconfig:"SCROLL_STEP"`
	// Scrub is the time in seconds the displayed progress takes to catch
	// up with the scroll position.
	Scrub           float64 `yaml:"scrub" envconfig:"SCRUB"`
	InitialProgress float64 `yaml:"initial_progress" envconfig:"INITIAL_PROGRESS"`

	// Color is the cardboard colour as 0xRRGGBB.
	Color uint32 `yaml:"color" envconfig:"COLOR"`

	ScreenshotDir string `yaml:"screenshot_dir" envconfig:"SCREENSHOT_DIR"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" envconfig:"LEVEL"`
	LogFile string `yaml:"log_file" envconfig:"LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Box:       box.DefaultParams(),
		Limits:    box.DefaultLimits(),
		Copyright: box.DefaultOverlayConfig(),
		Viewer: ViewerConfig{
			Width:           1280,
			Height:          720,
			Fullscreen:      false,
			VSync:           true,
			Layout:          LayoutDesktop,
			AutoRotateSpeed: 0.25,
			ScrollStep:      0.02,
			Scrub:           0.5,
			InitialProgress: 0.2,
			Color:           0x9C8D7B,
			ScreenshotDir:   "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with. Box parameters are
// checked by the box package when the box is built.
func (c *Config) Validate() error {
	v := c.Viewer
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("viewer size %dx%d must be positive", v.Width, v.Height)
	}
	if v.Layout != LayoutDesktop && v.Layout != LayoutMobile {
		return fmt.Errorf("viewer layout %q must be %q or %q", v.Layout, LayoutDesktop, LayoutMobile)
	}
	if v.InitialProgress < 0 || v.InitialProgress > 1 {
		return fmt.Errorf("initial progress %g must be within [0, 1]", v.InitialProgress)
	}
	if v.ScrollStep <= 0 {
		return fmt.Errorf("scroll step %g must be positive", v.ScrollStep)
	}
	if v.Scrub < 0 {
		return fmt.Errorf("scrub %g must not be negative", v.Scrub)
	}
	if c.Copyright.Width <= 0 || c.Copyright.Height <= 0 {
		return fmt.Errorf("copyright size %gx%g must be positive", c.Copyright.Width, c.Copyright.Height)
	}
	return nil
}

// LayoutParams applies the layout policy to p: desktop widens the box by
// 1/0.8, mobile shortens it by 1/2.2. The result is not clamped.
func (c *Config) LayoutParams(p box.Params) box.Params {
	switch c.Viewer.Layout {
	case LayoutMobile:
		p.Length /= 2.2
	default:
		p.Width /= 0.8
	}
	return p
}
