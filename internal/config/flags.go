package config

import (
	"flag"
	"sync"
)

// Flags are the command-line overrides shared by boxfold commands.
type Flags struct {
	fs *flag.FlagSet

	config     *string
	debug      *bool
	fullscreen *bool
	layout     *string
	width      *float64
	length     *float64
	depth      *float64
	thickness  *float64
	flute      *float64
	progress   *float64
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:         fs,
		config:     fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging and the FPS counter"),
		fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		layout:     fs.String("layout", "", "Initial layout policy: desktop or mobile"),
		width:      fs.Float64("width", 0, "Box width"),
		length:     fs.Float64("length", 0, "Box length"),
		depth:      fs.Float64("depth", 0, "Box depth"),
		thickness:  fs.Float64("thickness", 0, "Board thickness"),
		flute:      fs.Float64("flute", 0, "Flute frequency"),
		progress:   fs.Float64("progress", 0, "Initial fold progress in [0, 1]"),
	}
}

var (
	commandLine     *Flags
	commandLineOnce sync.Once
)

// CommandLine returns the flags registered on flag.CommandLine.
func CommandLine() *Flags {
	commandLineOnce.Do(func() {
		commandLine = RegisterFlags(flag.CommandLine)
	})
	return commandLine
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	CommandLine()
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply applies flags that were set explicitly, so a flag given as 0 still
// overrides the file.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
				cfg.Viewer.ShowFPS = true
			}
		case "fullscreen":
			cfg.Viewer.Fullscreen = *f.fullscreen
		case "layout":
			cfg.Viewer.Layout = *f.layout
		case "width":
			cfg.Box.Width = *f.width
		case "length":
			cfg.Box.Length = *f.length
		case "depth":
			cfg.Box.Depth = *f.depth
		case "thickness":
			cfg.Box.Thickness = *f.thickness
		case "flute":
			cfg.Box.FluteFrequency = *f.flute
		case "progress":
			cfg.Viewer.InitialProgress = *f.progress
		}
	})
}
