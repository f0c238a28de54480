// boxtool inspects generated boxes from the command line: derived panel
// dimensions, poses along the fold, and a terminal wireframe preview.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	gomath "math"
	"os"
	"os/signal"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/animation"
	"github.com/Faultbox/boxfold/internal/box"
	"github.com/Faultbox/boxfold/internal/config"
	"github.com/Faultbox/boxfold/internal/engine/camera"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/internal/preview"
	"github.com/Faultbox/boxfold/pkg/math"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return cmdInfo(args, stdout, stderr)
	case "pose":
		return cmdPose(args, stdout, stderr)
	case "preview":
		return cmdPreview(args, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `boxtool - corrugated box generator utility

Usage:
  boxtool <command> [options]

Commands:
  info                  Show derived panel dimensions and mesh sizes
  pose [progress]       Show the animation state and node transforms
  preview               Scrub the fold in a terminal wireframe

Options (all commands):
  -config <file>        Config file
  -width, -length, -depth, -thickness, -flute <n>
  -progress <p>         Fold progress in [0, 1]

Examples:
  boxtool info -width 30 -length 90
  boxtool pose 0.5
  boxtool preview -progress 0.3`)
}

// load parses the shared flags for a subcommand, starts the logger and
// builds the box. Console log lines go to console; nil keeps only the
// configured log file.
func load(name string, args []string, console io.Writer, stderr io.Writer) (*config.Config, *box.Assembly, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	cfg, err := config.LoadWith(flags)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := logger.InitWriter(cfg.Logging.Level, console, logger.DefaultFileConfig(cfg.Logging.LogFile)); err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	params, clamped := cfg.Limits.Clamp(cfg.Box)
	if len(clamped) > 0 {
		logger.Warn("parameters clamped to limits", zap.Strings("params", clamped))
	}

	a := box.New(cfg.Copyright)
	if err := a.Rebuild(params); err != nil {
		return nil, nil, nil, err
	}
	return cfg, a, fs, nil
}

func cmdInfo(args []string, stdout, stderr io.Writer) int {
	_, a, _, err := load("info", args, stderr, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	p := a.Params()
	fmt.Fprintf(stdout, "Box:       %g x %g x %g (W x L x D)\n", p.Width, p.Length, p.Depth)
	fmt.Fprintf(stdout, "Board:     thickness %g, flute frequency %g, flap gap %g\n", p.Thickness, p.FluteFrequency, p.FlapGap)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Panels:")
	for _, axis := range box.Axes {
		d := p.Dimensions(axis)
		fmt.Fprintf(stdout, "  %-7s side %g x %g, flap %g x %g\n",
			axis, d.SideWidth, d.SideHeight, d.FlapWidth, d.FlapHeight)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Meshes:")
	var vertices, triangles int
	for _, k := range box.Keys() {
		m := a.Node(k).Mesh
		fmt.Fprintf(stdout, "  %-24s %6d vertices %6d triangles %d layers\n",
			k, m.VertexCount(), m.TriangleCount(), m.Layers)
		vertices += m.VertexCount()
		triangles += m.TriangleCount()
	}
	fmt.Fprintf(stdout, "  %-24s %6d vertices %6d triangles\n", "total", vertices, triangles)
	return 0
}

func cmdPose(args []string, stdout, stderr io.Writer) int {
	cfg, a, fs, err := load("pose", args, stderr, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	progress := cfg.Viewer.InitialProgress
	if fs.NArg() > 0 {
		progress, err = strconv.ParseFloat(fs.Arg(0), 64)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid progress %q: %v\n", fs.Arg(0), err)
			return 1
		}
	}

	s := a.ApplyAnimation(progress)
	fmt.Fprintf(stdout, "Progress:  %.3f (t=%.3f of %.1f)\n",
		progress, animation.ClampProgress(progress)*box.TimelineDuration(), box.TimelineDuration())
	fmt.Fprintf(stdout, "Opening:   %7.2f°\n", degrees(s.Opening))
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Nodes:")
	for _, k := range box.Keys() {
		n := a.Node(k)
		pos := n.WorldMatrix().Translation()
		fmt.Fprintf(stdout, "  %-24s pos (%7.2f %7.2f %7.2f)  rot (%7.2f° %7.2f°)\n",
			k, pos.X, pos.Y, pos.Z, degrees(float64(n.Rotation.X)), degrees(float64(n.Rotation.Y)))
	}
	pos := a.Overlay().Node().Position
	fmt.Fprintf(stdout, "  %-24s pos (%7.2f %7.2f %7.2f)\n", "copyright", pos.X, pos.Y, pos.Z)
	return 0
}

func cmdPreview(args []string, stderr io.Writer) int {
	// The console would draw over the screen, so only a log file is used.
	cfg, a, _, err := load("preview", args, nil, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer screen.Fini()

	cam := camera.NewOrbitCamera(math.Vec3{X: 40, Y: 90, Z: 110})
	cam.AutoRotateSpeed = float32(cfg.Viewer.AutoRotateSpeed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := preview.New(screen, a, cam, cfg.Viewer.InitialProgress, cfg.Viewer.ScrollStep*5)
	if err := p.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("preview failed", zap.Error(err))
		return 1
	}
	return 0
}

func degrees(rad float64) float64 {
	return rad * 180 / gomath.Pi
}
