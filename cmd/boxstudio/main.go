// Package main is the entry point for the boxfold studio: the viewer with
// an ImGui parameter panel.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/boxfold/internal/config"
	"github.com/Faultbox/boxfold/internal/logger"
	"github.com/Faultbox/boxfold/internal/studio"
)

func main() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== boxfold studio ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := studio.New(cfg)
	if err != nil {
		logger.Error("failed to create studio", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()

	logger.Info("studio closed normally")
}
