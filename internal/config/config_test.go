package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/boxfold/internal/box"
)

func newFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags %v: %v", args, err)
	}
	return f
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Box != box.DefaultParams() {
		t.Errorf("expected default box params, got %+v", cfg.Box)
	}
	if cfg.Limits != box.DefaultLimits() {
		t.Errorf("expected default limits, got %+v", cfg.Limits)
	}
	if cfg.Copyright.Width != 27 || cfg.Copyright.Height != 10 {
		t.Errorf("expected copyright 27x10, got %gx%g", cfg.Copyright.Width, cfg.Copyright.Height)
	}

	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.Layout != LayoutDesktop {
		t.Errorf("expected desktop layout, got %s", cfg.Viewer.Layout)
	}
	if cfg.Viewer.AutoRotateSpeed != 0.25 {
		t.Errorf("expected auto rotate 0.25, got %g", cfg.Viewer.AutoRotateSpeed)
	}
	if cfg.Viewer.InitialProgress != 0.2 {
		t.Errorf("expected initial progress 0.2, got %g", cfg.Viewer.InitialProgress)
	}
	if cfg.Viewer.Color != 0x9C8D7B {
		t.Errorf("expected color 0x9C8D7B, got %#x", cfg.Viewer.Color)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
box:
  width: 30
  length: 100
  flute_frequency: 6

limits:
  width:
    min: 20
    max: 50
    step: 2

copyright:
  email_url: "mailto:hello@example.com"

viewer:
  layout: mobile
  scroll_step: 0.05
  color: 0xAABBCC

logging:
  level: "debug"
  log_file: "boxfold.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Box.Width != 30 || cfg.Box.Length != 100 || cfg.Box.FluteFrequency != 6 {
		t.Errorf("box = %+v, want width 30, length 100, flute 6", cfg.Box)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Box.Depth != 45 || cfg.Box.FlapGap != 1 {
		t.Errorf("expected depth 45 and flap gap 1 from defaults, got %+v", cfg.Box)
	}
	if cfg.Limits.Width != (box.Range{Min: 20, Max: 50, Step: 2}) {
		t.Errorf("width limits = %+v", cfg.Limits.Width)
	}
	if cfg.Limits.Length != box.DefaultLimits().Length {
		t.Errorf("length limits = %+v, want default", cfg.Limits.Length)
	}
	if cfg.Copyright.EmailURL != "mailto:hello@example.com" {
		t.Errorf("email url = %s", cfg.Copyright.EmailURL)
	}
	if cfg.Copyright.InstagramURL != box.DefaultOverlayConfig().InstagramURL {
		t.Errorf("instagram url = %s, want default", cfg.Copyright.InstagramURL)
	}
	if cfg.Viewer.Layout != LayoutMobile || cfg.Viewer.ScrollStep != 0.05 {
		t.Errorf("viewer = %+v", cfg.Viewer)
	}
	if cfg.Viewer.Color != 0xAABBCC {
		t.Errorf("color = %#x, want 0xaabbcc", cfg.Viewer.Color)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "boxfold.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
box:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BOXFOLD_BOX_WIDTH", "40")
	t.Setenv("BOXFOLD_BOX_FLUTE_FREQUENCY", "3")
	t.Setenv("BOXFOLD_VIEWER_LAYOUT", "mobile")
	t.Setenv("BOXFOLD_VIEWER_COLOR", "0x112233")
	t.Setenv("BOXFOLD_LOGGING_LEVEL", "warn")

	cfg := Default()
	if err := loadFromEnv(cfg); err != nil {
		t.Fatalf("loadFromEnv: %v", err)
	}

	if cfg.Box.Width != 40 || cfg.Box.FluteFrequency != 3 {
		t.Errorf("box = %+v, want width 40, flute 3", cfg.Box)
	}
	if cfg.Box.Length != 80 {
		t.Errorf("length = %g, want untouched 80", cfg.Box.Length)
	}
	if cfg.Viewer.Layout != LayoutMobile {
		t.Errorf("layout = %s, want mobile", cfg.Viewer.Layout)
	}
	if cfg.Viewer.Color != 0x112233 {
		t.Errorf("color = %#x, want 0x112233", cfg.Viewer.Color)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %s, want warn", cfg.Logging.Level)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("BOXFOLD_BOX_DEPTH", "deep")

	if err := loadFromEnv(Default()); err == nil {
		t.Error("expected error for non-numeric depth, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "boxfold.yaml")
	if err := os.WriteFile(configPath, []byte("box:\n  width: 30\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find boxfold.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Viewer.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
		},
		{
			name: "box dimensions",
			args: []string{"-width", "33", "-length", "90", "-depth", "50", "-thickness", "0.4", "-flute", "7"},
			verify: func(t *testing.T, cfg *Config) {
				want := box.Params{Width: 33, Length: 90, Depth: 50, Thickness: 0.4, FluteFrequency: 7, FlapGap: 1}
				if cfg.Box != want {
					t.Errorf("box = %+v, want %+v", cfg.Box, want)
				}
			},
		},
		{
			name: "explicit zero progress",
			args: []string{"-progress", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.InitialProgress != 0 {
					t.Errorf("expected progress 0 from flag, got %g", cfg.Viewer.InitialProgress)
				}
			},
		},
		{
			name: "layout and fullscreen",
			args: []string{"-layout", "mobile", "-fullscreen"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Layout != LayoutMobile || !cfg.Viewer.Fullscreen {
					t.Errorf("viewer = %+v, want mobile fullscreen", cfg.Viewer)
				}
			},
		},
		{
			name: "no flags",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Box != box.DefaultParams() || cfg.Viewer.InitialProgress != 0.2 {
					t.Errorf("config changed without flags: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			newFlags(t, tt.args...).apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
box:
  width: 30
  length: 100
  depth: 50
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Environment beats the file, flags beat both.
	t.Setenv("BOXFOLD_BOX_LENGTH", "110")
	t.Setenv("BOXFOLD_BOX_WIDTH", "35")

	cfg, err := LoadWith(newFlags(t, "-config", configPath, "-width", "40"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Box.Width != 40 {
		t.Errorf("expected width 40 from flag, got %g", cfg.Box.Width)
	}
	if cfg.Box.Length != 110 {
		t.Errorf("expected length 110 from env, got %g", cfg.Box.Length)
	}
	if cfg.Box.Depth != 50 {
		t.Errorf("expected depth 50 from file, got %g", cfg.Box.Depth)
	}
	if cfg.Box.Thickness != 0.6 {
		t.Errorf("expected thickness 0.6 from defaults, got %g", cfg.Box.Thickness)
	}
}

func TestLoadRejectsInvalidViewer(t *testing.T) {
	_, err := LoadWith(newFlags(t, "-config", writeConfig(t, "viewer:\n  layout: tablet\n")))
	if err == nil || !strings.Contains(err.Error(), "layout") {
		t.Errorf("expected layout error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero window", func(c *Config) { c.Viewer.Width = 0 }, false},
		{"unknown layout", func(c *Config) { c.Viewer.Layout = "tv" }, false},
		{"progress above one", func(c *Config) { c.Viewer.InitialProgress = 1.5 }, false},
		{"zero scroll step", func(c *Config) { c.Viewer.ScrollStep = 0 }, false},
		{"negative scrub", func(c *Config) { c.Viewer.Scrub = -1 }, false},
		{"no scrub", func(c *Config) { c.Viewer.Scrub = 0 }, true},
		{"empty copyright", func(c *Config) { c.Copyright.Height = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLayoutParams(t *testing.T) {
	cfg := Default()
	p := box.DefaultParams()

	desktop := cfg.LayoutParams(p)
	if want := p.Width / 0.8; desktop.Width != want || desktop.Length != 80 {
		t.Errorf("desktop = %+v, want width %g length 80", desktop, want)
	}

	cfg.Viewer.Layout = LayoutMobile
	mobile := cfg.LayoutParams(p)
	if want := p.Length / 2.2; mobile.Length != want || mobile.Width != 27 {
		t.Errorf("mobile = %+v, want width 27 length %g", mobile, want)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Box.Width = 44
	cfg.Viewer.Layout = LayoutMobile
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Box.Width != 44 || loaded.Viewer.Layout != LayoutMobile {
		t.Errorf("loaded = %+v", loaded)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}
