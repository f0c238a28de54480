package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BOXFOLD_BOX_WIDTH.
const EnvPrefix = "BOXFOLD"

// Load loads configuration with priority: defaults < file < environment <
// flags, using the flags registered on the default command line.
func Load() (*Config, error) {
	return LoadWith(CommandLine())
}

// LoadWith is Load with an explicit flag set, for subcommands.
func LoadWith(f *Flags) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := f.ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	// Apply CLI flags (highest priority)
	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./boxfold.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "BoxFold")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "BoxFold")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "boxfold")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "boxfold")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv overrides sections from BOXFOLD_<SECTION>_<KEY> variables.
// Unset variables leave the current value alone.
func loadFromEnv(cfg *Config) error {
	sections := []struct {
		name   string
		target any
	}{
		{"BOX", &cfg.Box},
		{"VIEWER", &cfg.Viewer},
		{"LOGGING", &cfg.Logging},
	}
	for _, s := range sections {
		if err := envconfig.Process(EnvPrefix+"_"+s.name, s.target); err != nil {
			return err
		}
	}
	return nil
}
