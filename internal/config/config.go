// Package config loads the per-project agentsync.json and the optional
// per-user config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the global user configuration.
type Config struct {
	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Log controls the diagnostic logger used by --verbose.
	Log LogConfig `toml:"log"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used by "agentsync show".
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// LogConfig tunes diagnostic logging.
type LogConfig struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	// --verbose always forces debug.
	Level string `toml:"level"`
}

// configFile is the user config location below a config home directory.
var configFile = filepath.Join("agentsync", "config.toml")

// Load reads the user config from DefaultPath. A missing file, or no
// resolvable config directory, gives the zero Config.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the user config at path. Keys agentsync does not know are
// an error so that typos do not silently fall back to defaults.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// DefaultPath returns where the user config lives: $XDG_CONFIG_HOME when set,
// then ~/.config when that file exists, then the OS config directory.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(xdg) {
		return filepath.Join(xdg, configFile), nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", configFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("no user config directory: %w", err)
	}
	return filepath.Join(dir, configFile), nil
}
