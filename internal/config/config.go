// Package config loads user settings from a TOML file and watches it
// for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mfagan/keypad/internal/input/key"
)

// ErrBadOS is returned when the configured host OS name is unknown.
var ErrBadOS = errors.New("config: unknown host os")

// Config holds all user settings.
type Config struct {
	// Input configures key handling.
	Input InputConfig `toml:"input"`

	// Grids configures the button-grid definitions.
	Grids GridsConfig `toml:"grids"`

	// Plot configures the plot image cache.
	Plot PlotConfig `toml:"plot"`
}

// InputConfig configures key handling.
type InputConfig struct {
	// OS overrides host OS detection for the alt/meta mapping:
	// "linux", "windows", "mac" or "auto".
	OS string `toml:"os"`

	// Bindings maps key chords to backend commands, e.g. "C-g" = "clear"
	// or "M-p" = "push 0". A bound chord fires its command ahead of grid
	// shortcut lookup and picks up live when the file is reloaded.
	Bindings map[string]string `toml:"bindings"`
}

// GridsConfig configures the button-grid definitions.
type GridsConfig struct {
	// File is the path to a YAML grid definition file. Empty selects the
	// built-in grids.
	File string `toml:"file"`
}

// PlotConfig configures the plot image cache.
type PlotConfig struct {
	// CacheSize is the maximum number of cached plot images.
	CacheSize int `toml:"cache_size"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{OS: "auto"},
		Plot:  PlotConfig{CacheSize: 16},
	}
}

// Load reads settings from path, applying defaults for anything unset.
// A missing file is not an error: the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Input.OS {
	case "auto", "linux", "windows", "mac":
	default:
		return fmt.Errorf("%w: %q", ErrBadOS, c.Input.OS)
	}
	if c.Plot.CacheSize < 1 {
		return fmt.Errorf("config: plot cache_size must be at least 1, got %d", c.Plot.CacheSize)
	}
	for chord, command := range c.Input.Bindings {
		if _, err := key.ParseSyntax(chord); err != nil {
			return fmt.Errorf("config: binding %q: %w", chord, err)
		}
		if strings.TrimSpace(command) == "" {
			return fmt.Errorf("config: binding %q maps to an empty command", chord)
		}
	}
	return nil
}

// HostOS resolves the configured OS name, falling back to the runtime
// when set to "auto".
func (c Config) HostOS() key.HostOS {
	name := c.Input.OS
	if name == "auto" {
		name = runtime.GOOS
	}
	switch name {
	case "windows":
		return key.OSWindows
	case "mac", "darwin":
		return key.OSMac
	default:
		return key.OSLinux
	}
}
