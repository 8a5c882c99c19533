// Package config loads workspace configuration for dga.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed defaults/dga.toml
var defaultsFS embed.FS

// EnvTheme overrides the configured color theme when set.
const EnvTheme = "DGA_THEME"

// Config is the workspace configuration stored in dga.toml.
type Config struct {
	// Vertices is the number of vertices of the complete graph K_n.
	Vertices int `toml:"vertices"`

	// Workers caps concurrent defect computations during system builds.
	// Zero uses one worker per CPU.
	Workers int `toml:"workers"`

	// Theme selects terminal colors: auto, dark, light, or off.
	Theme string `toml:"theme"`

	// Reduce configures the reduction step.
	Reduce ReduceConfig `toml:"reduce"`
}

// ReduceConfig holds reduction options.
type ReduceConfig struct {
	// Mod lists extra prime moduli to cross-check ranks against.
	Mod []uint64 `toml:"mod"`
}

// Default returns the built-in configuration embedded in the binary.
func Default() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/dga.toml")
	if err != nil {
		return nil, fmt.Errorf("reading built-in defaults: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing built-in defaults: %w", err)
	}
	return &cfg, nil
}

// Load resolves the configuration for a workspace root. Resolution order
// (later overrides earlier):
//  1. Built-in defaults (embedded in binary)
//  2. Workspace dga.toml
//  3. DGA_THEME environment variable
//
// The workspace file merges with (not replaces) the defaults, so users only
// specify fields they want to change.
func Load(root string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, "dga.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		var over Config
		if err := toml.Unmarshal(data, &over); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		merge(cfg, &over)
	}

	if theme := os.Getenv(EnvTheme); theme != "" {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// merge applies the non-zero fields of override onto base.
func merge(base, override *Config) {
	if override.Vertices != 0 {
		base.Vertices = override.Vertices
	}
	if override.Workers != 0 {
		base.Workers = override.Workers
	}
	if override.Theme != "" {
		base.Theme = override.Theme
	}
	if override.Reduce.Mod != nil {
		base.Reduce.Mod = override.Reduce.Mod
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Vertices < 2 {
		return fmt.Errorf("vertices = %d, need at least 2", c.Vertices)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers = %d, cannot be negative", c.Workers)
	}
	switch c.Theme {
	case "auto", "dark", "light", "off":
	default:
		return fmt.Errorf("theme %q, want auto, dark, light, or off", c.Theme)
	}
	return nil
}

// Initial renders the dga.toml written by `dga init`.
func Initial(vertices int) []byte {
	return []byte(fmt.Sprintf(`# dga workspace configuration.

# Number of vertices of the complete graph K_n.
vertices = %d

# Worker goroutines for system builds. Zero uses every CPU.
workers = 0

# Color theme: auto, dark, light, or off.
theme = "auto"

[reduce]
# Extra prime moduli to cross-check affine ranks against.
mod = []
`, vertices))
}
