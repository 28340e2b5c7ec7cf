// Package config loads persistent TUI settings from
// ~/.forge/config.toml. Loading never fails: a missing or malformed
// file yields the defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-adjustable settings.
type Config struct {
	// BackendURL is the analysis service base URL.
	BackendURL string `toml:"backend_url"`
	// Theme selects the color palette ("dark" or "light").
	Theme string `toml:"theme"`
	// FailurePhrases replaces the built-in backend failure phrase set
	// when non-empty. The detection heuristic is exact-substring and the
	// backend's wording changes between releases, so it lives here
	// rather than in code.
	FailurePhrases []string `toml:"failure_phrases"`
	// Debug enables the file log at <dir>/debug.log.
	Debug bool `toml:"debug"`
}

const filename = "config.toml"

// Dir returns the forge settings directory (~/.forge).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forge"
	}
	return filepath.Join(home, ".forge")
}

func defaults() Config {
	return Config{
		BackendURL: "http://localhost:8000",
		Theme:      "dark",
	}
}

// Load reads <dir>/config.toml and returns the parsed Config merged
// over the defaults. Absent or unreadable files return the defaults.
func Load(dir string) Config {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaults().BackendURL
	}
	if cfg.Theme == "" {
		cfg.Theme = defaults().Theme
	}
	return cfg
}

// Save writes cfg to <dir>/config.toml, creating the directory if
// needed.
func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
