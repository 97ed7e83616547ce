// Package config loads the optional lintcheck.toml next to (or above) the
// checked tree.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name looked up by Find.
const ManifestName = "lintcheck.toml"

// CheckConfig is the [check] section.
type CheckConfig struct {
	// MinConfidence drops findings below this weight (1..5).
	MinConfidence int `toml:"min_confidence"`
	// Categories limits reporting to the listed category strings; empty
	// means all.
	Categories []string `toml:"categories"`
	// Extensions selects which files a directory walk picks up.
	Extensions []string `toml:"extensions"`
	// Jobs caps parallel workers for directory runs; 0 means auto.
	Jobs int `toml:"jobs"`
}

// Config is the full manifest.
type Config struct {
	Check CheckConfig `toml:"check"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Check: CheckConfig{
			MinConfidence: 1,
			Extensions:    []string{".cc", ".cpp", ".cxx", ".c", ".h", ".hh", ".hpp", ".cu", ".cuh"},
		},
	}
}

// Load parses a manifest, filling unset sections from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("check", "min_confidence") {
		cfg.Check.MinConfidence = Default().Check.MinConfidence
	}
	if !meta.IsDefined("check", "extensions") {
		cfg.Check.Extensions = Default().Check.Extensions
	}
	if cfg.Check.MinConfidence < 1 || cfg.Check.MinConfidence > 5 {
		return Config{}, fmt.Errorf("%s: check.min_confidence must be between 1 and 5, got %d", path, cfg.Check.MinConfidence)
	}
	return cfg, nil
}

// Find walks from startDir upward looking for a manifest. Returns the path
// and true when found.
func Find(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
