// Package config loads sb60calc settings and scenario reference data.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all sb60calc configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Publish PublishConfig `toml:"publish"`
	Curve   CurveConfig   `toml:"curve"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	OutputDir    string `toml:"output_dir"`
	ScenarioFile string `toml:"scenario_file,omitempty"`
}

// PublishConfig controls where the post expects charts to be served from.
type PublishConfig struct {
	BaseURL  string `toml:"base_url"`
	PostSlug string `toml:"post_slug"`
}

// CurveConfig overrides the sampled income range of the household curve.
// Nil fields keep the scenario's own range.
type CurveConfig struct {
	MinIncome *int64 `toml:"min_income,omitempty"`
	MaxIncome *int64 `toml:"max_income,omitempty"`
	Step      *int64 `toml:"step,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			OutputDir: "output",
		},
		Publish: PublishConfig{
			BaseURL:  "https://policyengine.github.io/utah-sb60-calc",
			PostSlug: "utah-sb60-income-tax-reduction",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sb60calc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sb60calc")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file and applies environment overrides.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
// Environment overrides are applied on top of the file.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-selected config path
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-selected config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "sb60calc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "sb60calc")
}
