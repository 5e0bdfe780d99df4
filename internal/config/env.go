package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are read from the process environment and win over the file.
type envOverrides struct {
	OutputDir    string `env:"SB60_OUTPUT_DIR"`
	BaseURL      string `env:"SB60_BASE_URL"`
	ScenarioFile string `env:"SB60_SCENARIO"`
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.OutputDir != "" {
		cfg.General.OutputDir = o.OutputDir
	}
	if o.BaseURL != "" {
		cfg.Publish.BaseURL = o.BaseURL
	}
	if o.ScenarioFile != "" {
		cfg.General.ScenarioFile = o.ScenarioFile
	}
	return nil
}
