package tui

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/policyengine/sb60calc/internal/config"
)

// setupValues holds the form fields as the user edits them.
type setupValues struct {
	outputDir    string
	baseURL      string
	scenarioFile string
	step         string
}

func newSetupValues(cfg config.Config) setupValues {
	v := setupValues{
		outputDir:    cfg.General.OutputDir,
		baseURL:      cfg.Publish.BaseURL,
		scenarioFile: cfg.General.ScenarioFile,
	}
	if cfg.Curve.Step != nil {
		v.step = strconv.FormatInt(*cfg.Curve.Step, 10)
	}
	return v
}

func newSetupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Charts go in <dir>/charts, the post in <dir>.").
				Value(&v.outputDir).
				Validate(requireNonEmpty),
			huh.NewInput().
				Title("Chart base URL").
				Description("Where the chart pages are published; the post embeds <url>/<chart>.html.").
				Value(&v.baseURL).
				Validate(validateBaseURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Scenario file").
				Description("TOML or YAML. Leave blank for the built-in Utah SB60 scenario.").
				Value(&v.scenarioFile).
				Validate(validateScenarioPath),
			huh.NewInput().
				Title("Curve step ($)").
				Description("Income increment between samples. Leave blank to use the scenario's.").
				Value(&v.step).
				Validate(validateStep),
		),
	).WithTheme(huh.ThemeCharm())
}

// apply copies validated form values into cfg.
func (v setupValues) apply(cfg config.Config) config.Config {
	cfg.General.OutputDir = strings.TrimSpace(v.outputDir)
	cfg.Publish.BaseURL = strings.TrimSpace(v.baseURL)
	cfg.General.ScenarioFile = strings.TrimSpace(v.scenarioFile)
	cfg.Curve.Step = nil
	if s := strings.TrimSpace(v.step); s != "" {
		step, _ := strconv.ParseInt(s, 10, 64)
		cfg.Curve.Step = &step
	}
	return cfg
}

// RunSetup shows the setup form prefilled from cfg and returns the edited
// config. It returns huh.ErrUserAborted if the user cancels.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := newSetupValues(cfg)
	if err := newSetupForm(&v).Run(); err != nil {
		return cfg, err
	}
	return v.apply(cfg), nil
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL such as https://example.org/charts")
	}
	return nil
}

func validateScenarioPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".toml", ".yaml", ".yml":
		return nil
	}
	return errors.New("must end in .toml, .yaml or .yml")
}

func validateStep(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive whole number of dollars")
	}
	return nil
}
