package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/policyengine/sb60calc/internal/impact"
	"github.com/policyengine/sb60calc/internal/model"
)

//go:embed scenarios/utah-sb60.toml
var defaultScenarioTOML string

// outcomeTolerance is how far a row's bucket shares may drift from 100
// after the source rounded them to one decimal.
const outcomeTolerance = 0.2

var defaultScenario = sync.OnceValues(func() (model.Scenario, error) {
	var sc model.Scenario
	if _, err := toml.Decode(defaultScenarioTOML, &sc); err != nil {
		return sc, fmt.Errorf("parsing embedded scenario: %w", err)
	}
	return sc, ValidateScenario(sc)
})

// DefaultScenario returns the built-in Utah SB60 scenario. It is parsed once
// per process.
func DefaultScenario() (model.Scenario, error) {
	sc, err := defaultScenario()
	return cloneScenario(sc), err
}

// LoadScenario reads a scenario from a .toml, .yaml or .yml file. An empty
// path selects the built-in scenario.
func LoadScenario(path string) (model.Scenario, error) {
	if path == "" {
		return DefaultScenario()
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-selected scenario path
	if err != nil {
		return model.Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}

	var sc model.Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &sc); err != nil {
			return sc, fmt.Errorf("parsing scenario %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &sc); err != nil {
			return sc, fmt.Errorf("parsing scenario %s: %w", path, err)
		}
	default:
		return sc, fmt.Errorf("unsupported scenario format %q (want .toml, .yaml or .yml)", ext)
	}

	if err := ValidateScenario(sc); err != nil {
		return sc, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ValidateScenario checks the household parameters and that the statewide
// tables line up. Failures match impact.ErrConfiguration.
func ValidateScenario(sc model.Scenario) error {
	if err := sc.Household.Validate(); err != nil {
		return err
	}

	sw := sc.Statewide
	n := len(sw.Deciles)
	if n == 0 {
		return &impact.ConfigError{Field: "statewide.deciles", Reason: "must not be empty"}
	}
	if len(sw.DecileOutcomes) != n {
		return &impact.ConfigError{
			Field:  "statewide.decile_outcomes",
			Reason: fmt.Sprintf("has %d rows, want %d", len(sw.DecileOutcomes), n),
		}
	}
	if len(sw.AvgImpactByDecile) != n {
		return &impact.ConfigError{
			Field:  "statewide.avg_impact_by_decile",
			Reason: fmt.Sprintf("has %d values, want %d", len(sw.AvgImpactByDecile), n),
		}
	}

	for i, o := range sw.DecileOutcomes {
		if err := checkOutcome(fmt.Sprintf("statewide.decile_outcomes[%d]", i), o); err != nil {
			return err
		}
	}
	return checkOutcome("statewide.all_outcome", sw.AllOutcome)
}

func checkOutcome(field string, o model.Outcome) error {
	total := o.Total()
	if math.IsNaN(total) || math.Abs(total-100) > outcomeTolerance {
		return &impact.ConfigError{Field: field, Reason: fmt.Sprintf("shares sum to %.1f, want 100", total)}
	}
	return nil
}

// ApplyCurve overrides the sampled range of p with any values set in c.
func ApplyCurve(p impact.Params, c CurveConfig) impact.Params {
	if c.MinIncome != nil {
		p.MinIncome = *c.MinIncome
	}
	if c.MaxIncome != nil {
		p.MaxIncome = *c.MaxIncome
	}
	if c.Step != nil {
		p.Step = *c.Step
	}
	return p
}

// cloneScenario copies the slices so callers cannot mutate the shared default.
func cloneScenario(sc model.Scenario) model.Scenario {
	sc.Bill.RateHistory = append([]model.RatePoint(nil), sc.Bill.RateHistory...)
	sc.Statewide.Deciles = append([]int(nil), sc.Statewide.Deciles...)
	sc.Statewide.DecileOutcomes = append([]model.Outcome(nil), sc.Statewide.DecileOutcomes...)
	sc.Statewide.AvgImpactByDecile = append([]float64(nil), sc.Statewide.AvgImpactByDecile...)
	return sc
}
