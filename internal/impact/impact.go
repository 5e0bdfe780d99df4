// Package impact estimates the change in household net income under a tax
// reform by linear interpolation over employment income.
package impact

import (
	"errors"
	"fmt"
	"math"
)

// MaxSamples caps how many points Curve will allocate.
const MaxSamples = 10_000_000

// ErrConfiguration matches every *ConfigError via errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigError reports structurally invalid estimator parameters. It is never
// transient; retrying with the same parameters fails the same way.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// Anchor is one end of the interpolation line.
type Anchor struct {
	Income float64 `toml:"income" yaml:"income"`
	Impact float64 `toml:"impact" yaml:"impact"`
}

// Params describes the sampled income range and the piecewise line.
type Params struct {
	MinIncome int64   `toml:"min_income" yaml:"min_income"`
	MaxIncome int64   `toml:"max_income" yaml:"max_income"`
	Step      int64   `toml:"step" yaml:"step"`
	Threshold float64 `toml:"threshold" yaml:"threshold"`
	Low       Anchor  `toml:"anchor_low" yaml:"anchor_low"`
	High      Anchor  `toml:"anchor_high" yaml:"anchor_high"`
}

// Point is one sampled income with its projected net income change.
type Point struct {
	Income int64
	Impact float64
}

// DefaultParams returns the single-adult SB60 scenario.
func DefaultParams() Params {
	return Params{
		MinIncome: 0,
		MaxIncome: 200_000,
		Step:      50,
		Threshold: 20_500,
		Low:       Anchor{Income: 21_000, Impact: 10},
		High:      Anchor{Income: 200_000, Impact: 100},
	}
}

// Validate checks p without computing anything.
func (p Params) Validate() error {
	if err := p.validateLine(); err != nil {
		return err
	}
	switch {
	case p.Step <= 0:
		return &ConfigError{Field: "step", Reason: fmt.Sprintf("must be positive, got %d", p.Step)}
	case p.MinIncome < 0:
		return &ConfigError{Field: "min_income", Reason: fmt.Sprintf("must be non-negative, got %d", p.MinIncome)}
	case p.MaxIncome < p.MinIncome:
		return &ConfigError{Field: "max_income", Reason: fmt.Sprintf("%d is below min_income %d", p.MaxIncome, p.MinIncome)}
	case (p.MaxIncome-p.MinIncome)/p.Step >= MaxSamples:
		return &ConfigError{Field: "step", Reason: fmt.Sprintf("%d is too small for the income range, limit is %d samples", p.Step, MaxSamples)}
	}
	return nil
}

// validateLine checks only the threshold and anchors, which is all At needs.
func (p Params) validateLine() error {
	finite := []struct {
		field string
		v     float64
	}{
		{"threshold", p.Threshold},
		{"anchor_low.income", p.Low.Income},
		{"anchor_low.impact", p.Low.Impact},
		{"anchor_high.income", p.High.Income},
		{"anchor_high.impact", p.High.Impact},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ConfigError{Field: f.field, Reason: "must be finite"}
		}
	}
	if p.Threshold < 0 {
		return &ConfigError{Field: "threshold", Reason: fmt.Sprintf("must be non-negative, got %g", p.Threshold)}
	}
	if p.High.Income == p.Low.Income {
		return &ConfigError{Field: "anchor_high.income", Reason: "equals anchor_low.income, slope is undefined"}
	}
	if p.High.Income < p.Low.Income {
		return &ConfigError{Field: "anchor_high.income", Reason: "must be above anchor_low.income"}
	}
	return nil
}

// Len returns the number of samples Curve produces for valid p.
func (p Params) Len() int {
	return int((p.MaxIncome-p.MinIncome)/p.Step) + 1
}

// Slope is the impact gained per dollar of income above the threshold.
func (p Params) Slope() float64 {
	return (p.High.Impact - p.Low.Impact) / (p.High.Income - p.Low.Income)
}

// Curve samples the impact at MinIncome, MinIncome+Step, ... up to the last
// value not above MaxIncome.
func Curve(p Params) ([]Point, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.Len()
	points := make([]Point, n)
	for i := range points {
		// Multiplying avoids overflowing past MaxIncome near the int64 limit.
		x := p.MinIncome + int64(i)*p.Step
		points[i] = Point{Income: x, Impact: eval(p, float64(x))}
	}
	return points, nil
}

// At evaluates the impact at a single income. Only the threshold and anchors
// are validated; the sampling range is ignored.
func At(p Params, income float64) (float64, error) {
	if err := p.validateLine(); err != nil {
		return 0, err
	}
	if math.IsNaN(income) || math.IsInf(income, 0) {
		return 0, &ConfigError{Field: "income", Reason: "must be finite"}
	}
	return eval(p, income), nil
}

func eval(p Params, x float64) float64 {
	if x <= p.Threshold {
		return 0
	}
	// Float rounding can miss a fractional anchor by one ulp, so pin it.
	// The low anchor is exact already: its offset term is zero.
	if x == p.High.Income {
		return p.High.Impact
	}
	return p.Low.Impact + (x-p.Low.Income)*(p.High.Impact-p.Low.Impact)/(p.High.Income-p.Low.Income)
}
