// Package model defines the reference data for a tax reform scenario.
package model

import "github.com/policyengine/sb60calc/internal/impact"

// Scenario bundles everything the report needs about one reform. Values are
// outputs of an external microsimulation and are treated as read-only.
type Scenario struct {
	Bill      BillInfo      `toml:"bill" yaml:"bill"`
	Household impact.Params `toml:"household" yaml:"household"`
	Statewide Statewide     `toml:"statewide" yaml:"statewide"`
}

// BillInfo describes the reform being analyzed.
type BillInfo struct {
	ID           string  `toml:"id" yaml:"id"`
	State        string  `toml:"state" yaml:"state"`
	Title        string  `toml:"title" yaml:"title"`
	Sponsor      string  `toml:"sponsor" yaml:"sponsor"`
	BillURL      string  `toml:"bill_url" yaml:"bill_url"`
	Year         int     `toml:"year" yaml:"year"`
	CurrentRate  float64 `toml:"current_rate" yaml:"current_rate"`
	ProposedRate float64 `toml:"proposed_rate" yaml:"proposed_rate"`
	IntroducedOn string  `toml:"introduced_on" yaml:"introduced_on"`

	// Prior flat rates, oldest first, ending with CurrentRate.
	RateHistory []RatePoint `toml:"rate_history" yaml:"rate_history"`

	// Example household linked from the post.
	ExampleIncome      float64 `toml:"example_income" yaml:"example_income"`
	ExampleReportURL   string  `toml:"example_report_url" yaml:"example_report_url"`
	StatewideReportURL string  `toml:"statewide_report_url" yaml:"statewide_report_url"`
}

// RatePoint is the flat income tax rate in force for a tax year.
type RatePoint struct {
	Year int     `toml:"year" yaml:"year"`
	Rate float64 `toml:"rate" yaml:"rate"`
}

// Outcome holds the percentage of people in each net income change bucket.
type Outcome struct {
	GainMore5 float64 `toml:"gain_more_5" yaml:"gain_more_5"`
	GainLess5 float64 `toml:"gain_less_5" yaml:"gain_less_5"`
	NoChange  float64 `toml:"no_change" yaml:"no_change"`
	LossLess5 float64 `toml:"loss_less_5" yaml:"loss_less_5"`
	LossMore5 float64 `toml:"loss_more_5" yaml:"loss_more_5"`
}

// Total is the sum of all buckets; it should be 100.
func (o Outcome) Total() float64 {
	return o.GainMore5 + o.GainLess5 + o.NoChange + o.LossLess5 + o.LossMore5
}

// Gainers is the share of people whose net income rises.
func (o Outcome) Gainers() float64 {
	return o.GainMore5 + o.GainLess5
}

// Statewide holds population-level results.
type Statewide struct {
	Deciles           []int     `toml:"deciles" yaml:"deciles"`
	DecileOutcomes    []Outcome `toml:"decile_outcomes" yaml:"decile_outcomes"`
	AllOutcome        Outcome   `toml:"all_outcome" yaml:"all_outcome"`
	AvgImpactByDecile []float64 `toml:"avg_impact_by_decile" yaml:"avg_impact_by_decile"`

	RevenueImpactMillions  float64 `toml:"revenue_impact_millions" yaml:"revenue_impact_millions"`
	PercentBenefiting      float64 `toml:"percent_benefiting" yaml:"percent_benefiting"`
	PovertyImpactPct       float64 `toml:"poverty_impact_pct" yaml:"poverty_impact_pct"`
	DeepPovertyImpactPct   float64 `toml:"deep_poverty_impact_pct" yaml:"deep_poverty_impact_pct"`
	GiniImpactPct          float64 `toml:"gini_impact_pct" yaml:"gini_impact_pct"`
	AvgBenefitPerHousehold float64 `toml:"avg_benefit_per_household" yaml:"avg_benefit_per_household"`
}

// DecileRow is one decile joined across the statewide tables.
type DecileRow struct {
	Decile    int
	Label     string
	Outcome   Outcome
	AvgImpact float64
}
