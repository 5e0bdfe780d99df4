// Package post renders the markdown article that embeds the report charts.
package post

import (
	_ "embed"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/policyengine/sb60calc/internal/chart"
	"github.com/policyengine/sb60calc/internal/impact"
	"github.com/policyengine/sb60calc/internal/model"
)

//go:embed post.md.tmpl
var postTemplate string

// Input is everything the article needs.
type Input struct {
	Scenario model.Scenario
	// BaseURL is where the chart pages are published, without the page name.
	BaseURL string
}

// data is the template view of Input with derived text filled in.
type data struct {
	Bill  model.BillInfo
	Stats model.Statewide

	History     []model.RatePoint
	FirstRate   model.RatePoint
	HistoryText string
	CutOrdinal  string

	RateCutPoints float64
	Threshold     float64
	ExampleImpact float64

	RevenueVerb string
	RevenueBase string
	RevenueAbs  float64

	PovertyBullet   string
	PovertySentence string

	GiniVerb   string
	GiniGerund string
	GiniAbs    float64

	BottomDecile float64
	TopDecile    float64
}

// Render writes the article for in to w.
func Render(w io.Writer, in Input) error {
	d, err := buildData(in.Scenario)
	if err != nil {
		return err
	}

	tmpl, err := template.New("post").Funcs(funcs(in.BaseURL)).Parse(postTemplate)
	if err != nil {
		return fmt.Errorf("parsing post template: %w", err)
	}
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("rendering post: %w", err)
	}
	return nil
}

func buildData(sc model.Scenario) (data, error) {
	sw := sc.Statewide
	if len(sw.AvgImpactByDecile) == 0 {
		return data{}, fmt.Errorf("rendering post: %w", &impact.ConfigError{
			Field: "statewide.avg_impact_by_decile", Reason: "must not be empty",
		})
	}

	example, err := impact.At(sc.Household, sc.Bill.ExampleIncome)
	if err != nil {
		return data{}, fmt.Errorf("example household: %w", err)
	}

	d := data{
		Bill:          sc.Bill,
		Stats:         sw,
		History:       sc.Bill.RateHistory,
		CutOrdinal:    ordinalWord(len(sc.Bill.RateHistory)),
		RateCutPoints: roundTo(sc.Bill.CurrentRate-sc.Bill.ProposedRate, 4),
		Threshold:     sc.Household.Threshold,
		ExampleImpact: math.Round(example),
		RevenueAbs:    math.Abs(sw.RevenueImpactMillions),
		GiniAbs:       math.Abs(sw.GiniImpactPct),
		BottomDecile:  sw.AvgImpactByDecile[0],
		TopDecile:     sw.AvgImpactByDecile[len(sw.AvgImpactByDecile)-1],
	}
	if len(d.History) > 0 {
		d.FirstRate = d.History[0]
		d.HistoryText = joinRates(d.History[1:])
	}

	d.RevenueVerb, d.RevenueBase = "Reduces", "reduce"
	if sw.RevenueImpactMillions > 0 {
		d.RevenueVerb, d.RevenueBase = "Raises", "raise"
	}

	d.GiniVerb, d.GiniGerund = "Raises", "raising"
	if sw.GiniImpactPct < 0 {
		d.GiniVerb, d.GiniGerund = "Lowers", "lowering"
	}

	if sw.PovertyImpactPct == 0 && sw.DeepPovertyImpactPct == 0 {
		d.PovertyBullet = "Has no effect on the Supplemental Poverty Measure"
		d.PovertySentence = "have no effect on poverty or deep poverty"
	} else {
		d.PovertyBullet = fmt.Sprintf("Changes the Supplemental Poverty Measure by %s", signedPct(sw.PovertyImpactPct))
		d.PovertySentence = fmt.Sprintf("change poverty by %s and deep poverty by %s",
			signedPct(sw.PovertyImpactPct), signedPct(sw.DeepPovertyImpactPct))
	}

	return d, nil
}

func funcs(baseURL string) template.FuncMap {
	base := strings.TrimRight(baseURL, "/")
	return template.FuncMap{
		"pct":   pct,
		"money": money,
		"num":   humanize.Ftoa,
		"chartURL": func(page string) (string, error) {
			if !slices.Contains(chart.Pages, page) {
				return "", fmt.Errorf("unknown chart page %q", page)
			}
			return base + "/" + page + ".html", nil
		},
	}
}

func pct(v float64) string {
	return humanize.Ftoa(v) + "%"
}

func signedPct(v float64) string {
	if v > 0 {
		return "+" + pct(v)
	}
	return pct(v)
}

// money formats whole and fractional dollar amounts: $80,000, $83.6.
func money(v float64) string {
	if v < 0 {
		return "-" + money(-v)
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}

// joinRates lists rates as "4.85% in 2022, 4.65% in 2023, and 4.5% in 2025".
func joinRates(points []model.RatePoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%s in %d", pct(p.Rate), p.Year)
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
}

var ordinalWords = []string{"", "first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth"}

func ordinalWord(n int) string {
	if n > 0 && n < len(ordinalWords) {
		return ordinalWords[n]
	}
	return humanize.Ordinal(n)
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
