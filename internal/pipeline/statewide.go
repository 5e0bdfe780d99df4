// Package pipeline turns a scenario into report artifacts and tables.
package pipeline

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/policyengine/sb60calc/internal/model"
)

// DecileRows joins the per-decile tables. The scenario must have passed
// config.ValidateScenario so the tables have equal length.
func DecileRows(sw model.Statewide) []model.DecileRow {
	return lo.Map(sw.Deciles, func(d int, i int) model.DecileRow {
		return model.DecileRow{
			Decile:    d,
			Label:     strconv.Itoa(d),
			Outcome:   sw.DecileOutcomes[i],
			AvgImpact: sw.AvgImpactByDecile[i],
		}
	})
}

// DecileSummary describes how the benefit is spread across deciles.
type DecileSummary struct {
	MeanAvgImpact    float64
	MostGainers      model.DecileRow
	FewestGainers    model.DecileRow
	DecilesBenefit   int // deciles where anyone gains
	TopToBottomRatio float64
}

// SummarizeDeciles computes cross-decile figures for the terminal report.
func SummarizeDeciles(rows []model.DecileRow) DecileSummary {
	if len(rows) == 0 {
		return DecileSummary{}
	}

	impacts := lo.Map(rows, func(r model.DecileRow, _ int) float64 { return r.AvgImpact })
	s := DecileSummary{
		MeanAvgImpact: lo.Sum(impacts) / float64(len(impacts)),
		MostGainers: lo.MaxBy(rows, func(a, b model.DecileRow) bool {
			return a.Outcome.Gainers() > b.Outcome.Gainers()
		}),
		FewestGainers: lo.MinBy(rows, func(a, b model.DecileRow) bool {
			return a.Outcome.Gainers() < b.Outcome.Gainers()
		}),
		DecilesBenefit: lo.CountBy(rows, func(r model.DecileRow) bool { return r.Outcome.Gainers() > 0 }),
	}
	if bottom := rows[0].AvgImpact; bottom != 0 {
		s.TopToBottomRatio = rows[len(rows)-1].AvgImpact / bottom
	}
	return s
}
