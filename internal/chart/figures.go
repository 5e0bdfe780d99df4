package chart

import (
	"fmt"
	"strconv"

	"github.com/policyengine/sb60calc/internal/impact"
	"github.com/policyengine/sb60calc/internal/model"
)

// NetIncomeChange plots the household impact curve as a line.
func NetIncomeChange(title string, points []impact.Point) Figure {
	xs := make([]int64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Income
		ys[i] = p.Impact
	}

	return Figure{
		Data: []Trace{{
			Type:          "scatter",
			Mode:          "lines",
			X:             xs,
			Y:             ys,
			Line:          &Line{Color: PrimaryTeal},
			ShowLegend:    ptr(false),
			HoverTemplate: "Employment income: $%{x:,}<br>Change in net income: $%{y:.2f}<extra></extra>",
		}},
		Layout: Layout{
			Title:  &Title{Text: title},
			Font:   baseFont(),
			XAxis:  &Axis{Title: &Title{Text: "Employment income ($)"}, TickFormat: ","},
			YAxis:  &Axis{Title: &Title{Text: "Change in net income ($)"}, TickFormat: ","},
			Margin: defaultMargin(80),
			Images: watermark(-0.18),
		},
	}
}

// outcomeCategory is one stacked segment of the winners chart.
type outcomeCategory struct {
	group     string
	legend    string
	color     string
	textColor string
	value     func(model.Outcome) float64
}

var outcomeCategories = []outcomeCategory{
	{"gain_more_than_5%", "Gain >5%", PrimaryTeal, "", func(o model.Outcome) float64 { return o.GainMore5 }},
	{"gain_less_than_5%", "Gain <5%", PrimaryTealLight, Black, func(o model.Outcome) float64 { return o.GainLess5 }},
	{"no_change", "No change", Gray300, Black, func(o model.Outcome) float64 { return o.NoChange }},
	{"loss_less_than_5%", "Loss <5%", Gray400, "", func(o model.Outcome) float64 { return o.LossLess5 }},
	{"loss_more_than_5%", "Loss >5%", Gray600, "", func(o model.Outcome) float64 { return o.LossMore5 }},
}

// WinnersByDecile stacks outcome shares horizontally: a thin "All" row on
// top and one bar per decile below, sharing the percentage axis.
func WinnersByDecile(title string, all model.Outcome, rows []model.DecileRow) Figure {
	labels := make([]string, len(rows))
	outcomes := make([]model.Outcome, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
		outcomes[i] = r.Outcome
	}

	var traces []Trace
	traces = append(traces, stackedBars([]string{"All"}, []model.Outcome{all}, "x", "y", true)...)
	traces = append(traces, stackedBars(labels, outcomes, "x2", "y2", false)...)

	// Two rows, heights 10%/90% with 0.02 spacing between them.
	const spacing = 0.02
	topHeight := (1 - spacing) * 0.1

	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "stack",
			Title:   &Title{Text: title, X: ptr(0.0)},
			Font:    baseFont(),
			XAxis: &Axis{
				Title:          &Title{Text: ""},
				TickSuffix:     "%",
				Range:          []float64{0, 100},
				Anchor:         "y",
				Matches:        "x2",
				ShowTickLabels: ptr(false),
			},
			XAxis2: &Axis{
				Title:      &Title{Text: "Population share", Standoff: 20},
				TickSuffix: "%",
				Range:      []float64{0, 100},
				Anchor:     "y2",
			},
			YAxis: &Axis{
				Domain: []float64{1 - topHeight, 1},
				Anchor: "x",
			},
			YAxis2: &Axis{
				Title:      &Title{Text: "Income decile", Standoff: 15},
				Domain:     []float64{0, 1 - topHeight - spacing},
				Anchor:     "x2",
				AutoMargin: true,
			},
			Legend: &Legend{
				Orientation: "h",
				YAnchor:     "bottom",
				Y:           1.02,
				XAnchor:     "center",
				X:           0.5,
				TraceOrder:  "normal",
				Font:        &Font{Size: 11},
			},
			Margin: defaultMargin(100),
			Height: 550,
			Width:  800,
			Images: watermark(-0.16),
		},
	}
}

func stackedBars(labels []string, outcomes []model.Outcome, xaxis, yaxis string, showLegend bool) []Trace {
	traces := make([]Trace, 0, len(outcomeCategories))
	for _, c := range outcomeCategories {
		values := make([]float64, len(outcomes))
		text := make([]string, len(outcomes))
		for i, o := range outcomes {
			values[i] = c.value(o)
			if values[i] > 0 {
				text[i] = formatPlain(values[i]) + "%"
			}
		}

		t := Trace{
			Type:          "bar",
			Orientation:   "h",
			Name:          c.legend,
			X:             values,
			Y:             labels,
			XAxis:         xaxis,
			YAxis:         yaxis,
			Marker:        &Marker{Color: c.color},
			Text:          text,
			TextPosition:  "inside",
			LegendGroup:   c.group,
			ShowLegend:    ptr(showLegend),
			HoverTemplate: "%{x}%<extra></extra>",
		}
		if c.textColor != "" {
			t.TextFont = &Font{Color: c.textColor}
		}
		traces = append(traces, t)
	}
	return traces
}

// AvgBenefitByDecile plots the average dollar impact per decile.
func AvgBenefitByDecile(title string, rows []model.DecileRow) Figure {
	deciles := make([]int, len(rows))
	values := make([]float64, len(rows))
	text := make([]string, len(rows))
	for i, r := range rows {
		deciles[i] = r.Decile
		values[i] = r.AvgImpact
		text[i] = "$" + formatPlain(r.AvgImpact)
	}

	return Figure{
		Data: []Trace{{
			Type:          "bar",
			X:             deciles,
			Y:             values,
			Text:          text,
			TextPosition:  "auto",
			Marker:        &Marker{Color: PrimaryTeal},
			HoverTemplate: "Income decile: %{x}<br>Average impact: $%{y:,.0f}<extra></extra>",
		}},
		Layout: Layout{
			Title:      &Title{Text: title},
			Font:       baseFont(),
			XAxis:      &Axis{Title: &Title{Text: "Income decile"}, TickVals: deciles},
			YAxis:      &Axis{Title: &Title{Text: "Average impact ($)"}, TickFormat: ","},
			ShowLegend: ptr(false),
			Margin:     defaultMargin(80),
			Images:     watermark(-0.18),
		},
	}
}

// formatPlain prints v without trailing zeros: 17.2, 0.9, 583.
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NetIncomeChangeTitle is the title of Figure 1.
func NetIncomeChangeTitle() string {
	return "Figure 1: Change in net income for a single adult"
}

// WinnersTitle is the title of Figure 2.
func WinnersTitle(bill model.BillInfo) string {
	return fmt.Sprintf("Figure 2: Winners of %s %s by income decile", bill.State, bill.ID)
}

// AvgBenefitTitle is the title of Figure 3.
func AvgBenefitTitle(bill model.BillInfo) string {
	return fmt.Sprintf("Figure 3: Average benefit of %s %s by income decile", bill.State, bill.ID)
}

// Page names, used as file stems under charts/ and in post embeds.
const (
	NetIncomeChangePage    = "net-income-change"
	WinnersByDecilePage    = "winners-by-decile"
	AvgBenefitByDecilePage = "avg-benefit-by-decile"
)

// Pages lists every page name in report order.
var Pages = []string{NetIncomeChangePage, WinnersByDecilePage, AvgBenefitByDecilePage}
