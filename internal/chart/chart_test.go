package chart

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyengine/sb60calc/internal/impact"
	"github.com/policyengine/sb60calc/internal/model"
)

func sampleRows() []model.DecileRow {
	return []model.DecileRow{
		{Decile: 1, Label: "1", Outcome: model.Outcome{GainLess5: 17.2, NoChange: 82.8}, AvgImpact: 5},
		{Decile: 2, Label: "2", Outcome: model.Outcome{GainLess5: 99.1, NoChange: 0.9}, AvgImpact: 583},
	}
}

func TestNetIncomeChange(t *testing.T) {
	points := []impact.Point{{Income: 0, Impact: 0}, {Income: 50, Impact: 0}, {Income: 100, Impact: 1.5}}
	fig := NetIncomeChange(NetIncomeChangeTitle(), points)

	require.Len(t, fig.Data, 1)
	assert.Equal(t, []int64{0, 50, 100}, fig.Data[0].X)
	assert.Equal(t, []float64{0, 0, 1.5}, fig.Data[0].Y)
	assert.Equal(t, PrimaryTeal, fig.Data[0].Line.Color)
	assert.Equal(t, "Figure 1: Change in net income for a single adult", fig.Layout.Title.Text)
}

func TestWinnersByDecile(t *testing.T) {
	all := model.Outcome{GainLess5: 53.2, NoChange: 46.8}
	fig := WinnersByDecile("Figure 2", all, sampleRows())

	// Five categories for the "All" row and five for the decile rows.
	require.Len(t, fig.Data, 10)

	allGain := fig.Data[1]
	assert.Equal(t, "Gain <5%", allGain.Name)
	assert.Equal(t, []string{"All"}, allGain.Y)
	assert.Equal(t, []string{"53.2%"}, allGain.Text)
	assert.Equal(t, "x", allGain.XAxis)
	assert.True(t, *allGain.ShowLegend)
	require.NotNil(t, allGain.TextFont)
	assert.Equal(t, Black, allGain.TextFont.Color)

	decileNoChange := fig.Data[7]
	assert.Equal(t, "No change", decileNoChange.Name)
	assert.Equal(t, []string{"1", "2"}, decileNoChange.Y)
	assert.Equal(t, []string{"82.8%", "0.9%"}, decileNoChange.Text)
	assert.Equal(t, "y2", decileNoChange.YAxis)
	assert.False(t, *decileNoChange.ShowLegend)

	// Zero shares get no label.
	assert.Equal(t, []string{"", ""}, fig.Data[5].Text)
	assert.Nil(t, fig.Data[5].TextFont)

	assert.Equal(t, "stack", fig.Layout.BarMode)
	assert.Equal(t, "x2", fig.Layout.XAxis.Matches)
	assert.InDelta(t, 1.0, fig.Layout.YAxis.Domain[1], 1e-12)
	assert.Less(t, fig.Layout.YAxis2.Domain[1], fig.Layout.YAxis.Domain[0])
}

func TestAvgBenefitByDecile(t *testing.T) {
	fig := AvgBenefitByDecile("Figure 3", sampleRows())

	require.Len(t, fig.Data, 1)
	assert.Equal(t, []int{1, 2}, fig.Data[0].X)
	assert.Equal(t, []float64{5, 583}, fig.Data[0].Y)
	assert.Equal(t, []string{"$5", "$583"}, fig.Data[0].Text)
	assert.Equal(t, []int{1, 2}, fig.Layout.XAxis.TickVals)
}

func TestTitles(t *testing.T) {
	bill := model.BillInfo{ID: "SB60", State: "Utah"}
	assert.Equal(t, "Figure 2: Winners of Utah SB60 by income decile", WinnersTitle(bill))
	assert.Equal(t, "Figure 3: Average benefit of Utah SB60 by income decile", AvgBenefitTitle(bill))
}

func TestWriteHTML(t *testing.T) {
	fig := AvgBenefitByDecile("Figure 3 <draft>", sampleRows())

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, fig))
	page := buf.String()

	assert.Contains(t, page, "https://cdn.plot.ly/plotly-3.1.1.min.js")
	assert.Contains(t, page, "Plotly.newPlot(")
	assert.Contains(t, page, `"hovertemplate":"Income decile: %{x}`)
	assert.NotContains(t, page, "<draft>", "markup inside JSON must stay escaped")

	// The layout argument is valid JSON that round-trips the title.
	start := strings.Index(page, `{"title"`)
	require.GreaterOrEqual(t, start, 0)
	dec := json.NewDecoder(strings.NewReader(page[start:]))
	var layout Layout
	require.NoError(t, dec.Decode(&layout))
	assert.Equal(t, "Figure 3 <draft>", layout.Title.Text)
}
