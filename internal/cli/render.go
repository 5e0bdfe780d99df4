package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/policyengine/sb60calc/internal/model"
)

// PolicyEngine palette, shared with the chart pages.
var (
	ColorTeal      = lipgloss.Color("#319795")
	ColorTealLight = lipgloss.Color("#81E6D9")
	ColorGray300   = lipgloss.Color("#D1D5DB")
	ColorGray400   = lipgloss.Color("#9CA3AF")
	ColorGray600   = lipgloss.Color("#4B5563")
	ColorText      = lipgloss.Color("#F9FAFB")
	ColorBorder    = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTeal)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// Outcome bucket colors, in Outcome field order.
	outcomeStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(ColorTeal),
		lipgloss.NewStyle().Foreground(ColorTealLight),
		lipgloss.NewStyle().Foreground(ColorGray300),
		lipgloss.NewStyle().Foreground(ColorGray400),
		lipgloss.NewStyle().Foreground(ColorGray600),
	}
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Separator is a row value that renders as a horizontal rule.
var Separator = []string{"---"}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned and
// the rest are right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i := 0; i < numCols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule("╭", "┬", "╮", widths))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, widths, headerStyle, false))
		b.WriteString(rule("├", "┼", "┤", widths))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == Separator[0] {
			b.WriteString(rule("├", "┼", "┤", widths))
			continue
		}
		b.WriteString(line(row, widths, valueStyle, true))
	}
	b.WriteString(rule("╰", "┴", "╯", widths))

	return b.String()
}

func rule(left, mid, right string, widths []int) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func line(cells []string, widths []int, style lipgloss.Style, alignRight bool) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("│"))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", w-lipgloss.Width(cell))
		if alignRight && i > 0 {
			b.WriteString(style.Render(" " + pad + cell + " "))
		} else {
			b.WriteString(style.Render(" " + cell + pad + " "))
		}
		b.WriteString(dimStyle.Render("│"))
	}
	b.WriteString("\n")
	return b.String()
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline draws values as unicode blocks, scaled to the largest
// value. When mark is a valid index that column is highlighted.
func RenderSparkline(values []float64, mark int) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for i, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		block := string(sparkBlocks[idx])
		if i == mark {
			b.WriteString(headerStyle.Render(block))
		} else {
			b.WriteString(block)
		}
	}
	return b.String()
}

// Downsample picks n evenly spaced values, always keeping the last one.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	if n == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

// RenderBar renders a horizontal bar proportional to value/maxValue.
func RenderBar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := min(int(value/maxValue*float64(width)+0.5), width)
	return outcomeStyles[0].Render(strings.Repeat("█", n))
}

// RenderShareBar renders an outcome as a stacked bar of width cells.
func RenderShareBar(o model.Outcome, width int) string {
	shares := []float64{o.GainMore5, o.GainLess5, o.NoChange, o.LossLess5, o.LossMore5}

	// Round cumulative edges so segments always add up to the full width.
	var b strings.Builder
	cum, edge := 0.0, 0
	for i, s := range shares {
		cum += s
		next := min(int(cum/100*float64(width)+0.5), width)
		if n := next - edge; n > 0 {
			b.WriteString(outcomeStyles[i].Render(strings.Repeat("█", n)))
		}
		edge = max(edge, next)
	}
	return b.String()
}

// Legend describes the share bar colors.
func Legend() string {
	labels := []string{"Gain >5%", "Gain <5%", "No change", "Loss <5%", "Loss >5%"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s %s", outcomeStyles[i].Render("█"), l)
	}
	return "  " + strings.Join(parts, "  ")
}
