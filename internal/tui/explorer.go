// Package tui provides the interactive Bubble Tea views for sb60calc.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/policyengine/sb60calc/internal/cli"
	"github.com/policyengine/sb60calc/internal/impact"
)

const (
	pageSteps     = 20
	minSparkWidth = 10
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Home     key.Binding
	End      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.PageDown, k.PageUp},
		{k.Home, k.End, k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "one step down")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "one step up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "j"), key.WithHelp("pgdn/j", fmt.Sprintf("%d steps down", pageSteps))),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "k"), key.WithHelp("pgup/k", fmt.Sprintf("%d steps up", pageSteps))),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "lowest income")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "highest income")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Explorer is a Bubble Tea model for walking the household impact curve.
type Explorer struct {
	title  string
	params impact.Params
	points []impact.Point
	values []float64
	cursor int
	width  int

	keys keyMap
	help help.Model
}

// NewExplorer samples the curve for p and places the cursor on the sample
// nearest the lower anchor.
func NewExplorer(title string, p impact.Params) (Explorer, error) {
	points, err := impact.Curve(p)
	if err != nil {
		return Explorer{}, err
	}

	values := make([]float64, len(points))
	for i, pt := range points {
		values[i] = pt.Impact
	}

	start := int(math.Round((p.Low.Income - float64(p.MinIncome)) / float64(p.Step)))
	start = min(max(start, 0), len(points)-1)

	return Explorer{
		title:  title,
		params: p,
		points: points,
		values: values,
		cursor: start,
		width:  80,
		keys:   defaultKeys,
		help:   help.New(),
	}, nil
}

// Init implements tea.Model.
func (e Explorer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.help.Width = msg.Width
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, e.keys.Quit):
			return e, tea.Quit
		case key.Matches(msg, e.keys.Help):
			e.help.ShowAll = !e.help.ShowAll
		case key.Matches(msg, e.keys.Left):
			e.move(-1)
		case key.Matches(msg, e.keys.Right):
			e.move(1)
		case key.Matches(msg, e.keys.PageDown):
			e.move(-pageSteps)
		case key.Matches(msg, e.keys.PageUp):
			e.move(pageSteps)
		case key.Matches(msg, e.keys.Home):
			e.cursor = 0
		case key.Matches(msg, e.keys.End):
			e.cursor = len(e.points) - 1
		}
	}
	return e, nil
}

func (e *Explorer) move(delta int) {
	e.cursor = min(max(e.cursor+delta, 0), len(e.points)-1)
}

// Current returns the sample under the cursor.
func (e Explorer) Current() impact.Point {
	return e.points[e.cursor]
}

// View implements tea.Model.
func (e Explorer) View() string {
	accent := lipgloss.NewStyle().Foreground(cli.ColorTeal).Bold(true)
	muted := lipgloss.NewStyle().Foreground(cli.ColorGray400)

	pt := e.Current()
	status := muted.Render("at or below threshold, no change")
	if float64(pt.Income) > e.params.Threshold {
		status = accent.Render(fmt.Sprintf("slope %s per $1,000", cli.FormatDollars(e.params.Slope()*1000)))
	}

	sparkWidth := max(e.width-4, minSparkWidth)
	spark := cli.Downsample(e.values, sparkWidth)
	mark := 0
	if len(e.values) > 1 {
		mark = int(math.Round(float64(e.cursor) * float64(len(spark)-1) / float64(len(e.values)-1)))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(e.title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Employment income     %s\n", accent.Render(cli.FormatIncome(pt.Income)))
	fmt.Fprintf(&b, "  Change in net income  %s\n", accent.Render(cli.FormatDollars(pt.Impact)))
	fmt.Fprintf(&b, "  %s\n\n", status)
	b.WriteString("  " + cli.RenderSparkline(spark, mark) + "\n")
	b.WriteString("  " + muted.Render(axisLabels(e.points[0].Income, e.points[len(e.points)-1].Income, len(spark))) + "\n\n")
	b.WriteString("  " + e.help.View(e.keys) + "\n")
	return b.String()
}

// axisLabels puts lo at the left and hi at the right of a width-cell axis.
func axisLabels(lo, hi int64, width int) string {
	left, right := cli.FormatIncome(lo), cli.FormatIncome(hi)
	gap := max(width-len(left)-len(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
