package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyengine/sb60calc/internal/config"
	"github.com/policyengine/sb60calc/internal/impact"
)

func press(t *testing.T, e Explorer, msgs ...tea.Msg) Explorer {
	t.Helper()
	for _, msg := range msgs {
		m, _ := e.Update(msg)
		var ok bool
		e, ok = m.(Explorer)
		require.True(t, ok)
	}
	return e
}

func TestExplorer_StartsAtLowAnchor(t *testing.T) {
	e, err := NewExplorer("SB60", impact.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, impact.Point{Income: 21_000, Impact: 10}, e.Current())
}

func TestExplorer_Navigation(t *testing.T) {
	e, err := NewExplorer("SB60", impact.DefaultParams())
	require.NoError(t, err)

	e = press(t, e, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, int64(21_050), e.Current().Income)

	e = press(t, e, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, int64(20_050), e.Current().Income)
	assert.Equal(t, 0.0, e.Current().Impact)

	e = press(t, e, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, impact.Point{Income: 200_000, Impact: 100}, e.Current())

	e = press(t, e, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, int64(200_000), e.Current().Income, "cursor stays in range")

	e = press(t, e, tea.KeyMsg{Type: tea.KeyHome}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, int64(0), e.Current().Income)
}

func TestExplorer_QuitAndView(t *testing.T) {
	e, err := NewExplorer("SB60", impact.DefaultParams())
	require.NoError(t, err)
	e = press(t, e, tea.WindowSizeMsg{Width: 60, Height: 20})

	view := e.View()
	assert.Contains(t, view, "$21,000")
	assert.Contains(t, view, "$10.00")
	assert.Contains(t, view, "$200,000")

	_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExplorer_InvalidParams(t *testing.T) {
	p := impact.DefaultParams()
	p.Step = 0
	_, err := NewExplorer("bad", p)
	assert.ErrorIs(t, err, impact.ErrConfiguration)
}

func TestSetupValues_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	v := newSetupValues(cfg)
	v.outputDir = " site "
	v.step = "100"
	v.scenarioFile = "hb1.yaml"

	got := v.apply(cfg)
	assert.Equal(t, "site", got.General.OutputDir)
	assert.Equal(t, "hb1.yaml", got.General.ScenarioFile)
	require.NotNil(t, got.Curve.Step)
	assert.Equal(t, int64(100), *got.Curve.Step)

	v.step = ""
	assert.Nil(t, v.apply(cfg).Curve.Step)
}

func TestSetupValidators(t *testing.T) {
	assert.Error(t, requireNonEmpty("  "))
	assert.NoError(t, validateBaseURL("https://policyengine.github.io/utah-sb60-calc"))
	assert.Error(t, validateBaseURL("charts/"))
	assert.NoError(t, validateScenarioPath(""))
	assert.NoError(t, validateScenarioPath("a.YML"))
	assert.Error(t, validateScenarioPath("a.json"))
	assert.NoError(t, validateStep("50"))
	assert.Error(t, validateStep("0"))
	assert.Error(t, validateStep("ten"))
}
