package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyengine/sb60calc/internal/config"
	"github.com/policyengine/sb60calc/internal/impact"
	"github.com/policyengine/sb60calc/internal/store"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	sc, err := config.DefaultScenario()
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	return Options{
		Scenario:     sc,
		ScenarioName: "SB60",
		OutputDir:    t.TempDir(),
		BaseURL:      "https://example.org/charts",
		PostSlug:     "utah-sb60-income-tax-reduction",
		Log:          logger,
	}
}

func TestDecileRows(t *testing.T) {
	sc, err := config.DefaultScenario()
	require.NoError(t, err)

	rows := DecileRows(sc.Statewide)
	require.Len(t, rows, 10)
	assert.Equal(t, 1, rows[0].Decile)
	assert.Equal(t, "1", rows[0].Label)
	assert.Equal(t, 17.2, rows[0].Outcome.GainLess5)
	assert.Equal(t, 5.0, rows[0].AvgImpact)
	assert.Equal(t, "10", rows[9].Label)
	assert.Equal(t, 583.0, rows[9].AvgImpact)
}

func TestSummarizeDeciles(t *testing.T) {
	sc, err := config.DefaultScenario()
	require.NoError(t, err)

	s := SummarizeDeciles(DecileRows(sc.Statewide))
	assert.InDelta(t, 150.0, s.MeanAvgImpact, 1e-9)
	assert.Equal(t, 9, s.MostGainers.Decile)
	assert.Equal(t, 2, s.FewestGainers.Decile)
	assert.Equal(t, 10, s.DecilesBenefit)
	assert.InDelta(t, 116.6, s.TopToBottomRatio, 1e-9)

	assert.Equal(t, DecileSummary{}, SummarizeDeciles(nil))
}

func TestGenerate_WritesAllArtifacts(t *testing.T) {
	opts := testOptions(t)

	res, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4001, res.Samples)
	require.Len(t, res.Artifacts, 4)
	assert.Equal(t, 4, res.Count(StatusWritten))

	for _, name := range []string{
		"charts/net-income-change.html",
		"charts/winners-by-decile.html",
		"charts/avg-benefit-by-decile.html",
		"utah-sb60-income-tax-reduction.md",
	} {
		data, err := os.ReadFile(filepath.Join(opts.OutputDir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}

	md, err := os.ReadFile(filepath.Join(opts.OutputDir, "utah-sb60-income-tax-reduction.md"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(md), "https://example.org/charts/winners-by-decile.html"))
}

func TestGenerate_SkipsUnchangedWithStore(t *testing.T) {
	opts := testOptions(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	opts.Store = st

	first, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Count(StatusWritten))

	second, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, second.Count(StatusUnchanged))

	// A file edited on disk is rewritten even though the store remembers it.
	edited := filepath.Join(opts.OutputDir, "charts", "net-income-change.html")
	require.NoError(t, os.WriteFile(edited, []byte("tampered"), 0o600))
	third, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Count(StatusWritten))

	opts.Force = true
	forced, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, forced.Count(StatusWritten))

	runs, err := st.ListRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 4)
}

func TestGenerate_InvalidScenarioWritesNothing(t *testing.T) {
	opts := testOptions(t)
	opts.Scenario.Household.Step = 0

	_, err := Generate(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, impact.ErrConfiguration)

	entries, err := os.ReadDir(opts.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_Canceled(t *testing.T) {
	opts := testOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

