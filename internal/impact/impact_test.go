package impact

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve_DefaultScenario(t *testing.T) {
	points, err := Curve(DefaultParams())
	require.NoError(t, err)
	require.Len(t, points, 4001)

	byIncome := make(map[int64]float64, len(points))
	for _, p := range points {
		byIncome[p.Income] = p.Impact
	}

	assert.Equal(t, 0.0, byIncome[20_500], "threshold is inclusive")
	assert.Equal(t, 10.0, byIncome[21_000])
	assert.Equal(t, 100.0, byIncome[200_000])
	assert.InDelta(t, 39.66, byIncome[80_000], 0.005)
	assert.Equal(t, 10+float64(80_000-21_000)*90/179_000, byIncome[80_000])
}

func TestCurve_ZeroAtOrBelowThreshold(t *testing.T) {
	p := DefaultParams()
	points, err := Curve(p)
	require.NoError(t, err)

	for _, pt := range points {
		if float64(pt.Income) <= p.Threshold {
			if pt.Impact != 0 {
				t.Fatalf("impact(%d) = %v, want 0", pt.Income, pt.Impact)
			}
		}
	}
}

func TestCurve_AffineAboveThreshold(t *testing.T) {
	p := DefaultParams()
	points, err := Curve(p)
	require.NoError(t, err)

	slope := p.Slope()
	var prev *Point
	for i := range points {
		pt := points[i]
		if float64(pt.Income) <= p.Threshold {
			continue
		}
		if prev != nil {
			require.Greater(t, pt.Impact, prev.Impact, "impact must increase at %d", pt.Income)
			got := (pt.Impact - prev.Impact) / float64(pt.Income-prev.Income)
			assert.InDelta(t, slope, got, 1e-12)
		}
		prev = &points[i]
	}
}

func TestCurve_AnchorsAreExact(t *testing.T) {
	p := Params{
		MinIncome: 0,
		MaxIncome: 10_000,
		Step:      7,
		Threshold: 100,
		Low:       Anchor{Income: 1_001, Impact: 3},
		High:      Anchor{Income: 9_997, Impact: 41},
	}

	low, err := At(p, p.Low.Income)
	require.NoError(t, err)
	assert.Equal(t, p.Low.Impact, low)

	high, err := At(p, p.High.Income)
	require.NoError(t, err)
	assert.Equal(t, p.High.Impact, high)
}

func TestAt_FractionalAnchorsAreExact(t *testing.T) {
	tests := []struct {
		name      string
		low, high Anchor
	}{
		{"tenths", Anchor{Income: 1, Impact: 0.1}, Anchor{Income: 13, Impact: 2}},
		{"offset tenths", Anchor{Income: 3, Impact: 0.3}, Anchor{Income: 26, Impact: 3.3}},
		{"cents", Anchor{Income: 21_000.5, Impact: 10.07}, Anchor{Income: 199_999.25, Impact: 99.93}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{MinIncome: 0, MaxIncome: 100, Step: 1, Low: tt.low, High: tt.high}

			low, err := At(p, tt.low.Income)
			require.NoError(t, err)
			assert.Equal(t, tt.low.Impact, low)

			high, err := At(p, tt.high.Income)
			require.NoError(t, err)
			assert.Equal(t, tt.high.Impact, high)
		})
	}

	for li := 1.0; li <= 40; li++ {
		for hi := li + 1; hi <= 80; hi++ {
			p := Params{Step: 1, Low: Anchor{Income: li, Impact: 0.1 * li}, High: Anchor{Income: hi, Impact: 0.1*hi + 0.7}}
			got, err := At(p, hi)
			require.NoError(t, err)
			require.Equal(t, p.High.Impact, got, "low=%v high=%v", p.Low, p.High)
		}
	}
}

func TestCurve_LengthAndSpacing(t *testing.T) {
	tests := []struct {
		name          string
		min, max, stp int64
		want          int
	}{
		{"exact division", 0, 200_000, 50, 4001},
		{"inexact division", 0, 1_000, 300, 4},
		{"step larger than range", 10, 20, 100, 1},
		{"offset start", 5, 105, 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.MinIncome, p.MaxIncome, p.Step = tt.min, tt.max, tt.stp

			points, err := Curve(p)
			require.NoError(t, err)
			require.Len(t, points, tt.want)
			assert.Equal(t, tt.want, p.Len())

			assert.Equal(t, tt.min, points[0].Income)
			for i := 1; i < len(points); i++ {
				assert.Equal(t, tt.stp, points[i].Income-points[i-1].Income)
			}
			assert.LessOrEqual(t, points[len(points)-1].Income, tt.max)
			assert.Greater(t, points[len(points)-1].Income+tt.stp, tt.max)
		})
	}
}

func TestCurve_SingleSample(t *testing.T) {
	p := DefaultParams()
	p.MinIncome, p.MaxIncome, p.Step = 100, 100, 50

	points, err := Curve(p)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, Point{Income: 100, Impact: 0}, points[0])
}

func TestCurve_Idempotent(t *testing.T) {
	first, err := Curve(DefaultParams())
	require.NoError(t, err)
	second, err := Curve(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCurve_ConcurrentCallers(t *testing.T) {
	want, err := Curve(DefaultParams())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]Point, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Curve(DefaultParams())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestCurve_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero step", func(p *Params) { p.Step = 0 }, "step"},
		{"negative step", func(p *Params) { p.Step = -50 }, "step"},
		{"equal anchor incomes", func(p *Params) { p.High.Income = p.Low.Income }, "anchor_high.income"},
		{"reversed anchors", func(p *Params) { p.Low, p.High = p.High, p.Low }, "anchor_high.income"},
		{"max below min", func(p *Params) { p.MinIncome, p.MaxIncome = 500, 100 }, "max_income"},
		{"negative min", func(p *Params) { p.MinIncome = -1 }, "min_income"},
		{"negative threshold", func(p *Params) { p.Threshold = -1 }, "threshold"},
		{"NaN threshold", func(p *Params) { p.Threshold = math.NaN() }, "threshold"},
		{"infinite impact", func(p *Params) { p.High.Impact = math.Inf(1) }, "anchor_high.impact"},
		{"NaN anchor income", func(p *Params) { p.Low.Income = math.NaN() }, "anchor_low.income"},
		{"range overflows sample count", func(p *Params) { p.MinIncome, p.MaxIncome, p.Step = 0, math.MaxInt64, 1 }, "step"},
		{"too many samples", func(p *Params) { p.MinIncome, p.MaxIncome, p.Step = 0, MaxSamples, 1 }, "step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			points, err := Curve(p)
			require.Error(t, err)
			assert.Nil(t, points)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestAt_IgnoresRange(t *testing.T) {
	p := DefaultParams()
	p.Step = 0

	got, err := At(p, 80_000)
	require.NoError(t, err)
	assert.InDelta(t, 39.66, got, 0.005)

	_, err = At(p, math.Inf(1))
	assert.ErrorIs(t, err, ErrConfiguration)
}
