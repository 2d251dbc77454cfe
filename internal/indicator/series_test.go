package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		period int
		want   []float64
	}{
		{
			name:   "basic window",
			series: []float64{1, 2, 3, 4, 5},
			period: 3,
			want:   []float64{math.NaN(), math.NaN(), 2, 3, 4},
		},
		{
			name:   "series shorter than period",
			series: []float64{1, 2},
			period: 3,
			want:   []float64{math.NaN(), math.NaN()},
		},
		{
			name:   "period one is identity",
			series: []float64{3, 1, 4},
			period: 1,
			want:   []float64{3, 1, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.series, tt.period)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				if math.IsNaN(tt.want[i]) {
					assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
				} else {
					assert.InDelta(t, tt.want[i], got[i], 1e-9, "index %d", i)
				}
			}
		})
	}
}

func TestSMA_WarmupPrefixLength(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = float64(i)
	}

	got := SMA(series, 10)
	for i := 0; i < 9; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
	}
	for i := 9; i < len(got); i++ {
		assert.True(t, Valid(got[i]), "index %d should be defined", i)
	}
}

func TestEMA_WarmupPrefixLength(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = float64(i) * 1.5
	}

	got := EMA(series, 10)
	for i := 0; i < 9; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
	}
	for i := 9; i < len(got); i++ {
		assert.True(t, Valid(got[i]), "index %d should be defined", i)
	}
}

func TestEMA_SeriesShorterThanPeriod(t *testing.T) {
	got := EMA([]float64{1, 2}, 3)
	for i := range got {
		assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
	}
}

func TestEMA_ConvergesOnConstantSeries(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 5.0
	}

	got := EMA(series, 10)
	for i := 9; i < len(got); i++ {
		assert.InDelta(t, 5.0, got[i], 1e-12, "index %d", i)
	}
}

func TestEMA_SeedIsSMAOfFirstPeriod(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6}
	got := EMA(series, 5)
	assert.InDelta(t, 3.0, got[4], 1e-9)

	// k = 2/(5+1), ema[5] = (6-3)*k + 3
	assert.InDelta(t, 4.0, got[5], 1e-9)
}

func TestStdDev_PopulationConvention(t *testing.T) {
	// Classic population example: mean 5, variance 4.
	series := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := StdDev(series, 8)
	assert.InDelta(t, 2.0, got[7], 1e-9)
}

func TestStdDev_ZeroOnConstantWindow(t *testing.T) {
	series := []float64{7, 7, 7, 7, 7}
	got := StdDev(series, 5)
	assert.InDelta(t, 0.0, got[4], 1e-12)
}
