package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACDSeries_WarmupAndIdentity(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 5*math.Sin(float64(i)/4)
	}

	macd, signal, histogram := MACDSeries(closes, 12, 26, 9)
	require.Len(t, macd, len(closes))
	require.Len(t, signal, len(closes))
	require.Len(t, histogram, len(closes))

	// MACD line defined from slow-1, signal and histogram from slow+signal-2.
	for i := 0; i < 25; i++ {
		assert.True(t, math.IsNaN(macd[i]), "macd index %d", i)
	}
	for i := 25; i < len(closes); i++ {
		assert.True(t, Valid(macd[i]), "macd index %d", i)
	}
	for i := 0; i < 33; i++ {
		assert.True(t, math.IsNaN(signal[i]), "signal index %d", i)
		assert.True(t, math.IsNaN(histogram[i]), "histogram index %d", i)
	}
	for i := 33; i < len(closes); i++ {
		assert.True(t, Valid(signal[i]), "signal index %d", i)
		assert.InDelta(t, macd[i]-signal[i], histogram[i], 1e-12, "histogram index %d", i)
	}
}

func TestMACDSeries_ConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 42.0
	}

	macd, signal, histogram := MACDSeries(closes, 12, 26, 9)
	for i := 33; i < len(closes); i++ {
		assert.InDelta(t, 0.0, macd[i], 1e-12)
		assert.InDelta(t, 0.0, signal[i], 1e-12)
		assert.InDelta(t, 0.0, histogram[i], 1e-12)
	}
}

func TestMACDSeries_TooShort(t *testing.T) {
	macd, signal, histogram := MACDSeries([]float64{1, 2, 3}, 12, 26, 9)
	for i := range macd {
		assert.True(t, math.IsNaN(macd[i]))
		assert.True(t, math.IsNaN(signal[i]))
		assert.True(t, math.IsNaN(histogram[i]))
	}
}

func TestClassifyMACD(t *testing.T) {
	tests := []struct {
		name     string
		hist     float64
		prevHist float64
		price    float64
		want     int
	}{
		{"bullish crossover", 0.5, -0.2, 100, 3},
		{"bullish crossover from zero", 0.5, 0, 100, 3},
		{"bearish crossover", -0.5, 0.2, 100, -3},
		{"bearish crossover from zero", -0.5, 0, 100, -3},
		{"weak positive momentum", 0.2, 0.1, 100, 1},
		{"strong positive momentum", 0.8, 0.7, 100, 2},
		{"weak negative momentum", -0.2, -0.1, 100, -1},
		{"strong negative momentum", -0.8, -0.7, 100, -2},
		{"no previous value falls back to sign", 0.2, math.NaN(), 100, 1},
		{"zero histogram", 0, 0.3, 100, 0},
		{"undefined histogram", math.NaN(), 0.3, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMACD(tt.hist, tt.prevHist, tt.price))
		})
	}
}
