package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBollinger_BandContainment(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 8*math.Sin(float64(i)/5) + float64(i%3)
	}

	upper, middle, lower, width := Bollinger(closes, 20, 2.0)
	require.Len(t, upper, len(closes))

	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(middle[i]), "index %d", i)
	}
	for i := 19; i < len(closes); i++ {
		assert.True(t, Valid(middle[i]), "index %d", i)
		assert.LessOrEqual(t, lower[i], middle[i], "index %d", i)
		assert.LessOrEqual(t, middle[i], upper[i], "index %d", i)
		assert.GreaterOrEqual(t, width[i], 0.0, "index %d", i)
	}
}

func TestBollinger_WidthUndefinedOnZeroMiddle(t *testing.T) {
	closes := make([]float64, 25)
	upper, middle, _, width := Bollinger(closes, 20, 2.0)

	assert.InDelta(t, 0.0, middle[24], 1e-12)
	assert.InDelta(t, 0.0, upper[24], 1e-12)
	assert.True(t, math.IsNaN(width[24]))
}

func TestPercentB(t *testing.T) {
	assert.InDelta(t, 0.5, PercentB(100, 110, 90), 1e-12)
	assert.InDelta(t, 0.0, PercentB(90, 110, 90), 1e-12)
	assert.InDelta(t, 1.0, PercentB(110, 110, 90), 1e-12)
	assert.True(t, math.IsNaN(PercentB(100, 100, 100)))
	assert.True(t, math.IsNaN(PercentB(100, math.NaN(), 90)))
}

func TestClassifyBollinger(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		upper float64
		lower float64
		want  int
	}{
		{"above upper band", 112, 110, 90, -2},
		{"below lower band", 88, 110, 90, 2},
		{"near lower band", 92, 110, 90, 1},
		{"near upper band", 108, 110, 90, -1},
		{"mid band", 100, 110, 90, 0},
		{"undefined bands", 100, math.NaN(), math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBollinger(tt.price, tt.upper, tt.lower))
		})
	}
}
