package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-scanner/internal/dto"
)

func levelCandles() []dto.Candle {
	highs := []float64{10, 11, 14, 11, 10, 11, 14.1, 11, 10, 12.9, 10, 9.5, 9}
	lows := []float64{5, 4, 3, 4, 5, 4, 3.05, 4, 5, 4, 3.5, 4.5, 5}

	candles := make([]dto.Candle, len(highs))
	for i := range highs {
		candles[i] = dto.Candle{
			Timestamp: int64(i) * 1000,
			Open:      (highs[i] + lows[i]) / 2,
			High:      highs[i],
			Low:       lows[i],
			Close:     (highs[i] + lows[i]) / 2,
			Volume:    1000,
		}
	}
	return candles
}

func TestDetectLevels_MergingAndOrdering(t *testing.T) {
	levels := DetectLevels(levelCandles(), 100, 0.02)

	// Pivot highs at 14, 14.1 and 12.9; the first two sit within 2% of each
	// other and fold into one level at their weighted average.
	require.Len(t, levels.Resistances, 2)
	assert.InDelta(t, 12.9, levels.Resistances[0].Price, 1e-9)
	assert.Equal(t, 1, levels.Resistances[0].Touches)
	assert.Equal(t, 1, levels.Resistances[0].Strength)
	assert.InDelta(t, 14.05, levels.Resistances[1].Price, 1e-9)
	assert.Equal(t, 2, levels.Resistances[1].Touches)
	assert.Equal(t, 2, levels.Resistances[1].Strength)
	assert.Equal(t, int64(6000), levels.Resistances[1].LastTouch)

	// Pivot lows at 3, 3.05 and 3.5; the first two merge.
	require.Len(t, levels.Supports, 2)
	assert.InDelta(t, 3.5, levels.Supports[0].Price, 1e-9)
	assert.InDelta(t, 3.025, levels.Supports[1].Price, 1e-9)
	assert.Equal(t, 2, levels.Supports[1].Touches)

	// Supports descending, resistances ascending.
	assert.Greater(t, levels.Supports[0].Price, levels.Supports[1].Price)
	assert.Less(t, levels.Resistances[0].Price, levels.Resistances[1].Price)

	for _, s := range levels.Supports {
		assert.Equal(t, dto.LevelSupport, s.Type)
	}
	for _, r := range levels.Resistances {
		assert.Equal(t, dto.LevelResistance, r.Type)
	}

	last := levelCandles()[12]
	assert.InDelta(t, (last.High+last.Low+last.Close)/3, levels.PivotPoint, 1e-9)
}

func TestDetectLevels_StrengthCap(t *testing.T) {
	// Seven alternating touches of the same low price merge into a single
	// support whose strength saturates at 5.
	var candles []dto.Candle
	for i := 0; i < 36; i++ {
		low := 10.0
		if i%5 == 2 {
			low = 5.0
		}
		candles = append(candles, dto.Candle{
			Timestamp: int64(i) * 1000,
			Open:      11,
			High:      12,
			Low:       low,
			Close:     11,
			Volume:    1000,
		})
	}

	levels := DetectLevels(candles, 100, 0.02)
	require.Len(t, levels.Supports, 1)
	assert.InDelta(t, 5.0, levels.Supports[0].Price, 1e-9)
	assert.Equal(t, 7, levels.Supports[0].Touches)
	assert.Equal(t, 5, levels.Supports[0].Strength)
}

func TestDetectLevels_EmptyAndMonotone(t *testing.T) {
	assert.Empty(t, DetectLevels(nil, 100, 0.02).Supports)

	var candles []dto.Candle
	for i := 0; i < 30; i++ {
		p := 100 + float64(i)
		candles = append(candles, dto.Candle{Timestamp: int64(i), Open: p, High: p + 1, Low: p - 1, Close: p})
	}
	levels := DetectLevels(candles, 100, 0.02)
	assert.Empty(t, levels.Supports)
	assert.Empty(t, levels.Resistances)
}

func TestPivotPoints(t *testing.T) {
	last := dto.Candle{High: 110, Low: 90, Close: 100}
	pp := PivotPoints(last)

	assert.InDelta(t, 100.0, pp.Pivot, 1e-9)
	assert.InDelta(t, 110.0, pp.R1, 1e-9)
	assert.InDelta(t, 90.0, pp.S1, 1e-9)
	assert.InDelta(t, 120.0, pp.R2, 1e-9)
	assert.InDelta(t, 80.0, pp.S2, 1e-9)
	assert.InDelta(t, 130.0, pp.R3, 1e-9)
	assert.InDelta(t, 70.0, pp.S3, 1e-9)
}

func TestNearestLevels(t *testing.T) {
	levels := DetectLevels(levelCandles(), 100, 0.02)

	near := NearestLevels(levels, 10)
	require.NotNil(t, near.Support)
	require.NotNil(t, near.Resistance)
	assert.InDelta(t, 3.5, near.Support.Price, 1e-9)
	assert.InDelta(t, 12.9, near.Resistance.Price, 1e-9)
	assert.InDelta(t, 65.0, near.SupportDistance, 1e-9)
	assert.InDelta(t, 29.0, near.ResistanceDistance, 1e-9)

	// Above every level: no resistance, distance stays at the 100 default.
	above := NearestLevels(levels, 20)
	assert.Nil(t, above.Resistance)
	assert.InDelta(t, 100.0, above.ResistanceDistance, 1e-9)
	require.NotNil(t, above.Support)

	// Below every level: no support.
	below := NearestLevels(levels, 2)
	assert.Nil(t, below.Support)
	assert.InDelta(t, 100.0, below.SupportDistance, 1e-9)
}
