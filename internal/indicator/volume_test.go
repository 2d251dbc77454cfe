package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeRatioSeries(t *testing.T) {
	volumes := make([]float64, 25)
	for i := range volumes {
		volumes[i] = 1000
	}
	volumes[24] = 3000

	got := VolumeRatioSeries(volumes, 20)
	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d", i)
	}
	assert.InDelta(t, 1.0, got[19], 1e-9)
	// Window ending at 24 averages 19 candles of 1000 plus the 3000 spike.
	assert.InDelta(t, 3000.0/1100.0, got[24], 1e-9)
}

func TestVolumeRatioSeries_ZeroAverage(t *testing.T) {
	volumes := make([]float64, 25)
	got := VolumeRatioSeries(volumes, 20)
	assert.True(t, math.IsNaN(got[24]))
}

func TestClassifyVolume(t *testing.T) {
	tests := []struct {
		name       string
		ratio      float64
		priceDelta float64
		want       int
	}{
		{"spike confirms up move", 2.5, 1.0, 2},
		{"spike confirms down move", 2.5, -1.0, -2},
		{"spike with flat price", 2.5, 0, 0},
		{"dry up fades up move", 0.3, 1.0, -1},
		{"dry up fades down move", 0.3, -1.0, 1},
		{"normal volume", 1.2, 1.0, 0},
		{"undefined ratio", math.NaN(), 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVolume(tt.ratio, tt.priceDelta))
		})
	}
}
