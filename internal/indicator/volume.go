package indicator

const (
	volumeHighRatio = 2.0
	volumeLowRatio  = 0.5
)

// VolumeRatioSeries divides each volume by its 20-period SMA. NaN where the
// SMA is undefined or zero.
func VolumeRatioSeries(volumes []float64, period int) []float64 {
	out := nanSlice(len(volumes))
	sma := SMA(volumes, period)
	for i := range volumes {
		if Valid(sma[i]) && sma[i] != 0 {
			out[i] = volumes[i] / sma[i]
		}
	}
	return out
}

// ClassifyVolume scores the volume ratio against the latest price delta. A
// high ratio confirms the move in its direction; a very low ratio marks the
// move as low-conviction and fades it slightly.
func ClassifyVolume(ratio, priceDelta float64) int {
	if !Valid(ratio) {
		return 0
	}

	switch {
	case ratio > volumeHighRatio:
		if priceDelta > 0 {
			return 2
		}
		if priceDelta < 0 {
			return -2
		}
		return 0
	case ratio < volumeLowRatio:
		if priceDelta > 0 {
			return -1
		}
		if priceDelta < 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}
