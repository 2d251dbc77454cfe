package indicator

import "math"

// Bollinger computes the bands: middle = SMA(period), upper/lower = middle
// ± multiplier*StdDev(period). Width is (upper-lower)/middle and NaN when
// the middle band is zero.
func Bollinger(closes []float64, period int, multiplier float64) (upper, middle, lower, width []float64) {
	n := len(closes)
	middle = SMA(closes, period)
	dev := StdDev(closes, period)

	upper = nanSlice(n)
	lower = nanSlice(n)
	width = nanSlice(n)
	for i := 0; i < n; i++ {
		if !Valid(middle[i]) {
			continue
		}
		upper[i] = middle[i] + multiplier*dev[i]
		lower[i] = middle[i] - multiplier*dev[i]
		if middle[i] != 0 {
			width[i] = (upper[i] - lower[i]) / middle[i]
		}
	}
	return upper, middle, lower, width
}

// PercentB is the price position within the band, 0 at the lower band and
// 1 at the upper. NaN when the band has no width.
func PercentB(price, upper, lower float64) float64 {
	if !Valid(upper) || !Valid(lower) || upper == lower {
		return math.NaN()
	}
	return (price - lower) / (upper - lower)
}

// ClassifyBollinger scores price against the bands. Closing beyond a band
// is an extreme (mean-reversion) signal; inside the band the relative
// position gives a weaker directional reading.
func ClassifyBollinger(price, upper, lower float64) int {
	if !Valid(upper) || !Valid(lower) {
		return 0
	}
	if price > upper {
		return -2
	}
	if price < lower {
		return 2
	}

	pb := PercentB(price, upper, lower)
	switch {
	case !Valid(pb):
		return 0
	case pb < 0.2:
		return 1
	case pb > 0.8:
		return -1
	default:
		return 0
	}
}
