package indicator

import "math"

// macdHistogramStrongPct is the relative histogram magnitude (against
// price) above which a directional MACD reading counts as strong.
const macdHistogramStrongPct = 0.005

// MACDSeries computes the MACD line (fast EMA minus slow EMA), the signal
// line (EMA of the MACD line) and the histogram (MACD minus signal). The
// MACD line is defined from index slow-1, the signal line and histogram
// from index slow+signalPeriod-2.
func MACDSeries(closes []float64, fast, slow, signalPeriod int) (macd, signal, histogram []float64) {
	n := len(closes)
	macd = nanSlice(n)
	signal = nanSlice(n)
	histogram = nanSlice(n)
	if n < slow {
		return macd, signal, histogram
	}

	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	for i := slow - 1; i < n; i++ {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	valid := macd[slow-1:]
	if len(valid) < signalPeriod {
		return macd, signal, histogram
	}
	sigValid := EMA(valid, signalPeriod)
	for i, v := range sigValid {
		if Valid(v) {
			signal[slow-1+i] = v
			histogram[slow-1+i] = macd[slow-1+i] - v
		}
	}
	return macd, signal, histogram
}

// ClassifyMACD scores the histogram at the latest index. A zero-crossing
// against the previous index is the strongest signal in either direction;
// otherwise the histogram sign alone gives a weaker reading, scaled up when
// its magnitude is large relative to price.
func ClassifyMACD(histogram, prevHistogram, price float64) int {
	if !Valid(histogram) || histogram == 0 {
		return 0
	}

	if Valid(prevHistogram) {
		if prevHistogram <= 0 && histogram > 0 {
			return 3
		}
		if prevHistogram >= 0 && histogram < 0 {
			return -3
		}
	}

	strength := 1
	if price > 0 && math.Abs(histogram)/price > macdHistogramStrongPct {
		strength = 2
	}
	if histogram < 0 {
		return -strength
	}
	return strength
}
