package indicator

// NeutralRSI is the fallback returned by RSIValue when the series is too
// short. A neutral default keeps downstream scoring from starving on short
// histories; the series variant reports NaN instead.
const NeutralRSI = 50.0

// RSISeries computes the Relative Strength Index with Wilder smoothing.
// The average gain/loss is seeded as a simple mean over the first period
// deltas, then smoothed as avg = (avg*(period-1) + current) / period.
// Indices before period are NaN.
func RSISeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

// rsiFromAverages pins to 100 when the average loss is zero rather than
// dividing by zero.
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// RSIValue returns the latest RSI, or the neutral default when fewer than
// period+1 closes are available.
func RSIValue(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return NeutralRSI
	}
	return Last(RSISeries(closes, period))
}

// ClassifyRSI maps an RSI reading to a signed strength contribution and a
// human-readable zone label. Oversold zones score positive (buy pressure),
// overbought zones negative.
func ClassifyRSI(rsi float64) (int, string) {
	switch {
	case !Valid(rsi):
		return 0, "unknown"
	case rsi < 20:
		return 3, "strong oversold"
	case rsi < 30:
		return 2, "oversold"
	case rsi < 40:
		return 1, "slightly oversold"
	case rsi > 80:
		return -3, "strong overbought"
	case rsi > 70:
		return -2, "overbought"
	case rsi > 60:
		return -1, "slightly overbought"
	default:
		return 0, "neutral"
	}
}
