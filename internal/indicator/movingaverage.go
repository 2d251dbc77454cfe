package indicator

import "crypto-scanner/internal/dto"

// MovingAverageBundle carries the latest SMA/EMA values of the standard
// 20/50/200 periods. Entries are NaN when history is shorter than the
// period.
type MovingAverageBundle struct {
	SMA20  float64
	SMA50  float64
	SMA200 float64
	EMA20  float64
	EMA50  float64
	EMA200 float64
}

// MovingAverages computes the 20/50/200 SMA and EMA bundle at the latest
// index.
func MovingAverages(closes []float64) MovingAverageBundle {
	return MovingAverageBundle{
		SMA20:  Last(SMA(closes, 20)),
		SMA50:  Last(SMA(closes, 50)),
		SMA200: Last(SMA(closes, 200)),
		EMA20:  Last(EMA(closes, 20)),
		EMA50:  Last(EMA(closes, 50)),
		EMA200: Last(EMA(closes, 200)),
	}
}

// Trend classifies the short-term trend from the EMA ordering: BULLISH when
// close > EMA20 > EMA50, BEARISH when close < EMA20 < EMA50, SIDEWAYS
// otherwise or when either EMA is undefined.
func Trend(close, ema20, ema50 float64) dto.Trend {
	if !Valid(ema20) || !Valid(ema50) {
		return dto.TrendSideways
	}
	if close > ema20 && ema20 > ema50 {
		return dto.TrendBullish
	}
	if close < ema20 && ema20 < ema50 {
		return dto.TrendBearish
	}
	return dto.TrendSideways
}
