package dto

// MACDData holds the three MACD components for one candle index.
type MACDData struct {
	MACD      *float64 `json:"macd"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// BollingerData holds the band values for one candle index. Width is
// (upper-lower)/middle and nil when middle is zero.
type BollingerData struct {
	Upper  *float64 `json:"upper"`
	Middle *float64 `json:"middle"`
	Lower  *float64 `json:"lower"`
	Width  *float64 `json:"width"`
}

// MovingAverageData is the SMA/EMA bundle at 20/50/200.
type MovingAverageData struct {
	SMA20  *float64 `json:"sma20"`
	SMA50  *float64 `json:"sma50"`
	SMA200 *float64 `json:"sma200"`
	EMA20  *float64 `json:"ema20"`
	EMA50  *float64 `json:"ema50"`
	EMA200 *float64 `json:"ema200"`
}

// VolumeData is the 20-period volume SMA plus the current-volume ratio
// against it. Ratio is nil when the SMA is zero or undefined.
type VolumeData struct {
	SMA20 *float64 `json:"sma20"`
	Ratio *float64 `json:"ratio"`
}

// IndicatorSnapshot is the full set of derived per-candle indicator values.
// A nil field means the lookback window exceeded available history, never a
// synthetic default. The one exception is RSI, which falls back to a neutral
// 50 on short series so downstream scoring does not starve.
type IndicatorSnapshot struct {
	RSI            *float64          `json:"rsi"`
	MACD           MACDData          `json:"macd"`
	Bollinger      BollingerData     `json:"bollinger"`
	MovingAverages MovingAverageData `json:"moving_averages"`
	Volume         VolumeData        `json:"volume"`
	ATR            *float64          `json:"atr"`
	Trend          Trend             `json:"trend"`
	Signal         Signal            `json:"signal"`
	SignalScore    int               `json:"signal_score"`
}
