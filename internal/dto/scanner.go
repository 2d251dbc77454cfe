package dto

// ScanRequest carries the caller-supplied filter criteria for a market scan.
type ScanRequest struct {
	MinRSI  float64  `query:"min_rsi" validate:"gte=0,lte=100"`
	MaxRSI  float64  `query:"max_rsi" validate:"gte=0,lte=100"`
	Signals []Signal `query:"signals"`
	Limit   int      `query:"limit" validate:"gte=0"`
}

// ScanOpportunity is one instrument's latest snapshot plus market metadata,
// ranked by SignalScore descending. Confidence is a bounded [0,1] weighted
// sum of the fired conditions and is not on the SignalScore scale.
type ScanOpportunity struct {
	Symbol     string            `json:"symbol"`
	Market     SymbolInfo        `json:"market"`
	Snapshot   IndicatorSnapshot `json:"snapshot"`
	Confidence float64           `json:"confidence"`
	Triggers   []string          `json:"triggers"`
}
