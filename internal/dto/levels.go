package dto

// PriceLevel is one merged support or resistance level. Price is a running
// weighted average of the pivots folded into the level.
type PriceLevel struct {
	Price     float64   `json:"price"`
	Type      LevelType `json:"type"`
	Strength  int       `json:"strength"` // 1..5, capped
	Touches   int       `json:"touches"`
	LastTouch int64     `json:"last_touch"`
}

// SupportResistanceLevels bundles the merged levels with the classic
// floor-trader pivot point. Supports are sorted descending by price,
// resistances ascending.
type SupportResistanceLevels struct {
	Supports    []PriceLevel `json:"supports"`
	Resistances []PriceLevel `json:"resistances"`
	PivotPoint  float64      `json:"pivot_point"`
}

// PivotPoints are the classic levels derived from the last candle's H/L/C.
type PivotPoints struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
}

// NearestLevels reports the closest merged level on each side of the
// current price, with signed distances as a percentage of that price.
// Distance defaults to 100% on a side with no level.
type NearestLevels struct {
	Support            *PriceLevel `json:"support"`
	Resistance         *PriceLevel `json:"resistance"`
	SupportDistance    float64     `json:"support_distance"`
	ResistanceDistance float64     `json:"resistance_distance"`
}
