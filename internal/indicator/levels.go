package indicator

import (
	"sort"

	"crypto-scanner/internal/dto"
)

const maxLevelStrength = 5

type pivotCandidate struct {
	price     float64
	timestamp int64
}

// DetectLevels scans the trailing lookback window for local-extremum pivots
// and folds nearby candidates (within mergeThreshold relative distance) into
// touch-counted levels. Supports come back sorted descending by price,
// resistances ascending.
func DetectLevels(candles []dto.Candle, lookback int, mergeThreshold float64) dto.SupportResistanceLevels {
	out := dto.SupportResistanceLevels{}
	if len(candles) == 0 {
		return out
	}

	window := candles
	if lookback > 0 && len(candles) > lookback {
		window = candles[len(candles)-lookback:]
	}

	var highPivots, lowPivots []pivotCandidate
	// Index i is a pivot when it exceeds both its 2 left and 2 right
	// neighbors, so the first and last two candles can never qualify.
	for i := 2; i < len(window)-2; i++ {
		c := window[i]
		isHigh := c.High > window[i-1].High && c.High > window[i-2].High &&
			c.High > window[i+1].High && c.High > window[i+2].High
		isLow := c.Low < window[i-1].Low && c.Low < window[i-2].Low &&
			c.Low < window[i+1].Low && c.Low < window[i+2].Low

		if isHigh {
			highPivots = append(highPivots, pivotCandidate{price: c.High, timestamp: c.Timestamp})
		}
		if isLow {
			lowPivots = append(lowPivots, pivotCandidate{price: c.Low, timestamp: c.Timestamp})
		}
	}

	out.Supports = mergeCandidates(lowPivots, dto.LevelSupport, mergeThreshold)
	out.Resistances = mergeCandidates(highPivots, dto.LevelResistance, mergeThreshold)

	sort.Slice(out.Supports, func(i, j int) bool {
		return out.Supports[i].Price > out.Supports[j].Price
	})
	sort.Slice(out.Resistances, func(i, j int) bool {
		return out.Resistances[i].Price < out.Resistances[j].Price
	})

	last := candles[len(candles)-1]
	out.PivotPoint = (last.High + last.Low + last.Close) / 3
	return out
}

// mergeCandidates folds price-sorted candidates into merged levels. Each
// fold moves the level price to the running weighted average and bumps the
// touch count, with strength capped at maxLevelStrength.
func mergeCandidates(candidates []pivotCandidate, levelType dto.LevelType, threshold float64) []dto.PriceLevel {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]pivotCandidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].price < sorted[j].price
	})

	var levels []dto.PriceLevel
	for _, cand := range sorted {
		merged := false
		for li := range levels {
			level := &levels[li]
			if relativeDistance(cand.price, level.Price) <= threshold {
				level.Price = (level.Price*float64(level.Touches) + cand.price) / float64(level.Touches+1)
				level.Touches++
				level.Strength = level.Touches
				if level.Strength > maxLevelStrength {
					level.Strength = maxLevelStrength
				}
				if cand.timestamp > level.LastTouch {
					level.LastTouch = cand.timestamp
				}
				merged = true
				break
			}
		}
		if !merged {
			levels = append(levels, dto.PriceLevel{
				Price:     cand.price,
				Type:      levelType,
				Strength:  1,
				Touches:   1,
				LastTouch: cand.timestamp,
			})
		}
	}
	return levels
}

func relativeDistance(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	d := (a - b) / b
	if d < 0 {
		return -d
	}
	return d
}

// PivotPoints computes the classic floor-trader levels from the last
// candle's high, low and close.
func PivotPoints(last dto.Candle) dto.PivotPoints {
	p := (last.High + last.Low + last.Close) / 3
	return dto.PivotPoints{
		Pivot: p,
		R1:    2*p - last.Low,
		S1:    2*p - last.High,
		R2:    p + (last.High - last.Low),
		S2:    p - (last.High - last.Low),
		R3:    last.High + 2*(p-last.Low),
		S3:    last.Low - 2*(last.High-p),
	}
}

// NearestLevels finds the highest support strictly below price and the
// lowest resistance strictly above it. Distances are percentages of the
// current price and default to 100 on a side with no level.
func NearestLevels(levels dto.SupportResistanceLevels, price float64) dto.NearestLevels {
	out := dto.NearestLevels{
		SupportDistance:    100,
		ResistanceDistance: 100,
	}
	if price <= 0 {
		return out
	}

	// Supports are sorted descending, so the first one below price is the
	// nearest.
	for i := range levels.Supports {
		if levels.Supports[i].Price < price {
			out.Support = &levels.Supports[i]
			out.SupportDistance = (price - levels.Supports[i].Price) / price * 100
			break
		}
	}
	// Resistances ascending, first one above price wins.
	for i := range levels.Resistances {
		if levels.Resistances[i].Price > price {
			out.Resistance = &levels.Resistances[i]
			out.ResistanceDistance = (levels.Resistances[i].Price - price) / price * 100
			break
		}
	}
	return out
}
