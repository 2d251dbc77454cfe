// Package indicator implements the windowed series math and technical
// indicators the analysis engine is built on. Series functions return one
// value per input index; indices inside the warmup window hold NaN so that
// "not enough history" is always distinguishable from a real value.
package indicator

import "math"

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Valid reports whether v carries a real indicator value.
func Valid(v float64) bool {
	return !math.IsNaN(v)
}

// Last returns the final value of a series, or NaN for an empty series.
func Last(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}

// SMA computes the simple moving average over a trailing window. The first
// period-1 indices are NaN.
func SMA(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) < period {
		return out
	}

	var sum float64
	for i, v := range series {
		sum += v
		if i >= period {
			sum -= series[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average, seeded with the SMA of the
// first period values. Defined from index period-1 onward.
func EMA(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) < period {
		return out
	}

	var seed float64
	for i := 0; i < period; i++ {
		seed += series[i]
	}
	out[period-1] = seed / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(series); i++ {
		out[i] = (series[i]-out[i-1])*k + out[i-1]
	}
	return out
}

// StdDev computes the population standard deviation (divide by period, not
// period-1) over a trailing window. The population convention matches the
// Bollinger width semantics downstream.
func StdDev(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) < period {
		return out
	}

	means := SMA(series, period)
	for i := period - 1; i < len(series); i++ {
		var sumSq float64
		for j := i - period + 1; j <= i; j++ {
			d := series[j] - means[i]
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(period))
	}
	return out
}
