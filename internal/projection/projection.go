// Package projection implements the what-if estimates of the manager view.
package projection

import "math"

const (
	MinPrepReduction     = 1
	MaxPrepReduction     = 15
	DefaultPrepReduction = 5

	MinCancellationReduction     = 5
	MaxCancellationReduction     = 30
	DefaultCancellationReduction = 10

	// each minute of prep time saved is worth half a point of on-time rate
	onTimeGainPerMinute = 0.5
)

// ProjectedOnTime estimates the on-time rate after cutting prep time by
// prepReduction minutes, capped at 100.
func ProjectedOnTime(onTimeRate float64, prepReduction int) float64 {
	return math.Min(onTimeRate+float64(prepReduction)*onTimeGainPerMinute, 100.0)
}

// ProjectedGMVRecovery estimates the GMV recovered by reducing cancellations
// by cancellationReduction percent.
func ProjectedGMVRecovery(gmv float64, cancellationReduction int) float64 {
	return gmv * float64(cancellationReduction) / 100.0
}

func ClampPrepReduction(v int) int {
	return clamp(v, MinPrepReduction, MaxPrepReduction)
}

func ClampCancellationReduction(v int) int {
	return clamp(v, MinCancellationReduction, MaxCancellationReduction)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
