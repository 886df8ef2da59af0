package factories

import (
	"math"
	"time"
)

const maxDayWeight = 1.3

// dayWeight is the relative order volume of a calendar day. Friday evenings
// and the Saturday/Sunday weekend are busier.
func dayWeight(t time.Time) float64 {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return maxDayWeight
	default:
		return 1.0
	}
}

// lateProbability scales the configured late rate by the traffic expected
// when the order was placed.
func lateProbability(base float64, placed time.Time) float64 {
	p := base
	hour := placed.Hour()

	if isPeakHour(hour) {
		p *= 1.4 // riders slow down in lunch and dinner traffic
	}
	if hour >= 22 || hour <= 4 {
		p *= 0.6
	}
	if placed.Weekday() == time.Friday && hour >= 18 {
		p *= 1.2
	}
	return math.Min(p, 1)
}

func isPeakHour(hour int) bool {
	switch hour {
	case 12, 13, 19, 20:
		return true
	}
	return false
}
