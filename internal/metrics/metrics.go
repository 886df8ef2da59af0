// Package metrics computes the KPIs of the executive and manager views.
//
// Every function is total: an empty input, or a zero denominator, yields 0
// rather than NaN. Callers pass the subset each metric is defined over
// (filtered, delivered or delivered with actuals).
package metrics

import (
	"math"

	"github.com/chrisdamba/bitesdash/internal/models"
)

// GMV is the sum of gross_amount.
func GMV(delivered []models.OrderFact) float64 {
	var sum float64
	for _, f := range delivered {
		sum += f.GrossAmount
	}
	return sum
}

// AOV is the mean gross_amount.
func AOV(delivered []models.OrderFact) float64 {
	if len(delivered) == 0 {
		return 0
	}
	return GMV(delivered) / float64(len(delivered))
}

// DiscountBurn is total discount as a percentage of total gross.
func DiscountBurn(delivered []models.OrderFact) float64 {
	var gross, discount float64
	for _, f := range delivered {
		gross += f.GrossAmount
		discount += f.DiscountAmount
	}
	return percent(discount, gross)
}

// RepeatRate is the percentage of customers with more than one order.
// Orders without a customer id are ignored.
func RepeatRate(delivered []models.OrderFact) float64 {
	perCustomer := make(map[string]int)
	for _, f := range delivered {
		if f.CustomerID == "" {
			continue
		}
		perCustomer[f.CustomerID]++
	}

	var repeat int
	for _, n := range perCustomer {
		if n > 1 {
			repeat++
		}
	}
	return percent(float64(repeat), float64(len(perCustomer)))
}

// OnTimeRate is the percentage of rows delivered at or before their
// estimate. A row without an estimate counts as not on time.
func OnTimeRate(withActuals []models.OrderFact) float64 {
	var onTime int
	for _, f := range withActuals {
		est := f.EstimatedDeliveryTime()
		if est.IsZero() || f.DeliveredTime().IsZero() {
			continue
		}
		if !f.DeliveredTime().After(est) {
			onTime++
		}
	}
	return percent(float64(onTime), float64(len(withActuals)))
}

// AvgDeliveryTime is the mean of the non-null actual delivery minutes.
func AvgDeliveryTime(withActuals []models.OrderFact) float64 {
	var (
		sum float64
		n   int
	)
	for _, f := range withActuals {
		if mins, ok := f.ActualDeliveryMins(); ok && !math.IsNaN(mins) {
			sum += mins
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CancellationRate is the percentage of rows with status "Cancelled".
func CancellationRate(filtered []models.OrderFact) float64 {
	var cancelled int
	for _, f := range filtered {
		if f.IsCancelled() {
			cancelled++
		}
	}
	return percent(float64(cancelled), float64(len(filtered)))
}

func percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
