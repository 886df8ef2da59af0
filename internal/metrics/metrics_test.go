package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/chrisdamba/bitesdash/internal/filter"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type row struct {
	id, customer, zone, cuisine, status string
	gross, discount                     float64
	late                                time.Duration // delivered minus estimate
	mins                                *float64
	noEstimate                          bool
}

func mins(v float64) *float64 { return &v }

func build(rows ...row) []models.OrderFact {
	facts := make([]models.OrderFact, 0, len(rows))
	for _, r := range rows {
		f := models.OrderFact{
			Order: models.Order{
				ID: r.id, CustomerID: r.customer, OrderDatetime: base,
				GrossAmount: r.gross, DiscountAmount: r.discount, Status: r.status,
			},
			Restaurant: &models.Restaurant{Zone: r.zone, CuisineType: r.cuisine},
		}
		if r.status == models.OrderStatusDelivered {
			ev := &models.DeliveryEvent{
				OrderID:                r.id,
				DeliveredTime:          base.Add(45*time.Minute + r.late),
				EstimatedDeliveryTime:  base.Add(45 * time.Minute),
				ActualDeliveryTimeMins: r.mins,
			}
			if r.noEstimate {
				ev.EstimatedDeliveryTime = time.Time{}
			}
			f.Delivery = ev
		}
		facts = append(facts, f)
	}
	return facts
}

func fixture() []models.OrderFact {
	return build(
		row{id: "1", customer: "a", zone: "Marina", cuisine: "Lebanese", status: models.OrderStatusDelivered, gross: 100, discount: 10, mins: mins(30)},
		row{id: "2", customer: "a", zone: "Deira", cuisine: "Indian", status: models.OrderStatusDelivered, gross: 250, discount: 0, late: 5 * time.Minute, mins: mins(50)},
		row{id: "3", customer: "b", zone: "Marina", cuisine: "Indian", status: models.OrderStatusCancelled, gross: 80},
		row{id: "4", customer: "c", zone: "Deira", cuisine: "Lebanese", status: models.OrderStatusDelivered, gross: 50, discount: 5, late: -time.Minute},
		row{id: "5", customer: "", zone: "", cuisine: "", status: models.OrderStatusDelivered, gross: 20, discount: 5, mins: mins(40)},
		row{id: "6", customer: "b", zone: "Marina", cuisine: "Lebanese", status: models.OrderStatusPlaced, gross: 60},
	)
}

func TestGMVMatchesDeliveredSum(t *testing.T) {
	facts := fixture()
	for _, zones := range [][]string{nil, {"Marina"}, {"Deira"}, {"Marina", "Deira"}} {
		filtered := filter.Apply(facts, models.FilterCriteria{Zones: zones})
		var want float64
		for _, f := range filtered {
			if f.Status == models.OrderStatusDelivered {
				want += f.GrossAmount
			}
		}
		assert.InDelta(t, want, GMV(filter.Delivered(filtered)), 1e-9, "zones %v", zones)
	}
}

func TestExecutiveMetrics(t *testing.T) {
	delivered := filter.Delivered(fixture())

	assert.InDelta(t, 420.0, GMV(delivered), 1e-9)
	assert.InDelta(t, 105.0, AOV(delivered), 1e-9)
	assert.InDelta(t, 20.0/420.0*100, DiscountBurn(delivered), 1e-9)
	// customers a (2 orders) and c (1 order); the blank customer id is ignored
	assert.InDelta(t, 50.0, RepeatRate(delivered), 1e-9)
}

func TestManagerMetrics(t *testing.T) {
	facts := fixture()
	withActuals := filter.DeliveredWithActuals(facts)
	require.Len(t, withActuals, 4)

	// orders 1, 4 and 5 are on time, order 2 is late
	assert.InDelta(t, 75.0, OnTimeRate(withActuals), 1e-9)
	assert.InDelta(t, 40.0, AvgDeliveryTime(withActuals), 1e-9)
	assert.InDelta(t, 100.0/6, CancellationRate(facts), 1e-9)
}

func TestEmptyInputsAreDefined(t *testing.T) {
	empty := filter.Apply(fixture(), models.FilterCriteria{
		DateRange: models.DateRange{Start: base.AddDate(1, 0, 0), End: base.AddDate(1, 0, 1)},
	})
	require.Empty(t, empty)

	values := map[string]float64{
		"gmv":          GMV(empty),
		"aov":          AOV(empty),
		"discountBurn": DiscountBurn(empty),
		"repeatRate":   RepeatRate(empty),
		"onTime":       OnTimeRate(empty),
		"avgDelivery":  AvgDeliveryTime(empty),
		"cancellation": CancellationRate(empty),
	}
	for name, v := range values {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), name)
		assert.Zero(t, v, name)
	}

	assert.Empty(t, GMVByZone(empty))
	assert.NotNil(t, GMVByZone(empty))
	assert.NotNil(t, DelayBreakdown(empty))
}

func TestDiscountBurnZeroGross(t *testing.T) {
	facts := build(row{id: "1", status: models.OrderStatusDelivered, gross: 0, discount: 3})
	assert.Zero(t, DiscountBurn(facts))
}

func TestEndToEndThreeOrders(t *testing.T) {
	facts := build(
		row{id: "1", customer: "a", zone: "Marina", status: models.OrderStatusDelivered, gross: 100},
		row{id: "2", customer: "b", zone: "Marina", status: models.OrderStatusDelivered, gross: 200},
		row{id: "3", customer: "c", zone: "Marina", status: models.OrderStatusCancelled, gross: 90},
	)
	filtered := filter.Apply(facts, models.FilterCriteria{})
	delivered := filter.Delivered(filtered)

	assert.InDelta(t, 300.0, GMV(delivered), 1e-9)
	assert.InDelta(t, 150.0, AOV(delivered), 1e-9)
	assert.InDelta(t, 33.33, RoundTo2(CancellationRate(filtered)), 1e-9)
}

func TestBoundaryEqualIsOnTime(t *testing.T) {
	facts := build(row{id: "1", zone: "Marina", status: models.OrderStatusDelivered, gross: 10})
	require.Equal(t, facts[0].DeliveredTime(), facts[0].EstimatedDeliveryTime())

	assert.Equal(t, models.DelayStatusOnTime, DelayStatus(facts[0]))
	assert.InDelta(t, 100.0, OnTimeRate(facts), 1e-9)
	assert.Equal(t, []DelayRow{{Zone: "Marina", Status: models.DelayStatusOnTime, Count: 1}}, DelayBreakdown(facts))
}

func TestNullEstimate(t *testing.T) {
	facts := build(row{id: "1", zone: "Deira", status: models.OrderStatusDelivered, gross: 10, noEstimate: true, late: time.Hour})

	assert.Equal(t, models.DelayStatusOnTime, DelayStatus(facts[0]))
	assert.Zero(t, OnTimeRate(facts))
}

func TestGroups(t *testing.T) {
	delivered := filter.Delivered(fixture())

	assert.Equal(t, []Group{
		{Label: models.UnassignedLabel, Value: 20, Count: 1},
		{Label: "Marina", Value: 100, Count: 1},
		{Label: "Deira", Value: 300, Count: 2},
	}, GMVByZone(delivered))

	assert.Equal(t, []Group{
		{Label: "Indian", Value: 250, Count: 1},
		{Label: "Lebanese", Value: 150, Count: 2},
		{Label: models.UnassignedLabel, Value: 20, Count: 1},
	}, GMVByCuisine(delivered))

	assert.Equal(t, []DelayRow{
		{Zone: "Deira", Status: models.DelayStatusLate, Count: 1},
		{Zone: "Deira", Status: models.DelayStatusOnTime, Count: 1},
		{Zone: "Marina", Status: models.DelayStatusOnTime, Count: 1},
		{Zone: models.UnassignedLabel, Status: models.DelayStatusOnTime, Count: 1},
	}, DelayBreakdown(filter.DeliveredWithActuals(fixture())))
}

func TestGMVByZoneTiesSortByLabel(t *testing.T) {
	facts := build(
		row{id: "1", zone: "Zeta", status: models.OrderStatusDelivered, gross: 10},
		row{id: "2", zone: "Alpha", status: models.OrderStatusDelivered, gross: 10},
	)
	groups := GMVByZone(facts)
	require.Len(t, groups, 2)
	assert.Equal(t, "Alpha", groups[0].Label)
}
