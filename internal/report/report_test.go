package report

import (
	"strings"
	"testing"
	"time"

	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/filter"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/stretchr/testify/assert"
)

func facts() []models.OrderFact {
	placed := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	return []models.OrderFact{
		{
			Order:      models.Order{ID: "o1", CustomerID: "c1", OrderDatetime: placed, GrossAmount: 12345, Status: models.OrderStatusDelivered},
			Restaurant: &models.Restaurant{Zone: "Marina", CuisineType: "Lebanese"},
			Delivery:   &models.DeliveryEvent{DeliveredTime: placed.Add(time.Hour), EstimatedDeliveryTime: placed.Add(30 * time.Minute)},
		},
		{
			Order:      models.Order{ID: "o2", CustomerID: "c2", OrderDatetime: placed, GrossAmount: 40, Status: models.OrderStatusCancelled},
			Restaurant: &models.Restaurant{Zone: "Deira", CuisineType: "Indian"},
		},
	}
}

func TestExecutive(t *testing.T) {
	out := Executive(dashboard.BuildExecutive(facts(), models.FilterCriteria{}))

	assert.Contains(t, out, "Executive Dashboard")
	assert.Contains(t, out, "GMV (AED)")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "Marina")
	assert.Contains(t, out, "all dates")
}

func TestManager(t *testing.T) {
	out := Manager(dashboard.BuildManager(facts(), models.FilterCriteria{}, dashboard.DefaultWhatIf()))

	assert.Contains(t, out, "Manager Dashboard")
	assert.Contains(t, out, "Late")
	assert.Contains(t, out, "Projected On-Time Rate: 2.5%")
	assert.Contains(t, out, "Projected GMV Recovery: AED 1,234")
}

func TestEmptyViews(t *testing.T) {
	out := Executive(dashboard.BuildExecutive(nil, models.FilterCriteria{}))
	assert.Contains(t, out, "no delivered orders")
}

func TestOptions(t *testing.T) {
	out := Options(filter.OptionsOf(facts()))
	assert.Contains(t, out, "2024-01-05 to 2024-01-05")
	assert.Contains(t, out, "Deira, Marina")
}

func TestBar(t *testing.T) {
	assert.Equal(t, barWidth, len([]rune(bar(5, 10))))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(10, 10))
	assert.Equal(t, strings.Repeat(" ", barWidth), bar(0, 10))
}
