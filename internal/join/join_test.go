package join

import (
	"testing"
	"time"

	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	tables := &dataset.Tables{
		Customers: []models.Customer{{ID: "c1", City: "Dubai"}},
		Restaurants: []models.Restaurant{
			{ID: "r1", City: "Dubai", Zone: "Marina"},
			{ID: "r1", City: "Sharjah", Zone: "Al Nahda"},
		},
		Orders: []models.Order{
			{ID: "o1", CustomerID: "c1", RestaurantID: "r1", Status: models.OrderStatusDelivered},
			{ID: "o2", CustomerID: "c9", RestaurantID: "r1", Status: models.OrderStatusCancelled},
			{ID: "o3", CustomerID: "c1", RestaurantID: "r7", Status: models.OrderStatusDelivered},
		},
		DeliveryEvents: []models.DeliveryEvent{
			{OrderID: "o1", DeliveredTime: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
			{OrderID: "o3"},
		},
	}

	facts, warnings := Assemble(tables)

	require.Len(t, facts, len(tables.Orders))
	for i, f := range facts {
		assert.Equal(t, tables.Orders[i].ID, f.ID, "order preserved at %d", i)
	}

	assert.Equal(t, "Marina", facts[0].Zone(), "first duplicate restaurant row wins")
	assert.Nil(t, facts[1].Customer)
	assert.Nil(t, facts[1].Delivery)
	assert.Nil(t, facts[2].Restaurant)
	assert.Equal(t, "", facts[2].Zone())

	assert.ElementsMatch(t, []Warning{
		{Dimension: DimensionRestaurant, Key: "r1", Duplicate: true},
		{OrderID: "o2", Dimension: DimensionCustomer, Key: "c9"},
		{OrderID: "o2", Dimension: DimensionDelivery, Key: "o2"},
		{OrderID: "o3", Dimension: DimensionRestaurant, Key: "r7"},
	}, warnings)
}

func TestAssembleEmpty(t *testing.T) {
	facts, warnings := Assemble(&dataset.Tables{})
	assert.Empty(t, facts)
	assert.NotNil(t, facts)
	assert.Empty(t, warnings)

	facts, _ = Assemble(nil)
	assert.Empty(t, facts)
}

func TestWarningString(t *testing.T) {
	assert.Equal(t, `order o2: no customer with key "c9"`,
		Warning{OrderID: "o2", Dimension: DimensionCustomer, Key: "c9"}.String())
	assert.Equal(t, `duplicate restaurant key "r1", keeping first row`,
		Warning{Dimension: DimensionRestaurant, Key: "r1", Duplicate: true}.String())
}
