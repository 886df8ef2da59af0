// Package join assembles the order fact table from the raw dataset tables.
package join

import (
	"fmt"

	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/models"
)

const (
	DimensionCustomer   = "customer"
	DimensionRestaurant = "restaurant"
	DimensionDelivery   = "delivery_event"
)

// Warning records a data-quality problem found while joining. Warnings never
// abort assembly.
type Warning struct {
	OrderID   string `json:"order_id,omitempty"`
	Dimension string `json:"dimension"`
	Key       string `json:"key"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

func (w Warning) String() string {
	if w.Duplicate {
		return fmt.Sprintf("duplicate %s key %q, keeping first row", w.Dimension, w.Key)
	}
	return fmt.Sprintf("order %s: no %s with key %q", w.OrderID, w.Dimension, w.Key)
}

// Assemble left-joins every order with its customer, restaurant and delivery
// event. The result has exactly one fact per order, in input order.
func Assemble(t *dataset.Tables) ([]models.OrderFact, []Warning) {
	if t == nil {
		return []models.OrderFact{}, nil
	}

	var warnings []Warning

	customers := make(map[string]*models.Customer, len(t.Customers))
	for i := range t.Customers {
		c := &t.Customers[i]
		if _, dup := customers[c.ID]; dup {
			warnings = append(warnings, Warning{Dimension: DimensionCustomer, Key: c.ID, Duplicate: true})
			continue
		}
		customers[c.ID] = c
	}

	restaurants := make(map[string]*models.Restaurant, len(t.Restaurants))
	for i := range t.Restaurants {
		r := &t.Restaurants[i]
		if _, dup := restaurants[r.ID]; dup {
			warnings = append(warnings, Warning{Dimension: DimensionRestaurant, Key: r.ID, Duplicate: true})
			continue
		}
		restaurants[r.ID] = r
	}

	deliveries := make(map[string]*models.DeliveryEvent, len(t.DeliveryEvents))
	for i := range t.DeliveryEvents {
		d := &t.DeliveryEvents[i]
		if _, dup := deliveries[d.OrderID]; dup {
			warnings = append(warnings, Warning{Dimension: DimensionDelivery, Key: d.OrderID, Duplicate: true})
			continue
		}
		deliveries[d.OrderID] = d
	}

	facts := make([]models.OrderFact, 0, len(t.Orders))
	for _, o := range t.Orders {
		f := models.OrderFact{Order: o}

		if o.CustomerID != "" {
			if f.Customer = customers[o.CustomerID]; f.Customer == nil {
				warnings = append(warnings, Warning{OrderID: o.ID, Dimension: DimensionCustomer, Key: o.CustomerID})
			}
		}
		if o.RestaurantID != "" {
			if f.Restaurant = restaurants[o.RestaurantID]; f.Restaurant == nil {
				warnings = append(warnings, Warning{OrderID: o.ID, Dimension: DimensionRestaurant, Key: o.RestaurantID})
			}
		}
		if f.Delivery = deliveries[o.ID]; f.Delivery == nil {
			warnings = append(warnings, Warning{OrderID: o.ID, Dimension: DimensionDelivery, Key: o.ID})
		}

		facts = append(facts, f)
	}

	return facts, warnings
}
