package models

import "time"

// OrderFact is one order left-joined with its customer, restaurant and
// delivery event. A nil dimension means the foreign key matched no row.
type OrderFact struct {
	Order
	Customer   *Customer      `json:"customer,omitempty"`
	Restaurant *Restaurant    `json:"restaurant,omitempty"`
	Delivery   *DeliveryEvent `json:"delivery,omitempty"`
}

// City is the restaurant's city, or "" when the restaurant is unknown.
func (f OrderFact) City() string {
	if f.Restaurant == nil {
		return ""
	}
	return f.Restaurant.City
}

func (f OrderFact) CustomerCity() string {
	if f.Customer == nil {
		return ""
	}
	return f.Customer.City
}

func (f OrderFact) Zone() string {
	if f.Restaurant == nil {
		return ""
	}
	return f.Restaurant.Zone
}

func (f OrderFact) Cuisine() string {
	if f.Restaurant == nil {
		return ""
	}
	return f.Restaurant.CuisineType
}

func (f OrderFact) Tier() string {
	if f.Restaurant == nil {
		return ""
	}
	return f.Restaurant.Tier
}

// OrderDate is the calendar date of the order, independent of time of day.
func (f OrderFact) OrderDate() time.Time {
	return DateOf(f.OrderDatetime)
}

func (f OrderFact) IsDelivered() bool { return f.Status == OrderStatusDelivered }
func (f OrderFact) IsCancelled() bool { return f.Status == OrderStatusCancelled }

func (f OrderFact) DeliveredTime() time.Time {
	if f.Delivery == nil {
		return time.Time{}
	}
	return f.Delivery.DeliveredTime
}

func (f OrderFact) EstimatedDeliveryTime() time.Time {
	if f.Delivery == nil {
		return time.Time{}
	}
	return f.Delivery.EstimatedDeliveryTime
}

func (f OrderFact) HasDeliveredTime() bool {
	return !f.DeliveredTime().IsZero()
}

// ActualDeliveryMins returns the recorded delivery duration and whether it
// was present.
func (f OrderFact) ActualDeliveryMins() (float64, bool) {
	if f.Delivery == nil || f.Delivery.ActualDeliveryTimeMins == nil {
		return 0, false
	}
	return *f.Delivery.ActualDeliveryTimeMins, true
}
