package models

import "time"

// DeliveryEvent holds the lifecycle timestamps of a single order. A zero
// time.Time means the timestamp was blank in the source.
type DeliveryEvent struct {
	OrderID                 string    `json:"order_id"`
	OrderPlacedTime         time.Time `json:"order_placed_time"`
	RestaurantConfirmedTime time.Time `json:"restaurant_confirmed_time"`
	FoodReadyTime           time.Time `json:"food_ready_time"`
	RiderPickedUpTime       time.Time `json:"rider_picked_up_time"`
	DeliveredTime           time.Time `json:"delivered_time"`
	EstimatedDeliveryTime   time.Time `json:"estimated_delivery_time"`
	ActualDeliveryTimeMins  *float64  `json:"actual_delivery_time_mins"`
}
