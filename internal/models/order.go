package models

import "time"

type Order struct {
	ID             string    `json:"order_id"`
	CustomerID     string    `json:"customer_id"`
	RestaurantID   string    `json:"restaurant_id"`
	OrderDatetime  time.Time `json:"order_datetime"`
	GrossAmount    float64   `json:"gross_amount"`
	DiscountAmount float64   `json:"discount_amount"`
	Status         string    `json:"order_status"` // "Placed", "Delivered", "Cancelled", ...
}

// OrderItem is a line of an order. Loaded with the rest of the dataset but
// not consumed by any view.
type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
