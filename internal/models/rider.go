package models

// Rider is loaded with the rest of the dataset but not consumed by any view.
type Rider struct {
	ID          string `json:"rider_id"`
	Name        string `json:"rider_name,omitempty"`
	City        string `json:"city"`
	VehicleType string `json:"vehicle_type"`
}
