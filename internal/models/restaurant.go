package models

type Restaurant struct {
	ID          string `json:"restaurant_id"`
	Name        string `json:"restaurant_name,omitempty"`
	City        string `json:"city"`
	Zone        string `json:"zone"`
	CuisineType string `json:"cuisine_type"`
	Tier        string `json:"restaurant_tier"`
}
