package models

import "time"

type Customer struct {
	ID         string    `json:"customer_id"`
	City       string    `json:"city"`
	SignupDate time.Time `json:"signup_date"`
}
