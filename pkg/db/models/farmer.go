package models

import "time"

// Farmer is a tenant who works one or more lands.
type Farmer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNIC      string    `json:"cnic"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
