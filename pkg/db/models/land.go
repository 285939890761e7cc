package models

import "time"

// Land is a leased parcel, optionally assigned to one farmer. FarmerID is a
// weak reference; an empty value means the land is unassigned.
type Land struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Area      float64   `json:"area"`
	FarmerID  string    `json:"farmerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
