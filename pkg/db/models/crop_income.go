package models

import "time"

// CropIncome is revenue recorded for a land for a given season. The settlement
// calculator appends one of these per run.
type CropIncome struct {
	ID        string    `json:"id"`
	LandID    string    `json:"landId"`
	Amount    float64   `json:"amount"`
	Season    string    `json:"season"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
