package models

import (
	"time"

	"github.com/adnanyousaf/landtrack-backend/pkg/enums"
)

// Expense is a cost recorded against a land. Expenses are append/delete-only;
// there is no update path.
type Expense struct {
	ID        string                `json:"id"`
	LandID    string                `json:"landId"`
	Category  enums.ExpenseCategory `json:"category"`
	Amount    float64               `json:"amount"`
	Date      time.Time             `json:"date"`
	Note      string                `json:"note"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}
