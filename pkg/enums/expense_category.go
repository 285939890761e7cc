package enums

import "fmt"

// ExpenseCategory describes the allowed values for an expense's `category`
// field. Lend is money advanced to the farmer and is settled differently from
// the four farming categories.
type ExpenseCategory string

const (
	ExpenseCategorySeed      ExpenseCategory = "seed"
	ExpenseCategoryDiesel    ExpenseCategory = "diesel"
	ExpenseCategoryMachinery ExpenseCategory = "machinery"
	ExpenseCategoryOther     ExpenseCategory = "other"
	ExpenseCategoryLend      ExpenseCategory = "lend"
)

var validExpenseCategories = []ExpenseCategory{
	ExpenseCategorySeed,
	ExpenseCategoryDiesel,
	ExpenseCategoryMachinery,
	ExpenseCategoryOther,
	ExpenseCategoryLend,
}

// IsValid reports whether the value matches the canonical expense category enum.
func (c ExpenseCategory) IsValid() bool {
	for _, candidate := range validExpenseCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsFarming reports whether the category counts toward farming expenses in a
// settlement (everything except lend).
func (c ExpenseCategory) IsFarming() bool {
	return c.IsValid() && c != ExpenseCategoryLend
}

// ExpenseCategories returns the canonical category list in display order.
func ExpenseCategories() []ExpenseCategory {
	out := make([]ExpenseCategory, len(validExpenseCategories))
	copy(out, validExpenseCategories)
	return out
}

// ParseExpenseCategory converts the raw string to ExpenseCategory.
func ParseExpenseCategory(value string) (ExpenseCategory, error) {
	for _, candidate := range validExpenseCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense category %q", value)
}
