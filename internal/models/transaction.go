package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCategory represents the category of a financial transaction.
// The wire values are kept from the historical schema.
type TransactionCategory string

const (
	CategoryExpense TransactionCategory = "depense"
	CategoryRevenue TransactionCategory = "revenu"
)

// NormalizeCategory lowercases a raw category value and reports whether it
// is one of the two accepted categories. Persisted rows only ever hold a
// normalized value.
func NormalizeCategory(raw string) (TransactionCategory, bool) {
	c := TransactionCategory(strings.ToLower(raw))
	switch c {
	case CategoryExpense, CategoryRevenue:
		return c, true
	}
	return "", false
}

// Transaction represents a single money flow (expense or revenue).
type Transaction struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Category    TransactionCategory `gorm:"type:transaction_category;not null" json:"category"`
	Amount      decimal.Decimal     `gorm:"type:numeric;not null" json:"amount"`
	Description string              `json:"description"`
	Date        time.Time           `gorm:"not null" json:"date"`
}
