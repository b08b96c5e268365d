package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the persisted header of a tabulated order.
type OrderRecord struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `gorm:"type:text" json:"total"`
	LineCount int             `json:"line_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LedgerEntry is one line item's allocated share of an order total.
type LedgerEntry struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"index" json:"order_id"`
	LineID      string          `json:"line_id"`
	Type        string          `gorm:"index" json:"type"`
	Priority    int             `json:"priority"`
	Amount      decimal.Decimal `gorm:"type:text" json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Money returns the entry amount tagged with its currency.
func (e LedgerEntry) Money() Money {
	return NewMoney(e.Amount, e.Currency)
}
