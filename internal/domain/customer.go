package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a store customer with derived balance aggregates.
// TotalCredit, TotalDebit and Balance are written only by the reconciler;
// callers can never set them directly.
type Customer struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Mobile      string          `json:"mobile"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// HasOutstandingBalance reports whether the customer owes or is owed money.
func (c *Customer) HasOutstandingBalance() bool {
	return !c.Balance.IsZero()
}

// AggregatesConsistent reports whether balance equals totalCredit - totalDebit.
func (c *Customer) AggregatesConsistent() bool {
	return c.Balance.Equal(c.TotalCredit.Sub(c.TotalDebit))
}
