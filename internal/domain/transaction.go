package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a transaction as credit or debit.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// ParseTransactionType parses a transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeCredit:
		return TransactionTypeCredit, nil
	case TransactionTypeDebit:
		return TransactionTypeDebit, nil
	default:
		return "", ErrInvalidType
	}
}

// Transaction represents a single credit or debit against a customer.
// CustomerID is fixed for the lifetime of the transaction; updates may
// change type, amount, description and date but never the owner.
type Transaction struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	CustomerMobile  string          `json:"customerMobile"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Validate checks the transaction fields that are caller-supplied.
func (t *Transaction) Validate() error {
	if t.Type != TransactionTypeCredit && t.Type != TransactionTypeDebit {
		return ErrInvalidType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
