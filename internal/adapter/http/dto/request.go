package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

// CreateCustomerRequest represents a request to create a customer.
type CreateCustomerRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		Name:   r.Name,
		Mobile: r.Mobile,
	}
}

// UpdateCustomerRequest represents a request to update a customer.
// Aggregate fields are not accepted; they are derived from transactions.
type UpdateCustomerRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCustomerRequest) ToUseCaseInput() usecase.UpdateCustomerInput {
	return usecase.UpdateCustomerInput{
		Name:   r.Name,
		Mobile: r.Mobile,
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	CustomerID      int64           `json:"customerId"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		CustomerID:      r.CustomerID,
		Type:            domain.TransactionType(r.Type),
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
	}
}

// UpdateTransactionRequest represents a request to amend a transaction.
// The owning customer cannot be changed.
type UpdateTransactionRequest struct {
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"`
}

// ToUseCaseInput converts to use case input. An omitted date means today.
func (r *UpdateTransactionRequest) ToUseCaseInput() usecase.UpdateTransactionInput {
	date := time.Now().UTC()
	if r.TransactionDate != nil {
		date = *r.TransactionDate
	}

	return usecase.UpdateTransactionInput{
		Type:            domain.TransactionType(r.Type),
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: date,
	}
}
