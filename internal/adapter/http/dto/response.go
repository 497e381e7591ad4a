package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/infrastructure/backup"
)

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Mobile      string          `json:"mobile"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Mobile:      c.Mobile,
		TotalCredit: c.TotalCredit,
		TotalDebit:  c.TotalDebit,
		Balance:     c.Balance,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	CustomerMobile  string          `json:"customerMobile"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		CustomerID:      t.CustomerID,
		CustomerName:    t.CustomerName,
		CustomerMobile:  t.CustomerMobile,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListCustomersResponse represents a customer list.
type ListCustomersResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Total     int64               `json:"total"`
}

// ListTransactionsResponse represents a transaction list.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// BackupStatusResponse reports the latest backup run, if any.
type BackupStatusResponse struct {
	Enabled bool              `json:"enabled"`
	Drive   bool              `json:"drive"`
	LastRun *backup.RunStatus `json:"lastRun,omitempty"`
}

// BackupRunResponse reports the outcome of a triggered backup.
type BackupRunResponse struct {
	Status *backup.RunStatus `json:"status"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
