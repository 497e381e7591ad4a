package domain

import "github.com/shopspring/decimal"

// DashboardStats holds ledger-wide aggregates computed store-side.
// An empty ledger yields zero values, never nulls.
type DashboardStats struct {
	TotalCredit          decimal.Decimal `json:"totalCredit"`
	TotalDebit           decimal.Decimal `json:"totalDebit"`
	NetBalance           decimal.Decimal `json:"netBalance"`
	TotalCustomers       int64           `json:"totalCustomers"`
	CustomersWithBalance int64           `json:"customersWithBalance"`
	CustomersInDebt      int64           `json:"customersInDebt"`
}
