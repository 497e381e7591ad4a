package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotVersion is the format version tag written into every export.
const SnapshotVersion = "1.0"

// SnapshotSummary holds ledger-wide aggregates derived at export time.
type SnapshotSummary struct {
	TotalCredit          decimal.Decimal `json:"totalCredit"`
	TotalDebit           decimal.Decimal `json:"totalDebit"`
	NetBalance           decimal.Decimal `json:"netBalance"`
	CustomersWithBalance int64           `json:"customersWithBalance"`
	CustomersInDebt      int64           `json:"customersInDebt"`
}

// Snapshot is a point-in-time export of the whole ledger. It is produced
// fresh per export, never mutated, and replaces the previous backup file
// wholesale under the same fixed name.
type Snapshot struct {
	Customers         []*Customer     `json:"customers"`
	Transactions      []*Transaction  `json:"transactions"`
	ExportDate        string          `json:"exportDate"`
	Version           string          `json:"version"`
	TotalCustomers    int             `json:"totalCustomers"`
	TotalTransactions int             `json:"totalTransactions"`
	Summary           SnapshotSummary `json:"summary"`
}

// NewSnapshot assembles a snapshot document from full ledger reads.
func NewSnapshot(customers []*Customer, transactions []*Transaction, exportedAt time.Time) *Snapshot {
	summary := SnapshotSummary{
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		NetBalance:  decimal.Zero,
	}

	for _, c := range customers {
		summary.TotalCredit = summary.TotalCredit.Add(c.TotalCredit)
		summary.TotalDebit = summary.TotalDebit.Add(c.TotalDebit)

		switch {
		case c.Balance.IsPositive():
			summary.CustomersWithBalance++
		case c.Balance.IsNegative():
			summary.CustomersInDebt++
		}
	}

	summary.NetBalance = summary.TotalCredit.Sub(summary.TotalDebit)

	return &Snapshot{
		Customers:         customers,
		Transactions:      transactions,
		ExportDate:        exportedAt.UTC().Format(time.RFC3339),
		Version:           SnapshotVersion,
		TotalCustomers:    len(customers),
		TotalTransactions: len(transactions),
		Summary:           summary,
	}
}
