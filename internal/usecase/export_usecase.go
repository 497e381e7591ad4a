package usecase

import (
	"context"
	"time"

	"github.com/manav-coupa/store-management/internal/domain"
)

// CustomerSource is the customer directory read path used by exports.
type CustomerSource interface {
	List(ctx context.Context) ([]*domain.Customer, error)
}

// TransactionSource is the transaction manager read path used by exports.
type TransactionSource interface {
	List(ctx context.Context) ([]*domain.Transaction, error)
}

// ExportUseCase assembles full-ledger snapshots. It only reads; exporting
// has no side effect on the ledger.
type ExportUseCase struct {
	customers    CustomerSource
	transactions TransactionSource
	now          func() time.Time
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(customers CustomerSource, transactions TransactionSource) *ExportUseCase {
	return &ExportUseCase{
		customers:    customers,
		transactions: transactions,
		now:          time.Now,
	}
}

// Export reads the full customer and transaction lists and assembles a
// versioned snapshot document with derived summary statistics. Reads are
// not isolated from concurrent writes; the snapshot is best effort.
func (uc *ExportUseCase) Export(ctx context.Context) (*domain.Snapshot, error) {
	customers, err := uc.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewSnapshot(customers, transactions, uc.now()), nil
}
