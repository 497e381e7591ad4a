package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
)

// Reconciler recomputes a customer's aggregate totals from the full
// transaction set. It is the only writer of totalCredit, totalDebit and
// balance. The recompute is deliberately O(n) in the customer's
// transaction count: a full sum from source records cannot drift from
// rounding or from a missed incremental update path.
type Reconciler struct {
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
}

// NewReconciler creates a new Reconciler.
func NewReconciler(customerRepo CustomerRepository, transactionRepo TransactionRepository) *Reconciler {
	return &Reconciler{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
	}
}

// Reconcile recomputes and persists the customer's aggregates inside the
// caller's database transaction, so it observes any mutation committed in
// the same transaction. Returns domain.ErrCustomerNotFound if the
// customer no longer exists.
func (r *Reconciler) Reconcile(ctx context.Context, tx Transaction, customerID int64) error {
	if _, err := r.customerRepo.GetByIDTx(ctx, tx, customerID); err != nil {
		return err
	}

	transactions, err := r.transactionRepo.ListByCustomerTx(ctx, tx, customerID)
	if err != nil {
		return err
	}

	totalCredit := decimal.Zero
	totalDebit := decimal.Zero

	for _, txn := range transactions {
		switch txn.Type {
		case domain.TransactionTypeCredit:
			totalCredit = totalCredit.Add(txn.Amount)
		case domain.TransactionTypeDebit:
			totalDebit = totalDebit.Add(txn.Amount)
		}
	}

	balance := totalCredit.Sub(totalDebit)

	return r.customerRepo.UpdateAggregates(ctx, tx, customerID, totalCredit, totalDebit, balance, time.Now().UTC())
}
