package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
)

// TransactionUseCase handles transaction business logic. Every mutation
// runs insert/update/delete plus the reconcile of the owning customer in
// one database transaction: either both commit or neither does.
type TransactionUseCase struct {
	txManager       TransactionManager
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
	reconciler      *Reconciler
	retrier         Retrier
	statsCache      StatsCache
}

// NewTransactionUseCase creates a new TransactionUseCase. retrier and
// statsCache are optional.
func NewTransactionUseCase(
	txManager TransactionManager,
	customerRepo CustomerRepository,
	transactionRepo TransactionRepository,
	reconciler *Reconciler,
	retrier Retrier,
	statsCache StatsCache,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		reconciler:      reconciler,
		retrier:         retrier,
		statsCache:      statsCache,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	CustomerID      int64
	Type            domain.TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate *time.Time
}

// CreateTransaction creates a transaction and reconciles its customer.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.TransactionDate != nil {
		date = input.TransactionDate.UTC().Truncate(24 * time.Hour)
	}

	txn := &domain.Transaction{
		CustomerID:      input.CustomerID,
		Type:            input.Type,
		Amount:          input.Amount,
		Description:     input.Description,
		TransactionDate: date,
		CreatedAt:       time.Now().UTC(),
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.customerRepo.GetByIDTx(ctx, tx, input.CustomerID); err != nil {
			return err
		}

		if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
			return err
		}

		if err := uc.reconciler.Reconcile(ctx, tx, input.CustomerID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx)

	return txn, nil
}

// UpdateTransactionInput represents input for updating a transaction.
// The owning customer is never reassigned by an update.
type UpdateTransactionInput struct {
	Type            domain.TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
}

// UpdateTransaction replaces the mutable fields of a transaction and
// reconciles the original owning customer.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id int64, input UpdateTransactionInput) (*domain.Transaction, error) {
	var updated *domain.Transaction

	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		existing, err := uc.transactionRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		existing.Type = input.Type
		existing.Amount = input.Amount
		existing.Description = input.Description
		existing.TransactionDate = input.TransactionDate.UTC().Truncate(24 * time.Hour)

		if err := existing.Validate(); err != nil {
			return err
		}

		if err := uc.transactionRepo.UpdateTx(ctx, tx, existing); err != nil {
			return err
		}

		if err := uc.reconciler.Reconcile(ctx, tx, existing.CustomerID); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx)

	return updated, nil
}

// DeleteTransaction deletes a transaction and reconciles the customer
// that owned it, removing its contribution from the aggregates.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id int64) error {
	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		existing, err := uc.transactionRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.reconciler.Reconcile(ctx, tx, existing.CustomerID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.invalidateStats(ctx)

	return nil
}

// ClearAll deletes every transaction. Customer aggregates are NOT
// reconciled here and stay stale until the next per-customer mutation.
func (uc *TransactionUseCase) ClearAll(ctx context.Context) error {
	if err := uc.transactionRepo.DeleteAll(ctx); err != nil {
		return err
	}

	uc.invalidateStats(ctx)

	return nil
}

// ListTransactions lists all transactions, newest transaction date first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return uc.transactionRepo.List(ctx)
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListByCustomer lists a customer's transactions, newest first.
func (uc *TransactionUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Transaction, error) {
	return uc.transactionRepo.ListByCustomer(ctx, customerID)
}

// ListByType lists transactions of one type, newest first.
func (uc *TransactionUseCase) ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error) {
	return uc.transactionRepo.ListByType(ctx, txType)
}

// ListByDateRange lists transactions dated within [from, to], newest first.
func (uc *TransactionUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	return uc.transactionRepo.ListByDateRange(ctx, from, to)
}

// SearchTransactions matches the owning customer's name or mobile against
// term and optionally filters by type. Both filters are independent.
func (uc *TransactionUseCase) SearchTransactions(ctx context.Context, term string, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	return uc.transactionRepo.Search(ctx, term, txType)
}

func (uc *TransactionUseCase) withRetry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *TransactionUseCase) invalidateStats(ctx context.Context) {
	if uc.statsCache == nil {
		return
	}

	// Cache invalidation is best effort; the recompute path is authoritative.
	_ = uc.statsCache.Invalidate(ctx)
}
