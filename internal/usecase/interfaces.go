package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByIDTx(ctx context.Context, tx Transaction, id int64) (*domain.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	UpdateAggregates(ctx context.Context, tx Transaction, id int64, totalCredit, totalDebit, balance decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context) ([]*domain.Customer, error)
	Search(ctx context.Context, term string) ([]*domain.Customer, error)
	ListWithPositiveBalance(ctx context.Context) ([]*domain.Customer, error)
	ListWithNegativeBalance(ctx context.Context) ([]*domain.Customer, error)
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	CreateTx(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	GetByIDTx(ctx context.Context, tx Transaction, id int64) (*domain.Transaction, error)
	UpdateTx(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	DeleteTx(ctx context.Context, tx Transaction, id int64) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context) ([]*domain.Transaction, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Transaction, error)
	ListByCustomerTx(ctx context.Context, tx Transaction, customerID int64) ([]*domain.Transaction, error)
	ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error)
	Search(ctx context.Context, term string, txType *domain.TransactionType) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// StatsCache caches dashboard aggregates behind explicit invalidation.
// The store-side recompute path stays the source of truth; every ledger
// mutation invalidates the cached value.
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, bool, error)
	Set(ctx context.Context, stats *domain.DashboardStats) error
	Invalidate(ctx context.Context) error
}
