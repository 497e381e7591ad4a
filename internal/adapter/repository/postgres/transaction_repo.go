package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

// Transaction rows carry the owning customer's name and mobile so lists
// render without a second lookup.
const transactionSelect = `
	SELECT t.id, t.customer_id, c.name, c.mobile, t.type, t.amount,
	       t.description, t.transaction_date, t.created_at
	FROM transactions t
	JOIN customers c ON c.id = t.customer_id
`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// CreateTx inserts a new transaction within a database transaction and
// assigns its ID.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (customer_id, type, amount, description, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return pgxTx.QueryRow(ctx, query,
		txn.CustomerID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		txn.Description,
		timeToPgTimestamptz(txn.TransactionDate),
		timeToPgTimestamptz(txn.CreatedAt),
	).Scan(&txn.ID)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDTx retrieves a transaction by ID within a database transaction.
func (r *TransactionRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := transactionSelect + ` WHERE t.id = $1`

	return r.scanTransaction(pgxTx.QueryRow(ctx, query, id))
}

// UpdateTx updates a transaction's mutable fields within a database
// transaction. The owning customer never changes.
func (r *TransactionRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions
		SET type = $2, amount = $3, description = $4, transaction_date = $5
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		txn.ID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		txn.Description,
		timeToPgTimestamptz(txn.TransactionDate),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteTx deletes a transaction within a database transaction.
func (r *TransactionRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id int64) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteAll deletes every transaction. Customer aggregates are left as
// they were.
func (r *TransactionRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions`)

	return err
}

// List lists all transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := transactionSelect + ` ORDER BY t.transaction_date DESC, t.id DESC`

	return r.queryTransactions(ctx, r.pool, query)
}

// ListByCustomer lists a customer's transactions, newest first.
func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.customer_id = $1 ORDER BY t.transaction_date DESC, t.id DESC`

	return r.queryTransactions(ctx, r.pool, query, customerID)
}

// ListByCustomerTx lists a customer's transactions within a database
// transaction, so reconciliation sums over its own writes.
func (r *TransactionRepository) ListByCustomerTx(ctx context.Context, tx usecase.Transaction, customerID int64) ([]*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := transactionSelect + ` WHERE t.customer_id = $1 ORDER BY t.transaction_date DESC, t.id DESC`

	return r.queryTransactions(ctx, pgxTx, query, customerID)
}

// ListByType lists transactions of one type, newest first.
func (r *TransactionRepository) ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.type = $1 ORDER BY t.transaction_date DESC, t.id DESC`

	return r.queryTransactions(ctx, r.pool, query, string(txType))
}

// ListByDateRange lists transactions dated within [from, to], newest first.
func (r *TransactionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.transaction_date BETWEEN $1 AND $2 ORDER BY t.transaction_date DESC, t.id DESC`

	return r.queryTransactions(ctx, r.pool, query, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
}

// Search matches term against the owning customer's name or mobile, with
// an optional type filter.
func (r *TransactionRepository) Search(ctx context.Context, term string, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	query := transactionSelect + `
		WHERE (c.name ILIKE '%' || $1 || '%' OR c.mobile LIKE '%' || $1 || '%')
		  AND ($2::text IS NULL OR t.type = $2)
		ORDER BY t.transaction_date DESC, t.id DESC
	`

	var typeArg *string
	if txType != nil {
		s := string(*txType)
		typeArg = &s
	}

	return r.queryTransactions(ctx, r.pool, query, term, typeArg)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, q querier, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction

	for rows.Next() {
		txn, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn                domain.Transaction
		amount             pgtype.Numeric
		txnDate, createdAt pgtype.Timestamptz
		txnType            string
	)

	err := row.Scan(
		&txn.ID,
		&txn.CustomerID,
		&txn.CustomerName,
		&txn.CustomerMobile,
		&txnType,
		&amount,
		&txn.Description,
		&txnDate,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Amount = numericToDecimal(amount)
	txn.TransactionDate = txnDate.Time
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
