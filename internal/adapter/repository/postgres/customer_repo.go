package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const customerColumns = `id, name, mobile, total_credit, total_debit, balance, created_at, updated_at`

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer and assigns its ID.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, mobile, total_credit, total_debit, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.Mobile,
		decimalToNumeric(customer.TotalCredit),
		decimalToNumeric(customer.TotalDebit),
		decimalToNumeric(customer.Balance),
		timeToPgTimestamptz(customer.CreatedAt),
		timeToPgTimestamptz(customer.UpdatedAt),
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMobile
		}

		return err
	}

	return nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	return r.scanCustomer(r.pool.QueryRow(ctx, query, id))
}

// GetByIDTx retrieves a customer by ID within a transaction.
func (r *CustomerRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Customer, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	return r.scanCustomer(pgxTx.QueryRow(ctx, query, id))
}

// GetByMobile retrieves a customer by its unique mobile number.
func (r *CustomerRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE mobile = $1`

	return r.scanCustomer(r.pool.QueryRow(ctx, query, mobile))
}

// Update updates a customer's name and mobile.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, mobile = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Mobile,
		timeToPgTimestamptz(customer.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMobile
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// UpdateAggregates writes recomputed aggregate fields within a transaction.
func (r *CustomerRepository) UpdateAggregates(ctx context.Context, tx usecase.Transaction, id int64, totalCredit, totalDebit, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE customers
		SET total_credit = $2, total_debit = $3, balance = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		id,
		decimalToNumeric(totalCredit),
		decimalToNumeric(totalDebit),
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// Delete deletes a customer. Its transactions go with it by cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// DeleteAll deletes every customer.
func (r *CustomerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM customers`)

	return err
}

// List lists all customers ordered by name.
func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name`

	return r.queryCustomers(ctx, query)
}

// Search matches term case-insensitively against name or mobile.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR mobile LIKE '%' || $1 || '%'
		ORDER BY name
	`

	return r.queryCustomers(ctx, query, term)
}

// ListWithPositiveBalance lists customers owed money, largest balance first.
func (r *CustomerRepository) ListWithPositiveBalance(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE balance > 0 ORDER BY balance DESC`

	return r.queryCustomers(ctx, query)
}

// ListWithNegativeBalance lists customers owing money, deepest debt first.
func (r *CustomerRepository) ListWithNegativeBalance(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE balance < 0 ORDER BY balance ASC`

	return r.queryCustomers(ctx, query)
}

// GetStats computes ledger-wide aggregates in a single query.
func (r *CustomerRepository) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			COALESCE(SUM(total_credit), 0),
			COALESCE(SUM(total_debit), 0),
			COALESCE(SUM(balance), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE balance > 0),
			COUNT(*) FILTER (WHERE balance < 0)
		FROM customers
	`

	var totalCredit, totalDebit, netBalance pgtype.Numeric

	stats := &domain.DashboardStats{}

	err := r.pool.QueryRow(ctx, query).Scan(
		&totalCredit,
		&totalDebit,
		&netBalance,
		&stats.TotalCustomers,
		&stats.CustomersWithBalance,
		&stats.CustomersInDebt,
	)
	if err != nil {
		return nil, err
	}

	stats.TotalCredit = numericToDecimal(totalCredit)
	stats.TotalDebit = numericToDecimal(totalDebit)
	stats.NetBalance = numericToDecimal(netBalance)

	return stats, nil
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]*domain.Customer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer

	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}

		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

func (r *CustomerRepository) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		customer             domain.Customer
		credit, debit, bal   pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Mobile,
		&credit,
		&debit,
		&bal,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, err
	}

	customer.TotalCredit = numericToDecimal(credit)
	customer.TotalDebit = numericToDecimal(debit)
	customer.Balance = numericToDecimal(bal)
	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
