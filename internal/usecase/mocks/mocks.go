package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
)

// MockTx is a no-op database transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager hands out MockTx transactions.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	LastTx    *MockTx
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTx{}
	return m.LastTx, nil
}

// MockCustomerRepository is an in-memory implementation of
// usecase.CustomerRepository. Individual methods can be overridden with
// the corresponding Func field.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]*domain.Customer
	nextID    int64

	CreateFunc           func(ctx context.Context, customer *domain.Customer) error
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Customer, error)
	GetByMobileFunc      func(ctx context.Context, mobile string) (*domain.Customer, error)
	UpdateFunc           func(ctx context.Context, customer *domain.Customer) error
	UpdateAggregatesFunc func(ctx context.Context, tx usecase.Transaction, id int64, totalCredit, totalDebit, balance decimal.Decimal, updatedAt time.Time) error
	GetStatsFunc         func(ctx context.Context) (*domain.DashboardStats, error)
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[int64]*domain.Customer),
	}
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if customer.ID == 0 {
		m.nextID++
		customer.ID = m.nextID
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Customer, error) {
	return m.GetByID(ctx, id)
}

func (m *MockCustomerRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	if m.GetByMobileFunc != nil {
		return m.GetByMobileFunc(ctx, mobile)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.Mobile == mobile {
			return c, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, customer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *MockCustomerRepository) UpdateAggregates(ctx context.Context, tx usecase.Transaction, id int64, totalCredit, totalDebit, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateAggregatesFunc != nil {
		return m.UpdateAggregatesFunc(ctx, tx, id, totalCredit, totalDebit, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.TotalCredit = totalCredit
	c.TotalDebit = totalDebit
	c.Balance = balance
	c.UpdatedAt = updatedAt
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *MockCustomerRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = make(map[int64]*domain.Customer)
	return nil
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCustomerRepository) Search(ctx context.Context, term string) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	term = strings.ToLower(term)
	var out []*domain.Customer
	for _, c := range m.customers {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Mobile, term) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCustomerRepository) ListWithPositiveBalance(ctx context.Context) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Customer
	for _, c := range m.customers {
		if c.Balance.IsPositive() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance.GreaterThan(out[j].Balance) })
	return out, nil
}

func (m *MockCustomerRepository) ListWithNegativeBalance(ctx context.Context) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Customer
	for _, c := range m.customers {
		if c.Balance.IsNegative() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance.LessThan(out[j].Balance) })
	return out, nil
}

func (m *MockCustomerRepository) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.DashboardStats{
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		NetBalance:  decimal.Zero,
	}
	for _, c := range m.customers {
		stats.TotalCustomers++
		stats.TotalCredit = stats.TotalCredit.Add(c.TotalCredit)
		stats.TotalDebit = stats.TotalDebit.Add(c.TotalDebit)
		switch {
		case c.Balance.IsPositive():
			stats.CustomersWithBalance++
		case c.Balance.IsNegative():
			stats.CustomersInDebt++
		}
	}
	stats.NetBalance = stats.TotalCredit.Sub(stats.TotalDebit)
	return stats, nil
}

// MockTransactionRepository is an in-memory implementation of
// usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[int64]*domain.Transaction
	nextID       int64

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc  func(ctx context.Context, id int64) (*domain.Transaction, error)
	UpdateTxFunc func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	DeleteTxFunc func(ctx context.Context, tx usecase.Transaction, id int64) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[int64]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) CreateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn.ID == 0 {
		m.nextID++
		txn.ID = m.nextID
	}
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id int64) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = make(map[int64]*domain.Transaction)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.transactions))
	for _, txn := range m.transactions {
		out = append(out, txn)
	}
	sortByDateDesc(out)
	return out, nil
}

func (m *MockTransactionRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.CustomerID == customerID {
			out = append(out, txn)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (m *MockTransactionRepository) ListByCustomerTx(ctx context.Context, tx usecase.Transaction, customerID int64) ([]*domain.Transaction, error) {
	return m.ListByCustomer(ctx, customerID)
}

func (m *MockTransactionRepository) ListByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.Type == txType {
			out = append(out, txn)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (m *MockTransactionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if !txn.TransactionDate.Before(from) && !txn.TransactionDate.After(to) {
			out = append(out, txn)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (m *MockTransactionRepository) Search(ctx context.Context, term string, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	term = strings.ToLower(term)
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if term != "" &&
			!strings.Contains(strings.ToLower(txn.CustomerName), term) &&
			!strings.Contains(txn.CustomerMobile, term) {
			continue
		}
		if txType != nil && txn.Type != *txType {
			continue
		}
		out = append(out, txn)
	}
	sortByDateDesc(out)
	return out, nil
}

func sortByDateDesc(txns []*domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].TransactionDate.Equal(txns[j].TransactionDate) {
			return txns[i].ID > txns[j].ID
		}
		return txns[i].TransactionDate.After(txns[j].TransactionDate)
	})
}

// MockStatsCache is an in-memory implementation of usecase.StatsCache.
type MockStatsCache struct {
	mu          sync.Mutex
	stats       *domain.DashboardStats
	Invalidated int
}

func NewMockStatsCache() *MockStatsCache {
	return &MockStatsCache{}
}

func (m *MockStatsCache) Get(ctx context.Context) (*domain.DashboardStats, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		return nil, false, nil
	}
	return m.stats, true, nil
}

func (m *MockStatsCache) Set(ctx context.Context, stats *domain.DashboardStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats
	return nil
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = nil
	m.Invalidated++
	return nil
}
