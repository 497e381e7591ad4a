package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
)

// CustomerUseCase handles customer directory business logic.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	statsCache   StatsCache
}

// NewCustomerUseCase creates a new CustomerUseCase. statsCache is optional.
func NewCustomerUseCase(customerRepo CustomerRepository, statsCache StatsCache) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		statsCache:   statsCache,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	Name   string
	Mobile string
}

// CreateCustomer creates a customer with zero aggregates.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	mobile := strings.TrimSpace(input.Mobile)

	if err := domain.ValidateCustomerName(name); err != nil {
		return nil, err
	}

	if err := domain.ValidateMobile(mobile); err != nil {
		return nil, err
	}

	if _, err := uc.customerRepo.GetByMobile(ctx, mobile); err == nil {
		return nil, domain.ErrDuplicateMobile
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}

	now := time.Now().UTC()

	customer := &domain.Customer{
		Name:        name,
		Mobile:      mobile,
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx)

	return customer, nil
}

// UpdateCustomerInput represents input for updating a customer. Only name
// and mobile are caller-settable; aggregates belong to the reconciler.
type UpdateCustomerInput struct {
	Name   string
	Mobile string
}

// UpdateCustomer updates a customer's name and mobile. A mobile already
// registered to a different customer fails with ErrDuplicateMobile.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, id int64, input UpdateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	mobile := strings.TrimSpace(input.Mobile)

	if err := domain.ValidateCustomerName(name); err != nil {
		return nil, err
	}

	if err := domain.ValidateMobile(mobile); err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := uc.customerRepo.GetByMobile(ctx, mobile); err == nil {
		if existing.ID != id {
			return nil, domain.ErrDuplicateMobile
		}
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}

	customer.Name = name
	customer.Mobile = mobile
	customer.UpdatedAt = time.Now().UTC()

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer and, by cascade, its transactions.
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := uc.customerRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateStats(ctx)

	return nil
}

// ClearAll deletes every customer and, by cascade, every transaction.
func (uc *CustomerUseCase) ClearAll(ctx context.Context) error {
	if err := uc.customerRepo.DeleteAll(ctx); err != nil {
		return err
	}

	uc.invalidateStats(ctx)

	return nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// GetCustomerByMobile retrieves a customer by its unique mobile number.
func (uc *CustomerUseCase) GetCustomerByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	return uc.customerRepo.GetByMobile(ctx, strings.TrimSpace(mobile))
}

// ListCustomers lists all customers.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return uc.customerRepo.List(ctx)
}

// SearchCustomers matches term case-insensitively against name or mobile.
func (uc *CustomerUseCase) SearchCustomers(ctx context.Context, term string) ([]*domain.Customer, error) {
	return uc.customerRepo.Search(ctx, term)
}

// OutstandingBalance returns customers with positive balance ordered
// descending, followed by customers with negative balance ordered
// ascending. Settled customers are excluded.
func (uc *CustomerUseCase) OutstandingBalance(ctx context.Context) ([]*domain.Customer, error) {
	positive, err := uc.customerRepo.ListWithPositiveBalance(ctx)
	if err != nil {
		return nil, err
	}

	negative, err := uc.customerRepo.ListWithNegativeBalance(ctx)
	if err != nil {
		return nil, err
	}

	return append(positive, negative...), nil
}

// DashboardStats returns ledger-wide aggregates, served from the cache
// when present and recomputed store-side otherwise.
func (uc *CustomerUseCase) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if uc.statsCache != nil {
		if stats, ok, err := uc.statsCache.Get(ctx); err == nil && ok {
			return stats, nil
		}
	}

	stats, err := uc.customerRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if uc.statsCache != nil {
		_ = uc.statsCache.Set(ctx, stats)
	}

	return stats, nil
}

func (uc *CustomerUseCase) invalidateStats(ctx context.Context) {
	if uc.statsCache == nil {
		return
	}

	_ = uc.statsCache.Invalidate(ctx)
}
