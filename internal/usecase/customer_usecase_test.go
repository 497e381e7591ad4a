package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
	"github.com/manav-coupa/store-management/internal/usecase/mocks"
)

func TestCustomerUseCase_CreateCustomer(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateCustomerInput
		expectError error
	}{
		{
			name:        "valid customer",
			input:       usecase.CreateCustomerInput{Name: "Ramesh Kumar", Mobile: "9876543210"},
			expectError: nil,
		},
		{
			name:        "empty name",
			input:       usecase.CreateCustomerInput{Name: "  ", Mobile: "9876543210"},
			expectError: domain.ErrInvalidCustomerName,
		},
		{
			name:        "bad mobile",
			input:       usecase.CreateCustomerInput{Name: "Ramesh", Mobile: "12ab"},
			expectError: domain.ErrInvalidMobile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewCustomerUseCase(mocks.NewMockCustomerRepository(), nil)

			customer, err := uc.CreateCustomer(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if customer.ID == 0 {
				t.Error("expected assigned customer ID")
			}

			if !customer.TotalCredit.IsZero() || !customer.TotalDebit.IsZero() || !customer.Balance.IsZero() {
				t.Error("expected zero aggregates on fresh customer")
			}
		})
	}
}

func TestCustomerUseCase_CreateDuplicateMobile(t *testing.T) {
	repo := mocks.NewMockCustomerRepository()
	uc := usecase.NewCustomerUseCase(repo, nil)
	ctx := context.Background()

	if _, err := uc.CreateCustomer(ctx, usecase.CreateCustomerInput{Name: "first", Mobile: "9876543210"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := uc.CreateCustomer(ctx, usecase.CreateCustomerInput{Name: "second", Mobile: "9876543210"})
	if !errors.Is(err, domain.ErrDuplicateMobile) {
		t.Errorf("expected ErrDuplicateMobile, got %v", err)
	}
}

func TestCustomerUseCase_UpdateDuplicateMobile(t *testing.T) {
	repo := mocks.NewMockCustomerRepository()
	uc := usecase.NewCustomerUseCase(repo, nil)
	ctx := context.Background()

	first, _ := uc.CreateCustomer(ctx, usecase.CreateCustomerInput{Name: "first", Mobile: "9876543210"})
	second, _ := uc.CreateCustomer(ctx, usecase.CreateCustomerInput{Name: "second", Mobile: "9876543211"})

	// Taking the other customer's mobile must conflict.
	_, err := uc.UpdateCustomer(ctx, second.ID, usecase.UpdateCustomerInput{Name: "second", Mobile: first.Mobile})
	if !errors.Is(err, domain.ErrDuplicateMobile) {
		t.Errorf("expected ErrDuplicateMobile, got %v", err)
	}

	// Keeping one's own mobile is fine.
	updated, err := uc.UpdateCustomer(ctx, second.ID, usecase.UpdateCustomerInput{Name: "renamed", Mobile: second.Mobile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("expected renamed, got %q", updated.Name)
	}
}

func TestCustomerUseCase_UpdateNotFound(t *testing.T) {
	uc := usecase.NewCustomerUseCase(mocks.NewMockCustomerRepository(), nil)

	_, err := uc.UpdateCustomer(context.Background(), 404, usecase.UpdateCustomerInput{Name: "x", Mobile: "9876543210"})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerUseCase_OutstandingBalanceOrdering(t *testing.T) {
	repo := mocks.NewMockCustomerRepository()
	uc := usecase.NewCustomerUseCase(repo, nil)
	ctx := context.Background()

	repo.Create(ctx, &domain.Customer{ID: 1, Name: "small-credit", Balance: decimal.NewFromInt(10)})
	repo.Create(ctx, &domain.Customer{ID: 2, Name: "big-credit", Balance: decimal.NewFromInt(300)})
	repo.Create(ctx, &domain.Customer{ID: 3, Name: "settled", Balance: decimal.Zero})
	repo.Create(ctx, &domain.Customer{ID: 4, Name: "small-debt", Balance: decimal.NewFromInt(-5)})
	repo.Create(ctx, &domain.Customer{ID: 5, Name: "big-debt", Balance: decimal.NewFromInt(-200)})

	customers, err := uc.OutstandingBalance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"big-credit", "small-credit", "big-debt", "small-debt"}
	if len(customers) != len(want) {
		t.Fatalf("expected %d customers, got %d", len(want), len(customers))
	}

	for i, name := range want {
		if customers[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, customers[i].Name)
		}
	}
}

func TestCustomerUseCase_DashboardStatsEmptyLedger(t *testing.T) {
	uc := usecase.NewCustomerUseCase(mocks.NewMockCustomerRepository(), nil)

	stats, err := uc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stats.TotalCredit.IsZero() || !stats.TotalDebit.IsZero() || !stats.NetBalance.IsZero() {
		t.Error("expected zero sums on empty ledger")
	}

	if stats.TotalCustomers != 0 || stats.CustomersWithBalance != 0 || stats.CustomersInDebt != 0 {
		t.Error("expected zero counts on empty ledger")
	}
}

func TestCustomerUseCase_DashboardStatsUsesCache(t *testing.T) {
	repo := mocks.NewMockCustomerRepository()
	cache := mocks.NewMockStatsCache()
	uc := usecase.NewCustomerUseCase(repo, cache)
	ctx := context.Background()

	repoCalls := 0
	repo.GetStatsFunc = func(ctx context.Context) (*domain.DashboardStats, error) {
		repoCalls++
		return &domain.DashboardStats{
			TotalCredit: decimal.NewFromInt(100),
			TotalDebit:  decimal.NewFromInt(40),
			NetBalance:  decimal.NewFromInt(60),
		}, nil
	}

	if _, err := uc.DashboardStats(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.DashboardStats(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repoCalls != 1 {
		t.Errorf("expected one store-side computation, got %d", repoCalls)
	}

	// Mutations drop the cached value so the next read recomputes.
	if _, err := uc.CreateCustomer(ctx, usecase.CreateCustomerInput{Name: "alice", Mobile: "9876543210"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.DashboardStats(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repoCalls != 2 {
		t.Errorf("expected recompute after invalidation, got %d calls", repoCalls)
	}
}

func TestCustomerUseCase_DeleteNotFound(t *testing.T) {
	uc := usecase.NewCustomerUseCase(mocks.NewMockCustomerRepository(), nil)

	err := uc.DeleteCustomer(context.Background(), 404)
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}
