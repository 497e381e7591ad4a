package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/manav-coupa/store-management/internal/adapter/repository/postgres"
	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/usecase"
	"github.com/manav-coupa/store-management/tests/testutil"
)

func TestConcurrentTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	_, transactionUC, _ := newTestStack(testDB)
	customerRepo := postgres.NewCustomerRepository(testDB.Pool)

	t.Run("50 concurrent credits reconcile to the exact sum", func(t *testing.T) {
		customer := testDB.CreateTestCustomer(ctx, "Concurrent Kumar", "9000000001")

		numTxns := 50
		amount := decimal.NewFromInt(10)

		var (
			wg         sync.WaitGroup
			errorCount atomic.Int32
		)

		wg.Add(numTxns)

		for range numTxns {
			go func() {
				defer wg.Done()

				_, err := transactionUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
					CustomerID: customer.ID,
					Type:       domain.TransactionTypeCredit,
					Amount:     amount,
				})
				if err != nil {
					errorCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if errorCount.Load() != 0 {
			t.Fatalf("expected no errors, got %d", errorCount.Load())
		}

		got, err := customerRepo.GetByID(ctx, customer.ID)
		if err != nil {
			t.Fatalf("failed to load customer: %v", err)
		}

		want := amount.Mul(decimal.NewFromInt(int64(numTxns)))
		if !got.Balance.Equal(want) {
			t.Fatalf("expected balance %s, got %s", want, got.Balance)
		}

		txns, err := transactionUC.ListByCustomer(ctx, customer.ID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(txns) != numTxns {
			t.Fatalf("expected %d transactions, got %d", numTxns, len(txns))
		}
	})

	t.Run("mixed credits and debits net out", func(t *testing.T) {
		customer := testDB.CreateTestCustomer(ctx, "Mixed Kumar", "9000000002")

		var wg sync.WaitGroup
		wg.Add(40)

		for i := range 40 {
			txType := domain.TransactionTypeCredit
			if i%2 == 1 {
				txType = domain.TransactionTypeDebit
			}

			go func(txType domain.TransactionType) {
				defer wg.Done()

				_, _ = transactionUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
					CustomerID: customer.ID,
					Type:       txType,
					Amount:     decimal.NewFromInt(5),
				})
			}(txType)
		}

		wg.Wait()

		got, err := customerRepo.GetByID(ctx, customer.ID)
		if err != nil {
			t.Fatalf("failed to load customer: %v", err)
		}

		// 20 credits and 20 debits of 5 each.
		if !got.Balance.IsZero() {
			t.Fatalf("expected zero balance, got %s", got.Balance)
		}
		if !got.TotalCredit.Equal(decimal.NewFromInt(100)) || !got.TotalDebit.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("unexpected aggregates: credit=%s debit=%s", got.TotalCredit, got.TotalDebit)
		}
	})
}
