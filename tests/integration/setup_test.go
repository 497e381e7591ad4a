package integration

import (
	"net/http"

	"github.com/rs/zerolog"

	adaptershttp "github.com/manav-coupa/store-management/internal/adapter/http"
	"github.com/manav-coupa/store-management/internal/adapter/http/handler"
	"github.com/manav-coupa/store-management/internal/adapter/repository/postgres"
	"github.com/manav-coupa/store-management/internal/usecase"
	"github.com/manav-coupa/store-management/tests/testutil"
)

// newTestStack wires the full service against a test database, without
// the stats cache or a Drive publisher.
func newTestStack(testDB *testutil.TestDB) (http.Handler, *usecase.TransactionUseCase, *usecase.CustomerUseCase) {
	pool := testDB.Pool

	txManager := postgres.NewTxManager(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	retrier := postgres.NewRetrier(zerolog.Nop())

	reconciler := usecase.NewReconciler(customerRepo, transactionRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, nil)
	transactionUC := usecase.NewTransactionUseCase(txManager, customerRepo, transactionRepo, reconciler, retrier, nil)
	exportUC := usecase.NewExportUseCase(customerRepo, transactionRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		CustomerHandler:    handler.NewCustomerHandler(customerUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		BackupHandler:      handler.NewBackupHandler(nil, exportUC, false),
		HealthHandler:      handler.NewHealthHandler(pool, nil),
		Logger:             zerolog.Nop(),
	})

	return router, transactionUC, customerUC
}
