package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/manav-coupa/store-management/internal/adapter/drive"
	httpAdapter "github.com/manav-coupa/store-management/internal/adapter/http"
	"github.com/manav-coupa/store-management/internal/adapter/http/handler"
	postgresRepo "github.com/manav-coupa/store-management/internal/adapter/repository/postgres"
	redisRepo "github.com/manav-coupa/store-management/internal/adapter/repository/redis"
	"github.com/manav-coupa/store-management/internal/domain"
	"github.com/manav-coupa/store-management/internal/infrastructure/backup"
	"github.com/manav-coupa/store-management/internal/infrastructure/config"
	"github.com/manav-coupa/store-management/internal/infrastructure/logger"
	"github.com/manav-coupa/store-management/internal/infrastructure/metrics"
	"github.com/manav-coupa/store-management/internal/infrastructure/postgres"
	"github.com/manav-coupa/store-management/internal/infrastructure/redis"
	"github.com/manav-coupa/store-management/internal/usecase"
)

const migrationsPath = "internal/infrastructure/postgres/migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Migrations run on every start; golang-migrate no-ops when current.
	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient := connectRedis(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	retrier := postgresRepo.NewRetrier(log)

	var statsCache usecase.StatsCache
	if redisClient != nil {
		statsCache = redisRepo.NewStatsCache(redisClient, cfg.StatsCacheTTL)
	}

	// Use cases
	reconciler := usecase.NewReconciler(customerRepo, transactionRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, statsCache)
	transactionUC := usecase.NewTransactionUseCase(txManager, customerRepo, transactionRepo, reconciler, retrier, statsCache)
	exportUC := usecase.NewExportUseCase(customerRepo, transactionRepo)

	// Backup pipeline
	publisher := newDrivePublisher(ctx, cfg, log)

	var scheduler *backup.Scheduler
	if cfg.BackupEnabled {
		backupCfg := backup.Config{
			Exporter: exportUC,
			Metrics:  m,
			Logger:   log,
			Dir:      cfg.BackupDir,
			Interval: cfg.BackupInterval,
		}
		if publisher != nil {
			backupCfg.Publisher = publisher
		}
		scheduler = backup.NewScheduler(backupCfg)
	}

	// Handlers
	customerHandler := handler.NewCustomerHandler(customerUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	backupHandler := newBackupHandler(scheduler, exportUC, publisher != nil)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CustomerHandler:    customerHandler,
		TransactionHandler: transactionHandler,
		BackupHandler:      backupHandler,
		HealthHandler:      healthHandler,
		Logger:             log,
	})

	server := newHTTPServer(cfg, router)

	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	if scheduler != nil {
		go func() {
			if err := scheduler.Start(schedulerCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("backup scheduler stopped")
			}
		}()
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func newHTTPServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// connectRedis returns nil when the stats cache is disabled or
// unreachable; the service degrades to recomputing stats per request.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *goredis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, stats cache disabled")
		return nil
	}

	log.Info().Msg("connected to redis")
	return client
}

// newDrivePublisher returns nil when Drive is not configured; backups
// then stay local-only.
func newDrivePublisher(ctx context.Context, cfg *config.Config, log zerolog.Logger) *drive.Publisher {
	driveCfg := drive.Config{
		CredentialsPath: cfg.DriveCredentialsPath,
		TokenPath:       cfg.DriveTokenPath,
		FolderID:        cfg.DriveFolderID,
	}

	svc, err := drive.NewService(ctx, driveCfg)
	if err != nil {
		if !errors.Is(err, domain.ErrDriveNotConfigured) {
			log.Warn().Err(err).Msg("google drive unavailable, backups stay local")
		}
		return nil
	}

	log.Info().Str("folder", cfg.DriveFolderID).Msg("google drive publisher enabled")
	return drive.NewPublisher(svc, log)
}

// newBackupHandler keeps a typed-nil scheduler out of the handler's
// interface field.
func newBackupHandler(scheduler *backup.Scheduler, exporter handler.SnapshotService, driveEnabled bool) *handler.BackupHandler {
	if scheduler == nil {
		return handler.NewBackupHandler(nil, exporter, driveEnabled)
	}
	return handler.NewBackupHandler(scheduler, exporter, driveEnabled)
}
