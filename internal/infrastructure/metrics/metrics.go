package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Customer metrics
	CustomersCreated   prometheus.Counter
	CustomersDeleted   prometheus.Counter
	CustomerOperations *prometheus.CounterVec

	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionAmount   *prometheus.HistogramVec
	TransactionErrors   *prometheus.CounterVec
	ReconcileDuration   prometheus.Histogram

	// Backup metrics
	BackupRuns        *prometheus.CounterVec
	BackupDuration    prometheus.Histogram
	BackupSizeBytes   prometheus.Gauge
	DriveUploads      *prometheus.CounterVec
	LastBackupSuccess prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	StatsCacheHits   prometheus.Counter
	StatsCacheMisses prometheus.Counter
	RedisErrors      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Customer metrics
		CustomersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "store_customers_created_total",
			Help: "Total number of customers created",
		}),
		CustomersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "store_customers_deleted_total",
			Help: "Total number of customers deleted",
		}),
		CustomerOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_customer_operations_total",
				Help: "Total customer operations by type",
			},
			[]string{"operation"},
		),

		// Transaction metrics
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_transactions_created_total",
				Help: "Total number of transactions created by type",
			},
			[]string{"type"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_transaction_amount",
				Help:    "Transaction amounts by type",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"type"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"error_type"},
		),
		ReconcileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "store_reconcile_duration_seconds",
			Help:    "Duration of customer balance reconciliation",
			Buckets: prometheus.DefBuckets,
		}),

		// Backup metrics
		BackupRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_backup_runs_total",
				Help: "Total backup runs by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		BackupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "store_backup_duration_seconds",
			Help:    "Duration of backup runs",
			Buckets: prometheus.DefBuckets,
		}),
		BackupSizeBytes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "store_backup_size_bytes",
			Help: "Size of the last backup archive",
		}),
		DriveUploads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_drive_uploads_total",
				Help: "Total Google Drive uploads by result",
			},
			[]string{"result"},
		),
		LastBackupSuccess: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "store_last_backup_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful backup",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_db_queries_total",
				Help: "Total database queries by operation",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_db_query_duration_seconds",
				Help:    "Duration of database queries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "store_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_db_errors_total",
				Help: "Total database errors by type",
			},
			[]string{"error_type"},
		),

		// Redis metrics
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "store_stats_cache_hits_total",
			Help: "Total dashboard stats cache hits",
		}),
		StatsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "store_stats_cache_misses_total",
			Help: "Total dashboard stats cache misses",
		}),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_redis_errors_total",
				Help: "Total Redis errors by operation",
			},
			[]string{"operation"},
		),
	}
}
