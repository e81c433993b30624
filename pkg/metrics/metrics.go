package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Синхронизация аккаунтов.
var (
	TenantRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bronze_tenant_runs_total",
			Help: "Tenant sync runs by final status",
		},
		[]string{"status"}, // success|error|skipped
	)
	TenantRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bronze_tenant_run_duration_seconds",
			Help:    "Duration of one tenant sync run",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"status"},
	)
	APIPages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bronze_api_pages_total",
			Help: "Pages fetched from the commerce API",
		},
		[]string{"resource"}, // orders|products|variations
	)
	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bronze_api_errors_total",
			Help: "Non-2xx or transport failures of the commerce API",
		},
		[]string{"resource"},
	)
	RowsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bronze_rows_written_total",
			Help: "Bronze rows upserted",
		},
		[]string{"table"}, // orders|products
	)
	FailedBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bronze_failed_batches_total",
			Help: "Sub-batches rejected by the sink",
		},
		[]string{"table"},
	)
	SyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bronze_sync_runs_total",
			Help: "Orchestrator invocations by trigger",
		},
		[]string{"trigger", "completed"}, // http|kafka|cli; true|false
	)
)

// Kafka.
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of messages written to Kafka",
		},
		[]string{"topic"},
	)
)

// Кэш конфигураций аккаунтов.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация в глобальном реестре; повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			TenantRuns, TenantRunDuration, APIPages, APIErrors, RowsWritten, FailedBatches, SyncRuns,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize,
		)
	})
}
