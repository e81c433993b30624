package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("bronze-sync-triggers"))
	beforeProcessed := testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues("bronze-sync-triggers"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("bronze-sync-triggers"))

	metrics.KafkaMessagesConsumed.WithLabelValues("bronze-sync-triggers").Inc()
	metrics.KafkaMessagesProcessed.WithLabelValues("bronze-sync-triggers").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("bronze-sync-triggers").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("bronze-sync-triggers")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues("bronze-sync-triggers")); got != beforeProcessed+1 {
		t.Fatalf("KafkaMessagesProcessed: got=%v want=%v", got, beforeProcessed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("bronze-sync-triggers")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestCacheSize_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CacheSize)

	metrics.CacheSize.Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cur+5)
	}

	metrics.CacheSize.Set(cur) // вернуть как было
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur {
		t.Fatalf("CacheSize restore: got=%v want=%v", got, cur)
	}
}

func TestBronzeCounters_ByLabel(t *testing.T) {
	metrics.MustRegister()

	pagesBefore := testutil.ToFloat64(metrics.APIPages.WithLabelValues("orders"))
	runsBefore := testutil.ToFloat64(metrics.TenantRuns.WithLabelValues("error"))
	rowsBefore := testutil.ToFloat64(metrics.RowsWritten.WithLabelValues("products"))

	metrics.APIPages.WithLabelValues("orders").Add(3)
	metrics.TenantRuns.WithLabelValues("error").Inc()
	metrics.RowsWritten.WithLabelValues("products").Add(42)
	metrics.TenantRunDuration.WithLabelValues("error").Observe(1.5)

	if got := testutil.ToFloat64(metrics.APIPages.WithLabelValues("orders")); got != pagesBefore+3 {
		t.Fatalf("APIPages(orders): got=%v want=%v", got, pagesBefore+3)
	}
	if got := testutil.ToFloat64(metrics.TenantRuns.WithLabelValues("error")); got != runsBefore+1 {
		t.Fatalf("TenantRuns(error): got=%v want=%v", got, runsBefore+1)
	}
	if got := testutil.ToFloat64(metrics.RowsWritten.WithLabelValues("products")); got != rowsBefore+42 {
		t.Fatalf("RowsWritten(products): got=%v want=%v", got, rowsBefore+42)
	}
	if n := testutil.CollectAndCount(metrics.TenantRunDuration); n == 0 {
		t.Fatalf("TenantRunDuration must have observations")
	}
}
