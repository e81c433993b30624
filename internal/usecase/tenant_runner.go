package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/bronze"
	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/internal/window"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/ctxmeta"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RunState — фаза прогона аккаунта.
type RunState string

const (
	StateLocking              RunState = "locking"
	StateFetchingOrders       RunState = "fetching_orders"
	StateTransformingOrders   RunState = "transforming_orders"
	StateWritingOrders        RunState = "writing_orders"
	StateFetchingProducts     RunState = "fetching_products"
	StateFetchingVariations   RunState = "fetching_variations"
	StateTransformingProducts RunState = "transforming_products"
	StateWritingProducts      RunState = "writing_products"
	StateSuccess              RunState = "success"
	StateError                RunState = "error"
)

// phaseOutcome — явный итог фазы вместо "залогировать и продолжить".
type phaseOutcome struct {
	state RunState
	err   error
}

func failed(state RunState, err error) phaseOutcome {
	return phaseOutcome{state: state, err: err}
}

// runAccumulator — счётчики одного прогона; в SyncResult попадают один раз, в конце.
type runAccumulator struct {
	state         RunState
	orders        int
	orderRows     int
	products      int
	productRows   int
	failedBatches int
}

// TenantRunner — полный прогон одного аккаунта за один чанк: заказы, затем товары.
// Любая ошибка остаётся внутри: наружу уходит только SyncResult.
type TenantRunner struct {
	client   ports.CommerceClient
	writer   *UpsertWriter
	statuses ports.StatusStore
	locker   ports.TenantLocker
	log      ports.Logger
	now      func() time.Time
}

// NewTenantRunner — DI-конструктор. locker == nil — без блокировок.
func NewTenantRunner(
	client ports.CommerceClient,
	writer *UpsertWriter,
	statuses ports.StatusStore,
	locker ports.TenantLocker,
	log ports.Logger,
) *TenantRunner {
	return &TenantRunner{
		client:   client,
		writer:   writer,
		statuses: statuses,
		locker:   locker,
		log:      log,
		now:      time.Now,
	}
}

// WithClock — подмена часов (тесты).
func (r *TenantRunner) WithClock(now func() time.Time) *TenantRunner {
	r.now = now
	return r
}

// Run — прогон аккаунта в окне win. Статус аккаунта записывается всегда,
// кроме случая, когда аккаунт уже синхронизируется в другом месте.
func (r *TenantRunner) Run(ctx context.Context, tenant domain.TenantConfig, win window.Window) domain.SyncResult {
	start := time.Now()
	ctx = ctxmeta.WithTenantID(ctx, tenant.ID)

	ctx, span := telemetry.Tracer().Start(ctx, "tenant.sync", trace.WithAttributes(
		attribute.String("tenant.id", tenant.ID),
		attribute.String("sync.chunk_start", win.ChunkStart.Format(time.RFC3339)),
		attribute.String("sync.chunk_end", win.ChunkEnd.Format(time.RFC3339)),
	))
	defer span.End()

	acc := &runAccumulator{}
	outcome := r.guarded(ctx, tenant, win, acc)

	res := domain.SyncResult{
		TenantID:             tenant.ID,
		Account:              tenant.DisplayName(),
		Status:               domain.SyncStateSuccess,
		Orders:               acc.orders,
		OrderRows:            acc.orderRows,
		Products:             acc.products,
		ProductRows:          acc.productRows,
		FailedProductBatches: acc.failedBatches,
		DurationMS:           time.Since(start).Milliseconds(),
	}
	if outcome.err != nil {
		res.Status = domain.SyncStateError
		res.Error = fmt.Sprintf("%s: %v", outcome.state, outcome.err)
		span.RecordError(outcome.err)
		span.SetStatus(codes.Error, string(outcome.state))
		r.log.Errorf(ctx, "tenant sync failed at %s: %v", outcome.state, outcome.err)
	} else {
		r.log.Infof(ctx, "tenant synced orders=%d order_rows=%d products=%d product_rows=%d failed_batches=%d",
			acc.orders, acc.orderRows, acc.products, acc.productRows, acc.failedBatches)
	}
	span.SetAttributes(
		attribute.Int("sync.orders", acc.orders),
		attribute.Int("sync.products", acc.products),
		attribute.String("sync.status", string(res.Status)),
	)

	if !errors.Is(outcome.err, domain.ErrTenantBusy) {
		r.saveStatus(ctx, res)
	}

	metrics.TenantRuns.WithLabelValues(string(res.Status)).Inc()
	metrics.TenantRunDuration.WithLabelValues(string(res.Status)).Observe(time.Since(start).Seconds())
	return res
}

// guarded — блокировка аккаунта и перехват паники вокруг фаз.
func (r *TenantRunner) guarded(ctx context.Context, tenant domain.TenantConfig, win window.Window, acc *runAccumulator) (out phaseOutcome) {
	acc.state = StateLocking
	if r.locker != nil {
		acquired, err := r.locker.Acquire(ctx, tenant.ID)
		if err != nil {
			return failed(StateLocking, fmt.Errorf("acquire tenant lock: %w", err))
		}
		if !acquired {
			return failed(StateLocking, domain.ErrTenantBusy)
		}
		defer func() {
			if err := r.locker.Release(context.WithoutCancel(ctx), tenant.ID); err != nil {
				r.log.Warnf(ctx, "release tenant lock: %v", err)
			}
		}()
	}

	defer func() {
		if p := recover(); p != nil {
			out = failed(acc.state, fmt.Errorf("panic: %v", p))
		}
	}()

	if o := r.syncOrders(ctx, tenant, win, acc); o.err != nil {
		return o
	}
	return r.syncProducts(ctx, tenant, acc)
}

// syncOrders — fetching_orders → transforming_orders → writing_orders.
func (r *TenantRunner) syncOrders(ctx context.Context, tenant domain.TenantConfig, win window.Window, acc *runAccumulator) phaseOutcome {
	acc.state = StateFetchingOrders
	orders, err := r.client.FetchOrders(ctx, tenant, win.ChunkStart, win.ChunkEnd)
	if err != nil {
		return failed(acc.state, err)
	}

	acc.state = StateTransformingOrders
	rows := bronze.OrdersToRows(orders, tenant.ID, tenant.SiteName())
	acc.orders = countOrders(rows)
	if len(rows) == 0 {
		r.log.Infof(ctx, "no orders in [%s, %s]", win.ChunkStart.Format(time.RFC3339), win.ChunkEnd.Format(time.RFC3339))
		return phaseOutcome{}
	}

	acc.state = StateWritingOrders
	written, err := r.writer.WriteOrders(ctx, rows)
	acc.orderRows = written
	if err != nil {
		return failed(acc.state, err)
	}
	return phaseOutcome{}
}

// syncProducts — fetching_products → fetching_variations → transforming_products → writing_products.
func (r *TenantRunner) syncProducts(ctx context.Context, tenant domain.TenantConfig, acc *runAccumulator) phaseOutcome {
	acc.state = StateFetchingProducts
	products, err := r.client.FetchProducts(ctx, tenant)
	if err != nil {
		return failed(acc.state, err)
	}

	acc.state = StateFetchingVariations
	variations := make(map[int64][]domain.Variation)
	for i := range products {
		p := &products[i]
		if !p.IsVariable() || len(p.Variations) == 0 {
			continue
		}
		if _, done := variations[p.ID]; done {
			continue
		}
		vs, err := r.client.FetchVariations(ctx, tenant, p.ID)
		if err != nil {
			return failed(acc.state, fmt.Errorf("product %d: %w", p.ID, err))
		}
		variations[p.ID] = vs
	}

	acc.state = StateTransformingProducts
	rows := bronze.ProductsToRows(products, variations, tenant.ID, tenant.SiteName())
	acc.products = countProducts(rows)
	if len(rows) == 0 {
		return phaseOutcome{}
	}

	acc.state = StateWritingProducts
	outcome, err := r.writer.WriteProducts(ctx, rows)
	acc.productRows = outcome.Written
	acc.failedBatches = outcome.FailedBatches
	if err != nil {
		return failed(acc.state, err)
	}
	return phaseOutcome{}
}

func (r *TenantRunner) saveStatus(ctx context.Context, res domain.SyncResult) {
	st := domain.SyncStatus{
		TenantID:            res.TenantID,
		LastSyncAt:          r.now().UTC(),
		LastSyncStatus:      res.Status,
		LastSyncOrdersCount: res.Orders,
		LastErrorMessage:    res.Error,
	}
	if err := r.statuses.SaveStatus(context.WithoutCancel(ctx), st); err != nil {
		r.log.Errorf(ctx, "save sync status: %v", err)
	}
}

// countOrders — различные заказы (строки уровня заказа).
func countOrders(rows []domain.OrderRow) int {
	n := 0
	for i := range rows {
		if rows[i].IsOrderLevel() {
			n++
		}
	}
	return n
}

// countProducts — товары верхнего уровня (без вариаций).
func countProducts(rows []domain.ProductRow) int {
	n := 0
	for i := range rows {
		if rows[i].ParentID == nil {
			n++
		}
	}
	return n
}
