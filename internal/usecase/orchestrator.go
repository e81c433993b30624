package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/internal/window"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/ctxmeta"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var _ ports.SyncService = (*Orchestrator)(nil)

// Orchestrator — один вызов синхронизации: окно считается один раз,
// аккаунты прогоняются последовательно (или с ограниченным параллелизмом), итог — SyncReport.
type Orchestrator struct {
	tenants     ports.TenantSource
	validator   ports.TenantValidator
	runner      *TenantRunner
	statuses    ports.StatusStore
	publisher   ports.ReportPublisher
	log         ports.Logger
	now         func() time.Time
	concurrency int
}

// OrchestratorOption — настройка оркестратора.
type OrchestratorOption func(*Orchestrator)

// WithConcurrency — сколько аккаунтов синхронизировать одновременно (по умолчанию 1).
func WithConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithPublisher — отправка отчёта после каждого запуска.
func WithPublisher(p ports.ReportPublisher) OrchestratorOption {
	return func(o *Orchestrator) { o.publisher = p }
}

// WithNow — подмена часов планировщика окна (тесты).
func WithNow(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator — DI-конструктор.
func NewOrchestrator(
	tenants ports.TenantSource,
	validator ports.TenantValidator,
	runner *TenantRunner,
	statuses ports.StatusStore,
	log ports.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		tenants:     tenants,
		validator:   validator,
		runner:      runner,
		statuses:    statuses,
		log:         log,
		now:         time.Now,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run — один чанк по всем аккаунтам (или по одному, если задан AccountID).
// Ошибка возвращается только для некорректного запроса (domain.ErrInvalidRequest)
// и недоступного хранилища аккаунтов (domain.ErrTenantStore).
func (o *Orchestrator) Run(ctx context.Context, req domain.SyncRequest) (*domain.SyncReport, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = ctxmeta.WithRunID(ctx, runID)

	params, err := window.FromRequest(req)
	if err != nil {
		return nil, err
	}
	win := window.Plan(o.now(), params)

	tenants, err := o.resolveTenants(ctx, req.AccountID)
	if err != nil {
		o.log.Errorf(ctx, "resolve tenants: %v", err)
		return nil, err
	}

	o.log.Infof(ctx, "sync run started accounts=%d chunk=[%s, %s] last_chunk=%t",
		len(tenants), win.ChunkStart.Format(time.RFC3339), win.ChunkEnd.Format(time.RFC3339), win.IsLastChunk)

	results := o.runAll(ctx, tenants, win)

	report := &domain.SyncReport{
		RunID:             runID,
		DurationMS:        time.Since(start).Milliseconds(),
		AccountsProcessed: len(results),
		Results:           results,
		Completed:         win.IsLastChunk,
		NextStartDate:     win.NextStartDate,
		Progress:          win.Progress(),
	}
	report.Message = reportMessage(report, req.AccountID)

	o.log.Infof(ctx, "sync run finished accounts=%d failed=%d completed=%t duration_ms=%d",
		report.AccountsProcessed, report.FailedAccounts(), report.Completed, report.DurationMS)

	if o.publisher != nil {
		if err := o.publisher.Publish(context.WithoutCancel(ctx), req, report); err != nil {
			o.log.Warnf(ctx, "publish sync report: %v", err)
		}
	}
	return report, nil
}

// Statuses — сохранённые статусы аккаунтов (только для наблюдения).
func (o *Orchestrator) Statuses(ctx context.Context) ([]domain.SyncStatus, error) {
	return o.statuses.ListStatuses(ctx)
}

// resolveTenants — аккаунты с полными учётными данными; accountID сужает выбор до одного.
// Неизвестный или неполный аккаунт — пустой список, не ошибка.
func (o *Orchestrator) resolveTenants(ctx context.Context, accountID string) ([]domain.TenantConfig, error) {
	if accountID != "" {
		tenant, err := o.tenants.GetTenant(ctx, accountID)
		if err != nil {
			return nil, tenantStoreErr(err)
		}
		if tenant == nil || !o.eligible(ctx, *tenant) {
			return nil, nil
		}
		return []domain.TenantConfig{*tenant}, nil
	}

	all, err := o.tenants.ListTenants(ctx)
	if err != nil {
		return nil, tenantStoreErr(err)
	}
	out := make([]domain.TenantConfig, 0, len(all))
	for _, t := range all {
		if o.eligible(ctx, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// eligible — неполные аккаунты пропускаются; кривой base_url запускается и падает в прогоне.
func (o *Orchestrator) eligible(ctx context.Context, tenant domain.TenantConfig) bool {
	err := o.validator.Validate(ctx, tenant)
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrIncompleteCredentials):
		o.log.Warnf(ctx, "tenant skipped: %v", err)
		return false
	default:
		o.log.Warnf(ctx, "tenant %s has invalid config, it will be reported as failed: %v", tenant.ID, err)
		return true
	}
}

// runAll — результаты в порядке аккаунтов независимо от параллелизма.
func (o *Orchestrator) runAll(ctx context.Context, tenants []domain.TenantConfig, win window.Window) []domain.SyncResult {
	results := make([]domain.SyncResult, len(tenants))
	if o.concurrency <= 1 {
		for i := range tenants {
			results[i] = o.runner.Run(ctx, tenants[i], win)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range tenants {
		g.Go(func() error {
			results[i] = o.runner.Run(ctx, tenants[i], win)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func tenantStoreErr(err error) error {
	if errors.Is(err, domain.ErrTenantStore) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTenantStore, err)
}

func reportMessage(r *domain.SyncReport, accountID string) string {
	var msg string
	switch {
	case r.AccountsProcessed == 0 && accountID != "":
		msg = fmt.Sprintf("account %q not found or has incomplete credentials", accountID)
	case r.AccountsProcessed == 0:
		msg = "no accounts with complete credentials"
	default:
		msg = fmt.Sprintf("synced %d accounts (%d failed)", r.AccountsProcessed, r.FailedAccounts())
	}
	if !r.Completed {
		msg += "; more chunks remain, call again with start_date=next_start_date"
	}
	return msg
}
