package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wc_bronze_sync/config"
	cachemem "github.com/Gunvolt24/wc_bronze_sync/internal/cache/memory"
	"github.com/Gunvolt24/wc_bronze_sync/internal/commerce"
	"github.com/Gunvolt24/wc_bronze_sync/internal/lock"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/internal/repo/memory"
	"github.com/Gunvolt24/wc_bronze_sync/internal/repo/postgres"
	"github.com/Gunvolt24/wc_bronze_sync/internal/repo/sqlite"
	"github.com/Gunvolt24/wc_bronze_sync/internal/usecase"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/validate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Хранилища строк bronze (значение BRONZE_SYNC_SINK).
const (
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
	SinkMemory   = "memory"
)

var ErrUnknownSink = errors.New("unknown sink")

// Stack — движок синхронизации со всеми хранилищами; общий для сервера и CLI.
type Stack struct {
	Service  *usecase.Orchestrator
	Sink     ports.BronzeSink
	Statuses ports.StatusStore
	Tenants  ports.TenantSource
	Pool     *pgxpool.Pool // nil, если Postgres не нужен
}

// BuildStack — собирает хранилище строк, источник аккаунтов, блокировки и оркестратор.
// Postgres подключается, если он выбран хранилищем или из него читаются аккаунты.
func BuildStack(ctx context.Context, cfg *config.Config, logg ports.Logger, opts ...usecase.OrchestratorOption) (*Stack, Cleanup, error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*Stack, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	sinkKind := strings.ToLower(strings.TrimSpace(cfg.Sync.Sink))
	if sinkKind == "" {
		sinkKind = SinkPostgres
	}

	st := &Stack{}

	if sinkKind == SinkPostgres || cfg.Sync.TenantsFile == "" {
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, pool.Close)
		st.Pool = pool

		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN, logg); err != nil {
				return fail(err)
			}
		}
	}

	switch sinkKind {
	case SinkPostgres:
		st.Sink = postgres.NewBronzeRepository(st.Pool)
		st.Statuses = postgres.NewSyncStatusRepository(st.Pool)
	case SinkSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() {
			if cErr := db.Close(); cErr != nil {
				logg.Warnf(ctx, "close sqlite: %v", cErr)
			}
		})
		st.Sink = sqlite.NewBronzeStore(db)
		st.Statuses = sqlite.NewStatusStore(db)
	case SinkMemory:
		st.Sink = memory.NewBronzeStore()
		st.Statuses = memory.NewStatusStore()
	default:
		return fail(fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sync.Sink))
	}

	// Источник аккаунтов: файл или таблица tenant_accounts, поверх — LRU-кэш.
	var tenants ports.TenantSource
	if cfg.Sync.TenantsFile != "" {
		list, err := validate.LoadTenantsFile(cfg.Sync.TenantsFile, validate.FormatAuto)
		if err != nil {
			return fail(fmt.Errorf("load tenants: %w", err))
		}
		logg.Infof(ctx, "loaded %d tenants from %s", len(list), cfg.Sync.TenantsFile)
		tenants = memory.NewTenantSource(list)
	} else {
		tenants = postgres.NewTenantRepository(st.Pool)
	}
	if cfg.Cache.Capacity > 0 {
		tenants = cachemem.NewCachedTenantSource(tenants, cfg.Cache.Capacity, cfg.Cache.TTL)
	}
	st.Tenants = tenants

	// Блокировка аккаунта: Redis между процессами, иначе — в пределах процесса.
	var locker ports.TenantLocker
	if cfg.Redis.Enabled {
		client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() {
			if cErr := client.Close(); cErr != nil {
				logg.Warnf(ctx, "close redis: %v", cErr)
			}
		})
		rl := lock.NewRedisLocker(client, cfg.Redis.LockTTL)
		logg.Infof(ctx, "redis tenant locks enabled owner=%s ttl=%s", rl.OwnerID(), cfg.Redis.LockTTL)
		locker = rl
	} else {
		locker = lock.NewLocalLocker()
	}

	client := commerce.NewClient(commerce.Limits{
		PerPage:           cfg.Sync.PerPage,
		MaxOrderPages:     cfg.Sync.OrderMaxPages,
		MaxProductPages:   cfg.Sync.ProductMaxPages,
		MaxVariationPages: cfg.Sync.VariationMaxPages,
	}, cfg.Sync.RequestTimeout, logg)

	writer := usecase.NewUpsertWriter(st.Sink, logg, cfg.Sync.BatchSize)
	runner := usecase.NewTenantRunner(client, writer, st.Statuses, locker, logg)

	opts = append([]usecase.OrchestratorOption{usecase.WithConcurrency(cfg.Sync.Concurrency)}, opts...)
	st.Service = usecase.NewOrchestrator(tenants, validate.NewTenantValidator(), runner, st.Statuses, logg, opts...)

	logg.Infof(ctx, "sync stack ready sink=%s concurrency=%d", sinkKind, cfg.Sync.Concurrency)
	return st, cleanup, nil
}
