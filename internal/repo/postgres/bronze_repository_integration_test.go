//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	pgrepo "github.com/Gunvolt24/wc_bronze_sync/internal/repo/postgres"
	"github.com/Gunvolt24/wc_bronze_sync/internal/testutil"
)

func startDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))
	return pg.Pool
}

func count(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// 1) Повторная запись тех же строк — то же число строк и тот же ingested_at
func TestBronze_UpsertIdempotent_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewBronzeRepository(pool)
	tenant := testutil.MakeTenant()
	orders := testutil.MakeOrderRows(tenant.ID, 1001, 3)
	products := testutil.MakeProductRows(tenant.ID, 77, 2)

	require.NoError(t, repo.UpsertOrderRows(ctx, orders))
	require.NoError(t, repo.UpsertProductRows(ctx, products))

	var firstIngest time.Time
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT ingested_at FROM bronze_orders WHERE tenant_id = $1 AND order_id = 1001 AND line_item_id = 0`,
		tenant.ID).Scan(&firstIngest))

	// второй прогон с изменённым статусом
	for i := range orders {
		orders[i].Status = "refunded"
	}
	require.NoError(t, repo.UpsertOrderRows(ctx, orders))
	require.NoError(t, repo.UpsertProductRows(ctx, products))

	require.Equal(t, 4, count(t, pool, `SELECT count(*) FROM bronze_orders WHERE tenant_id = $1`, tenant.ID))
	require.Equal(t, 3, count(t, pool, `SELECT count(*) FROM bronze_products WHERE tenant_id = $1`, tenant.ID))
	require.Equal(t, 4, count(t, pool, `SELECT count(*) FROM bronze_orders WHERE tenant_id = $1 AND status = 'refunded'`, tenant.ID))
	require.Equal(t, 2, count(t, pool, `SELECT count(*) FROM bronze_products WHERE tenant_id = $1 AND parent_id = 77`, tenant.ID))

	var secondIngest time.Time
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT ingested_at FROM bronze_orders WHERE tenant_id = $1 AND order_id = 1001 AND line_item_id = 0`,
		tenant.ID).Scan(&secondIngest))
	require.True(t, firstIngest.Equal(secondIngest))

	var source string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT meta->>'source_type' FROM bronze_orders WHERE tenant_id = $1 AND line_item_id = 0`,
		tenant.ID).Scan(&source))
	require.Equal(t, "organic", source)
}

// 2) Повтор ключа внутри батча: команды идут по очереди, последняя побеждает
func TestBronze_DuplicateKeyInBatch_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewBronzeRepository(pool)
	tenant := testutil.MakeTenant()
	rows := testutil.MakeOrderRows(tenant.ID, 5, 1)
	bad := rows[0]
	bad.Status = "x"
	rows = append(rows, domain.OrderRow{TenantID: tenant.ID, OrderID: 5, LineItemID: 0, Status: "dup", Meta: map[string]any{}}, bad)

	require.NoError(t, repo.UpsertOrderRows(ctx, rows))
	require.Equal(t, 2, count(t, pool, `SELECT count(*) FROM bronze_orders WHERE tenant_id = $1`, tenant.ID))
	require.Equal(t, 1, count(t, pool, `SELECT count(*) FROM bronze_orders WHERE tenant_id = $1 AND status = 'x'`, tenant.ID))
}

// 3) Статусы: последняя запись побеждает, порядок по tenant_id
func TestSyncStatus_SaveAndList_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewSyncStatusRepository(pool)
	at := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveStatus(ctx, domain.SyncStatus{TenantID: "b", LastSyncAt: at, LastSyncStatus: domain.SyncStateSuccess, LastSyncOrdersCount: 3}))
	require.NoError(t, repo.SaveStatus(ctx, domain.SyncStatus{TenantID: "a", LastSyncAt: at, LastSyncStatus: domain.SyncStateSuccess}))
	require.NoError(t, repo.SaveStatus(ctx, domain.SyncStatus{TenantID: "a", LastSyncAt: at.Add(time.Hour), LastSyncStatus: domain.SyncStateError, LastErrorMessage: "fetching_orders: 401"}))

	got, err := repo.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].TenantID)
	require.Equal(t, domain.SyncStateError, got[0].LastSyncStatus)
	require.Equal(t, "fetching_orders: 401", got[0].LastErrorMessage)
	require.True(t, at.Add(time.Hour).Equal(got[0].LastSyncAt))
	require.Equal(t, 3, got[1].LastSyncOrdersCount)
}

// 4) Аккаунты: выключенные не видны, неизвестный id → (nil, nil)
func TestTenants_ListAndGet_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewTenantRepository(pool)
	on := testutil.MakeTenant()
	off := testutil.MakeTenant()
	require.NoError(t, repo.UpsertTenant(ctx, on))
	require.NoError(t, repo.UpsertTenant(ctx, off))
	_, err := pool.Exec(ctx, `UPDATE tenant_accounts SET enabled = FALSE WHERE id = $1`, off.ID)
	require.NoError(t, err)

	list, err := repo.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, on, list[0])

	got, err := repo.GetTenant(ctx, off.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.GetTenant(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}
