package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.StatusStore = (*SyncStatusRepository)(nil)

// SyncStatusRepository — последний статус синхронизации аккаунта (tenant_sync_status).
type SyncStatusRepository struct {
	pool *pgxpool.Pool
}

// NewSyncStatusRepository — конструктор SyncStatusRepository.
func NewSyncStatusRepository(pool *pgxpool.Pool) *SyncStatusRepository {
	return &SyncStatusRepository{pool: pool}
}

// SaveStatus — upsert по tenant_id, последняя запись побеждает.
func (r *SyncStatusRepository) SaveStatus(ctx context.Context, status domain.SyncStatus) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO tenant_sync_status (
			tenant_id, last_sync_at, last_sync_status, last_sync_orders_count, last_error_message
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id) DO UPDATE SET
			last_sync_at = EXCLUDED.last_sync_at,
			last_sync_status = EXCLUDED.last_sync_status,
			last_sync_orders_count = EXCLUDED.last_sync_orders_count,
			last_error_message = EXCLUDED.last_error_message
	`,
		status.TenantID, status.LastSyncAt, string(status.LastSyncStatus),
		status.LastSyncOrdersCount, status.LastErrorMessage,
	); err != nil {
		return fmt.Errorf("upsert sync status: %w", err)
	}
	return nil
}

// ListStatuses — статусы всех аккаунтов по tenant_id.
func (r *SyncStatusRepository) ListStatuses(ctx context.Context) ([]domain.SyncStatus, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tenant_id, last_sync_at, last_sync_status, last_sync_orders_count, last_error_message
		FROM tenant_sync_status
		ORDER BY tenant_id
	`)
	if err != nil {
		return nil, fmt.Errorf("select sync statuses: %w", err)
	}
	defer rows.Close()

	var out []domain.SyncStatus
	for rows.Next() {
		var (
			st    domain.SyncStatus
			state string
		)
		if err := rows.Scan(&st.TenantID, &st.LastSyncAt, &state, &st.LastSyncOrdersCount, &st.LastErrorMessage); err != nil {
			return nil, fmt.Errorf("scan sync status: %w", err)
		}
		st.LastSyncStatus = domain.SyncState(state)
		st.LastSyncAt = st.LastSyncAt.UTC()
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sync status rows: %w", err)
	}
	return out, nil
}
