package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.StatusStore = (*StatusStore)(nil)

// StatusStore — tenant_sync_status в SQLite.
type StatusStore struct {
	db *sql.DB
}

// NewStatusStore — конструктор StatusStore.
func NewStatusStore(db *sql.DB) *StatusStore { return &StatusStore{db: db} }

// SaveStatus — upsert по tenant_id.
func (s *StatusStore) SaveStatus(ctx context.Context, st domain.SyncStatus) error {
	at := st.LastSyncAt.UTC()
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO tenant_sync_status (tenant_id, last_sync_at, last_sync_status, last_sync_orders_count, last_error_message)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (tenant_id) DO UPDATE SET
	last_sync_at = excluded.last_sync_at,
	last_sync_status = excluded.last_sync_status,
	last_sync_orders_count = excluded.last_sync_orders_count,
	last_error_message = excluded.last_error_message
`, st.TenantID, timeText(&at), string(st.LastSyncStatus), st.LastSyncOrdersCount, st.LastErrorMessage); err != nil {
		return fmt.Errorf("upsert sync status: %w", err)
	}
	return nil
}

// ListStatuses — статусы по tenant_id.
func (s *StatusStore) ListStatuses(ctx context.Context) ([]domain.SyncStatus, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT tenant_id, last_sync_at, last_sync_status, last_sync_orders_count, last_error_message
FROM tenant_sync_status ORDER BY tenant_id`)
	if err != nil {
		return nil, fmt.Errorf("select sync statuses: %w", err)
	}
	defer rows.Close()

	var out []domain.SyncStatus
	for rows.Next() {
		var (
			st        domain.SyncStatus
			at, state string
		)
		if err := rows.Scan(&st.TenantID, &at, &state, &st.LastSyncOrdersCount, &st.LastErrorMessage); err != nil {
			return nil, fmt.Errorf("scan sync status: %w", err)
		}
		if st.LastSyncAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("parse last_sync_at %q: %w", at, err)
		}
		st.LastSyncStatus = domain.SyncState(state)
		out = append(out, st)
	}
	return out, rows.Err()
}
