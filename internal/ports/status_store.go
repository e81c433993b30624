package ports

import (
	"context"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// StatusStore — последний статус синхронизации по аккаунтам.
type StatusStore interface {
	SaveStatus(ctx context.Context, status domain.SyncStatus) error
	ListStatuses(ctx context.Context) ([]domain.SyncStatus, error)
}
