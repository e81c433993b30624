package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.StatusStore = (*StatusStore)(nil)

// StatusStore — последний статус по аккаунту.
type StatusStore struct {
	mu       sync.RWMutex
	statuses map[string]domain.SyncStatus
}

func NewStatusStore() *StatusStore {
	return &StatusStore{statuses: make(map[string]domain.SyncStatus)}
}

func (s *StatusStore) SaveStatus(_ context.Context, status domain.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[status.TenantID] = status
	return nil
}

// ListStatuses — по возрастанию tenant_id.
func (s *StatusStore) ListStatuses(_ context.Context) ([]domain.SyncStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SyncStatus, 0, len(s.statuses))
	for _, st := range s.statuses {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TenantID < out[j].TenantID })
	return out, nil
}

// Get — статус одного аккаунта.
func (s *StatusStore) Get(tenantID string) (domain.SyncStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[tenantID]
	return st, ok
}
