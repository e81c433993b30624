package lock

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.TenantLocker = (*LocalLocker)(nil)

// LocalLocker — блокировка аккаунтов внутри одного процесса (без Redis).
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

// Acquire — не ждёт: занятый аккаунт сразу даёт false.
func (l *LocalLocker) Acquire(_ context.Context, tenantID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[tenantID]; busy {
		return false, nil
	}
	l.held[tenantID] = struct{}{}
	return true, nil
}

func (l *LocalLocker) Release(_ context.Context, tenantID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, tenantID)
	return nil
}
