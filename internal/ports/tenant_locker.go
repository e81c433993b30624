package ports

import "context"

// TenantLocker — запрет параллельных запусков одного аккаунта.
type TenantLocker interface {
	// Acquire — false, если аккаунт уже синхронизируется.
	Acquire(ctx context.Context, tenantID string) (bool, error)
	// Release — освобождает только свою блокировку; повторный вызов безопасен.
	Release(ctx context.Context, tenantID string) error
}
