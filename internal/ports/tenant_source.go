package ports

import (
	"context"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// TenantSource — конфигурации аккаунтов (только чтение).
type TenantSource interface {
	ListTenants(ctx context.Context) ([]domain.TenantConfig, error)
	// GetTenant — (nil, nil), если аккаунт не найден.
	GetTenant(ctx context.Context, id string) (*domain.TenantConfig, error)
}

// TenantValidator — проверка конфигурации аккаунта перед запуском.
type TenantValidator interface {
	Validate(ctx context.Context, tenant domain.TenantConfig) error
}
