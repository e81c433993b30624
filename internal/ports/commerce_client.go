package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// CommerceClient — постраничное чтение REST API магазина аккаунта.
// Ошибка любой страницы — ошибка всего вызова, частичный результат не возвращается.
type CommerceClient interface {
	// FetchOrders — заказы, созданные в [since, until].
	FetchOrders(ctx context.Context, tenant domain.TenantConfig, since, until time.Time) ([]domain.Order, error)
	FetchProducts(ctx context.Context, tenant domain.TenantConfig) ([]domain.Product, error)
	FetchVariations(ctx context.Context, tenant domain.TenantConfig, parentID int64) ([]domain.Variation, error)
}
