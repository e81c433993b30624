package memory

import (
	"context"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.TenantSource = (*CachedTenantSource)(nil)

const listKey = "\x00all"

// CachedTenantSource — источник аккаунтов с кэшем поверх внешнего хранилища.
// Кэшируются только успешные ответы; отсутствие аккаунта и ошибки не кэшируются.
type CachedTenantSource struct {
	next    ports.TenantSource
	tenants *LRUCacheTTL[domain.TenantConfig]
	list    *LRUCacheTTL[[]domain.TenantConfig]
}

// NewCachedTenantSource — capacity — число аккаунтов в кэше, ttl — время жизни записи.
func NewCachedTenantSource(next ports.TenantSource, capacity int, ttl time.Duration) *CachedTenantSource {
	return &CachedTenantSource{
		next:    next,
		tenants: NewLRUCacheTTL[domain.TenantConfig](capacity, ttl, nil),
		list:    NewLRUCacheTTL(1, ttl, cloneTenants),
	}
}

// ListTenants — список аккаунтов (из кэша или из хранилища).
func (s *CachedTenantSource) ListTenants(ctx context.Context) ([]domain.TenantConfig, error) {
	if all, ok := s.list.Get(listKey); ok {
		return all, nil
	}
	all, err := s.next.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	s.list.Set(listKey, all)
	for _, t := range all {
		s.tenants.Set(t.ID, t)
	}
	return cloneTenants(all), nil
}

// GetTenant — аккаунт по id; (nil, nil), если не найден.
func (s *CachedTenantSource) GetTenant(ctx context.Context, id string) (*domain.TenantConfig, error) {
	if t, ok := s.tenants.Get(id); ok {
		return &t, nil
	}
	t, err := s.next.GetTenant(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	s.tenants.Set(id, *t)
	out := *t
	return &out, nil
}

// Invalidate — сброс кэша (после изменения конфигурации).
func (s *CachedTenantSource) Invalidate(id string) {
	s.list.Delete(listKey)
	if id != "" {
		s.tenants.Delete(id)
	}
}

func cloneTenants(in []domain.TenantConfig) []domain.TenantConfig {
	if in == nil {
		return nil
	}
	return append([]domain.TenantConfig(nil), in...)
}
