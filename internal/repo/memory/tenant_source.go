package memory

import (
	"context"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.TenantSource = (*TenantSource)(nil)

// TenantSource — неизменяемый список аккаунтов (из файла или тестов); порядок сохраняется.
type TenantSource struct {
	tenants []domain.TenantConfig
}

func NewTenantSource(tenants []domain.TenantConfig) *TenantSource {
	return &TenantSource{tenants: append([]domain.TenantConfig(nil), tenants...)}
}

func (s *TenantSource) ListTenants(_ context.Context) ([]domain.TenantConfig, error) {
	return append([]domain.TenantConfig(nil), s.tenants...), nil
}

func (s *TenantSource) GetTenant(_ context.Context, id string) (*domain.TenantConfig, error) {
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			t := s.tenants[i]
			return &t, nil
		}
	}
	return nil, nil
}
