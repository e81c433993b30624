package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

// Проверка, что TenantValidator удовлетворяет интерфейсу ports.TenantValidator.
var _ ports.TenantValidator = (*TenantValidator)(nil)

// TenantValidator — проверка конфигурации аккаунта.
//   - нет id, ключа или секрета → domain.ErrIncompleteCredentials (аккаунт пропускается);
//   - кривой base_url → domain.ErrInvalidTenant (аккаунт запускается и падает с ошибкой конфигурации).
type TenantValidator struct{}

// NewTenantValidator — конструктор TenantValidator.
func NewTenantValidator() *TenantValidator { return &TenantValidator{} }

// Validate — проверяет поля аккаунта.
func (v *TenantValidator) Validate(_ context.Context, tenant domain.TenantConfig) error {
	if strings.TrimSpace(tenant.ID) == "" {
		return fmt.Errorf("%w: id обязателен", domain.ErrIncompleteCredentials)
	}
	if strings.TrimSpace(tenant.ConsumerKey) == "" {
		return fmt.Errorf("%w: consumer_key обязателен (account=%s)", domain.ErrIncompleteCredentials, tenant.ID)
	}
	if strings.TrimSpace(tenant.ConsumerSecret) == "" {
		return fmt.Errorf("%w: consumer_secret обязателен (account=%s)", domain.ErrIncompleteCredentials, tenant.ID)
	}
	if _, err := tenant.ParsedBaseURL(); err != nil {
		return err
	}
	return nil
}
