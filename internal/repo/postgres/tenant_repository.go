package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.TenantSource = (*TenantRepository)(nil)

// TenantRepository — конфигурация аккаунтов (tenant_accounts).
// Ошибки чтения оборачиваются в domain.ErrTenantStore.
type TenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository — конструктор TenantRepository.
func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

const selectTenantSQL = `
	SELECT id, name, base_url, consumer_key, consumer_secret, site
	FROM tenant_accounts
`

// ListTenants — включённые аккаунты по id.
func (r *TenantRepository) ListTenants(ctx context.Context) ([]domain.TenantConfig, error) {
	rows, err := r.pool.Query(ctx, selectTenantSQL+` WHERE enabled ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: select tenants: %w", domain.ErrTenantStore, err)
	}
	defer rows.Close()

	var out []domain.TenantConfig
	for rows.Next() {
		var t domain.TenantConfig
		if err := rows.Scan(&t.ID, &t.Name, &t.BaseURL, &t.ConsumerKey, &t.ConsumerSecret, &t.Site); err != nil {
			return nil, fmt.Errorf("%w: scan tenant: %w", domain.ErrTenantStore, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: tenant rows: %w", domain.ErrTenantStore, err)
	}
	return out, nil
}

// GetTenant — включённый аккаунт по id. Если не нашли, возвращает (nil, nil).
func (r *TenantRepository) GetTenant(ctx context.Context, id string) (*domain.TenantConfig, error) {
	var t domain.TenantConfig
	err := r.pool.QueryRow(ctx, selectTenantSQL+` WHERE id = $1 AND enabled`, id).
		Scan(&t.ID, &t.Name, &t.BaseURL, &t.ConsumerKey, &t.ConsumerSecret, &t.Site)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select tenant: %w", domain.ErrTenantStore, err)
	}
	return &t, nil
}

// UpsertTenant — заводит или обновляет аккаунт (импорт из файла, тесты).
func (r *TenantRepository) UpsertTenant(ctx context.Context, t domain.TenantConfig) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO tenant_accounts (id, name, base_url, consumer_key, consumer_secret, site)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			base_url = EXCLUDED.base_url,
			consumer_key = EXCLUDED.consumer_key,
			consumer_secret = EXCLUDED.consumer_secret,
			site = EXCLUDED.site
	`, t.ID, t.Name, t.BaseURL, t.ConsumerKey, t.ConsumerSecret, t.Site); err != nil {
		return fmt.Errorf("upsert tenant: %w", err)
	}
	return nil
}
