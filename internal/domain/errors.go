package domain

import "errors"

var (
	// ErrInvalidTenant — ошибка конфигурации аккаунта (например, кривой base_url).
	// Прерывает только этот аккаунт.
	ErrInvalidTenant = errors.New("invalid tenant config")

	// ErrIncompleteCredentials — не задан id, ключ или секрет; аккаунт пропускается.
	ErrIncompleteCredentials = errors.New("tenant credentials are incomplete")

	// ErrOrderBatchFailed — не записался батч строк заказов; фатально для аккаунта.
	ErrOrderBatchFailed = errors.New("order batch write failed")

	// ErrTenantStore — хранилище аккаунтов недоступно или не настроено (уровень инфраструктуры).
	ErrTenantStore = errors.New("tenant store unavailable")

	// ErrTenantBusy — синхронизация аккаунта уже идёт в другом процессе.
	ErrTenantBusy = errors.New("tenant sync already in progress")

	// ErrInvalidRequest — некорректный запрос на запуск синхронизации.
	ErrInvalidRequest = errors.New("invalid sync request")
)
