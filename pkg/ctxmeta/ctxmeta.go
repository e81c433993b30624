// Пакет ctxmeta — нейтральный слой для работы с метаданными запуска,
// которые прокидываются через context.Context (request_id, run_id, tenant_id, trace_id).
// HTTP-слой, оркестратор и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyRunID     ctxKey = "run_id"
	KeyTenantID  ctxKey = "tenant_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyRequestID)
}

// WithRunID — идентификатор одного вызова оркестратора.
func WithRunID(ctx context.Context, runID string) context.Context {
	return withValue(ctx, KeyRunID, runID)
}

func RunIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyRunID)
}

// WithTenantID — аккаунт, который сейчас синхронизируется.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return withValue(ctx, KeyTenantID, tenantID)
}

func TenantIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyTenantID)
}

func withValue(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func valueFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
