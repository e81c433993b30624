package ports

import "context"

// Logger — контракт логгера движка. Метаданные запуска (request_id, run_id, tenant_id, trace_id)
// реализация берёт из ctx сама, в формат их передавать не нужно.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
