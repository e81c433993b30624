package logger

import (
	"context"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/ctxmeta"
	"go.uber.org/zap"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := New(logger)
	loggerWrap.isProd = isProd

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// New — обёртка над готовым *zap.Logger (тесты с zaptest/observer, CLI).
func New(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

// with — поля запуска из контекста: request_id, run_id, tenant_id, trace_id.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	fields := Fields(ctx)
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}

// Fields — пары ключ/значение метаданных из контекста.
func Fields(ctx context.Context) []any {
	var fields []any
	if v, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", v)
	}
	if v, ok := ctxmeta.RunIDFromContext(ctx); ok {
		fields = append(fields, "run_id", v)
	}
	if v, ok := ctxmeta.TenantIDFromContext(ctx); ok {
		fields = append(fields, "tenant_id", v)
	}
	if v, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", v)
		if s, ok := ctxmeta.SpanIDFromContext(ctx); ok {
			fields = append(fields, "span_id", s)
		}
	}
	return fields
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
func (z *ZapLogger) IsProd() bool                { return z.isProd }
