package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext — trace_id активного спана (спан прогона аккаунта, HTTP-запроса).
// Без валидного спана — "", false: глобальный провайдер по умолчанию no-op.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	sc := spanContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	sc := spanContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

func spanContext(ctx context.Context) trace.SpanContext {
	if ctx == nil {
		return trace.SpanContext{}
	}
	return trace.SpanFromContext(ctx).SpanContext()
}
