package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя трейсера движка синхронизации.
const InstrumentationName = "github.com/Gunvolt24/wc_bronze_sync"

// Options — параметры экспорта трейсов.
type Options struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP коллектора
	SampleRatio float64 // [0..1]
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// Возвращает функцию корректного завершения провайдера.
func SetupTracing(ctx context.Context, opts Options) (func(context.Context) error, error) {
	opts = opts.normalize()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	)

	// Глобальный провайдер и пропагатор (TraceContext + Baggage).
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}

// Tracer — трейсер из глобального провайдера (no-op, пока SetupTracing не вызван).
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// normalize — дефолты: endpoint и границы семплинга [0..1].
func (o Options) normalize() Options {
	if o.Endpoint == "" {
		o.Endpoint = "localhost:4318"
	}
	if o.ServiceName == "" {
		o.ServiceName = "wc-bronze-sync"
	}
	if o.SampleRatio < 0 {
		o.SampleRatio = 0
	}
	if o.SampleRatio > 1 {
		o.SampleRatio = 1
	}
	return o
}
