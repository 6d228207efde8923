package tracer

import (
	"context"
	"log"

	"learner-account-be/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const lmsHostKey = attribute.Key("lms.host")

// InitTracer installs an OTLP HTTP tracer provider when tracing is enabled.
// The returned shutdown flushes pending spans; it is a no-op when disabled.
func InitTracer(cfg config.TracingConfig) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		log.Println("OpenTelemetry tracing is disabled (set OTEL_ENABLED=true to enable)")
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Warning: Failed to create OTLP exporter: %v (tracing disabled)", err)
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg)),
	)

	otel.SetTracerProvider(tp)
	// otelfiber continues the caller's trace from incoming headers
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Printf("✅ OpenTelemetry tracer initialized for %s (endpoint: %s)", cfg.ServiceName, cfg.Endpoint)

	return tp.Shutdown
}

func newResource(cfg config.TracingConfig) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
	}
	if cfg.LmsHost != "" {
		attrs = append(attrs, lmsHostKey.String(cfg.LmsHost))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}
