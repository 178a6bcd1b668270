package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	chatTurns   metric.Int64Counter
	aiFallbacks metric.Int64Counter
)

// SetupTracing initializes OpenTelemetry tracing with stdout exporter (replace with OTLP in prod)
func SetupTracing(serviceName string) (func(), error) {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	provider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return func() { _ = provider.Shutdown(context.Background()) }, nil
}

// SetupMetrics initializes the Prometheus metrics exporter and the
// application counters. Metrics are served by MetricsHandler.
func SetupMetrics(serviceName string) (*sdkmetric.MeterProvider, error) {
	exp, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(mp)

	meter := mp.Meter(serviceName)
	chatTurns, err = meter.Int64Counter("chat_turns_total",
		metric.WithDescription("Number of orchestrated chat turns completed"))
	if err != nil {
		return nil, err
	}
	aiFallbacks, err = meter.Int64Counter("ai_fallbacks_total",
		metric.WithDescription("Number of AI replies substituted by a fallback message"))
	if err != nil {
		return nil, err
	}

	return mp, nil
}

// MetricsHandler returns the HTTP handler exposing Prometheus metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordChatTurn increments the chat turn counter
func RecordChatTurn(ctx context.Context) {
	if chatTurns != nil {
		chatTurns.Add(ctx, 1)
	}
}

// RecordAIFallback increments the AI fallback counter
func RecordAIFallback(ctx context.Context) {
	if aiFallbacks != nil {
		aiFallbacks.Add(ctx, 1)
	}
}
