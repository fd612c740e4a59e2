package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jonathan/jobpilot/internal/config"
)

// Version is reported as the service version on exported spans and in the
// backend User-Agent.
const Version = "0.3.0"

func String(key string, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

func Int(key string, value int) attribute.KeyValue {
	return attribute.Int(key, value)
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// InitTracer points the global tracer provider at the OTLP collector in
// cfg.OTLPEndpoint. The gRPC client connects lazily, so a collector that is
// down does not fail startup; spans are dropped until it comes up.
func InitTracer(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	if !cfg.TracingEnabled() {
		return nil, errors.New("no OTLP endpoint configured")
	}

	conn, err := grpc.NewClient(cfg.OTLPEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create collector client: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(Version),
		),
	)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to describe service: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		// the provider shuts the exporter down; the connection is ours
		return errors.Join(provider.Shutdown(ctx), conn.Close())
	}, nil
}

// GetTracer returns a tracer from the global provider. Until InitTracer runs
// the global provider is a no-op.
func GetTracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(name)
}
