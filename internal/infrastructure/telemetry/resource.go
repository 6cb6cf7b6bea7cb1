// Package telemetry wires OpenTelemetry tracing, metrics and logs plus
// Pyroscope continuous profiling for the BricksFlow backend.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported on every exported signal
const ServiceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Collector is the OTLP gRPC endpoint a signal exports to
type Collector struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

func (c Collector) resource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(c.ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}
	return res, nil
}

// shutdown stops a provider, giving it at most shutdownTimeout to flush
func shutdown(ctx context.Context, signal string, stop func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		return fmt.Errorf("shutdown %s provider: %w", signal, err)
	}
	return nil
}
