package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/bricksflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Telemetry bundles every signal provider so main can start and stop them together.
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
	Business *BusinessMetrics
	DB       *DBTracingPlugin
}

// Setup starts the providers described by cfg. Disabled signals get no-op providers.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{}
	var err error

	collector := Collector{
		Endpoint:    cfg.CollectorEndpoint,
		Insecure:    cfg.Insecure,
		ServiceName: cfg.ServiceName,
	}

	t.Tracer, err = NewTracerProvider(ctx, TraceConfig{
		Collector:     collector,
		Enabled:       cfg.Enabled,
		SamplingRatio: cfg.SamplingRatio,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}

	t.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Collector:      collector,
		Enabled:        cfg.Enabled && cfg.MetricsEnabled,
		ExportInterval: cfg.MetricsInterval,
	}, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("meter: %w", err), t.Shutdown(ctx))
	}

	t.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Collector: collector,
		Enabled:   cfg.Enabled && cfg.LogsEnabled,
	}, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("logs: %w", err), t.Shutdown(ctx))
	}

	t.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.PyroscopeURL != "",
		ServerAddress:   cfg.PyroscopeURL,
		ApplicationName: cfg.ServiceName,
		Tags:            map[string]string{"version": ServiceVersion},
	}, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("profiler: %w", err), t.Shutdown(ctx))
	}
	if t.Profiler.IsEnabled() {
		if err := t.Tracer.EnableSpanProfiles(); err != nil {
			logger.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	t.Business, err = NewBusinessMetrics(t.Meter.Meter("bricksflow/business"))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("business metrics: %w", err), t.Shutdown(ctx))
	}

	t.DB = NewDBTracingPlugin(DBTracingConfig{
		Enabled:         cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: cfg.DBSlowQueryThresh,
	}, logger)

	return t, nil
}

// Shutdown flushes and stops every started provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
