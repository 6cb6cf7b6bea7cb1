package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include query variables in spans; dev only
	SlowQueryThresh time.Duration
	DBSystem        string
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin is a gorm.Plugin that registers otelgorm and annotates
// spans with rows affected, table name, errors and slow-query markers.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

var _ gorm.Plugin = (*DBTracingPlugin)(nil)

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Name implements gorm.Plugin.
func (p *DBTracingPlugin) Name() string {
	return "bricksflow:db_tracing"
}

// Initialize implements gorm.Plugin.
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

type gormRegister interface {
	Register(name string, fn func(*gorm.DB)) error
}

// registerCallbacks stamps the start time before each statement and
// annotates the otelgorm span after it, before otelgorm ends the span.
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		callback gormRegister
		hook     func(*gorm.DB)
		name     string
	}{
		{cb.Create().Before("gorm:create"), markQueryStart, "before:create"},
		{cb.Create().After("gorm:create").Before("otel:after:create"), p.annotateSpan, "after:create"},
		{cb.Query().Before("gorm:query"), markQueryStart, "before:select"},
		{cb.Query().After("gorm:query").Before("otel:after:select"), p.annotateSpan, "after:select"},
		{cb.Delete().Before("gorm:delete"), markQueryStart, "before:delete"},
		{cb.Delete().After("gorm:delete").Before("otel:after:delete"), p.annotateSpan, "after:delete"},
		{cb.Update().Before("gorm:update"), markQueryStart, "before:update"},
		{cb.Update().After("gorm:update").Before("otel:after:update"), p.annotateSpan, "after:update"},
		{cb.Row().Before("gorm:row"), markQueryStart, "before:row"},
		{cb.Row().After("gorm:row").Before("otel:after:row"), p.annotateSpan, "after:row"},
		{cb.Raw().Before("gorm:raw"), markQueryStart, "before:raw"},
		{cb.Raw().After("gorm:raw").Before("otel:after:raw"), p.annotateSpan, "after:raw"},
	}
	for _, h := range hooks {
		if err := h.callback.Register("bricksflow_trace:"+h.name, h.hook); err != nil {
			return err
		}
	}
	return nil
}

type queryStartKey struct{}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
