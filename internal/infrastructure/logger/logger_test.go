package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{" Warn ", zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_TeesExtraCores(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	cfg := DefaultConfig()
	cfg.Output = "stderr"

	l, err := New(cfg, core)
	require.NoError(t, err)

	l.Info("factory created")
	require.Len(t, recorded.All(), 1)
	assert.Equal(t, "factory created", recorded.All()[0].Message)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bricksflow.log")
	cfg := &Config{Level: "warn", Format: "json", Output: path}

	l, err := New(cfg)
	require.NoError(t, err)
	l.Info("dropped")
	l.Warn("kiln temperature high", zap.Int("celsius", 1100))
	Sync(l)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"msg":"kiln temperature high"`)
	assert.Contains(t, string(data), `"celsius":1100`)
}

func TestNew_BadOutput(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestFromContext_NotFound(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestContextLogger_EnrichesFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithFactoryID(ctx, "fac-1")
	ctx = WithUserID(ctx, "usr-1")

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	L(ctx).With(zap.String("op", "test")).Info("hello")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "fac-1", fields["factory_id"])
	assert.Equal(t, "usr-1", fields["user_id"])
	assert.Equal(t, "test", fields["op"])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
}

func TestContextLogger_NoCorrelation(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	WithLogger(context.Background(), zap.New(core)).Warn("plain")

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].ContextMap())
}
