package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		ProfilingLabelRoute:  "/api/sales/:id",
		ProfilingLabelMethod: "GET",
		"user_id":            "u-1",
		"empty":              "",
		"long":               strings.Repeat("x", 300),
	})

	assert.Equal(t, []string{"long", strings.Repeat("x", maxLabelValueLength), "method", "GET", "route", "/api/sales/:id"}, pairs)
}

func TestWithProfilingLabels(t *testing.T) {
	var got string
	WithProfilingLabels(context.Background(), map[string]string{ProfilingLabelRoute: "/api/sales"}, func(ctx context.Context) {
		got, _ = pprof.Label(ctx, ProfilingLabelRoute)
	})
	assert.Equal(t, "/api/sales", got)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
