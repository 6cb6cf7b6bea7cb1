package telemetry

import (
	"context"
	"slices"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelFactoryID = "factory_id"
	ProfilingLabelOperation = "operation"
)

const maxLabelValueLength = 128

// highCardinalityLabels are dropped; they would explode profile storage
var highCardinalityLabels = map[string]bool{
	"user_id":    true,
	"request_id": true,
	"sale_id":    true,
	"trace_id":   true,
}

// WithProfilingLabels runs fn with pyroscope labels attached to ctx. The
// labels also show up in plain pprof output.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// sanitizeLabels returns key/value pairs in key order, without empty or
// high-cardinality entries and with values truncated.
func sanitizeLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		if k == "" || v == "" || highCardinalityLabels[k] {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		v := labels[k]
		if len(v) > maxLabelValueLength {
			v = v[:maxLabelValueLength]
		}
		pairs = append(pairs, k, v)
	}
	return pairs
}
