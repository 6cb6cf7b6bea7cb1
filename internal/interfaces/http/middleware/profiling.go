package middleware

import (
	"context"
	"strings"

	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling attaches pyroscope labels (route, method, factory) to the
// request so CPU profiles can be sliced per endpoint. Health and swagger
// routes are skipped.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || strings.HasPrefix(route, "/api/health") || strings.HasPrefix(route, "/swagger") {
			c.Next()
			return
		}

		labels := map[string]string{
			telemetry.ProfilingLabelRoute:     route,
			telemetry.ProfilingLabelMethod:    c.Request.Method,
			telemetry.ProfilingLabelFactoryID: GetFactoryID(c),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
