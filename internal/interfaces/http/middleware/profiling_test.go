package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProfiling_AddsLabels(t *testing.T) {
	factoryID := uuid.New()
	var route, method, factory string

	router := gin.New()
	router.Use(FactoryScope(), Profiling(true))
	router.GET("/api/production/factory/:factory_id", func(c *gin.Context) {
		ctx := c.Request.Context()
		route, _ = pprof.Label(ctx, telemetry.ProfilingLabelRoute)
		method, _ = pprof.Label(ctx, telemetry.ProfilingLabelMethod)
		factory, _ = pprof.Label(ctx, telemetry.ProfilingLabelFactoryID)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/production/factory/"+factoryID.String(), nil))

	assert.Equal(t, "/api/production/factory/:factory_id", route)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, factoryID.String(), factory)
}

func TestProfiling_SkipsHealth(t *testing.T) {
	var labelled bool

	router := gin.New()
	router.Use(Profiling(true))
	router.GET("/api/health", func(c *gin.Context) {
		_, labelled = pprof.Label(c.Request.Context(), telemetry.ProfilingLabelRoute)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.False(t, labelled)
}
