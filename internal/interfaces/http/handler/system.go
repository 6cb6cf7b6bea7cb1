package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// DatabaseProbe is the primary database as seen by the health check
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	TableCount(ctx context.Context) (int64, error)
}

// SystemHandler serves the API root and health endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	database  string
	db        DatabaseProbe
	extra     map[string]HealthCheck
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. Extra checks (redis, ...)
// are reported alongside the database.
func NewSystemHandler(version, database string, db DatabaseProbe, extra map[string]HealthCheck) *SystemHandler {
	return &SystemHandler{
		version:   version,
		database:  database,
		db:        db,
		extra:     extra,
		startTime: time.Now(),
	}
}

// RootResponse is returned by the API root
// @name HandlerRootResponse
type RootResponse struct {
	Message   string `json:"message" example:"BricksFlow API"`
	Status    string `json:"status" example:"running"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse reports liveness
// @name HandlerHealthResponse
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// DatabaseHealthResponse reports database connectivity
// @name HandlerDatabaseHealthResponse
type DatabaseHealthResponse struct {
	Status       string            `json:"status" example:"healthy"`
	Database     string            `json:"database" example:"bricksflow"`
	Connected    bool              `json:"connected" example:"true"`
	TablesCount  int64             `json:"tables_count" example:"16"`
	Error        string            `json:"error,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Root godoc
// @ID           getAPIRoot
// @Summary      API root
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[RootResponse]
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	h.Success(c, RootResponse{
		Message:   "BricksFlow API",
		Status:    "running",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Health godoc
// @ID           getHealth
// @Summary      Liveness check
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{Status: "healthy"})
}

// DatabaseHealth godoc
// @ID           getDatabaseHealth
// @Summary      Database health check
// @Description  Pings the database and the optional dependencies. Answers 503 when the database is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[DatabaseHealthResponse]
// @Failure      503 {object} APIResponse[DatabaseHealthResponse]
// @Router       /health/db [get]
func (h *SystemHandler) DatabaseHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp := DatabaseHealthResponse{Status: "healthy", Database: h.database, Connected: true}
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Connected = false
			resp.Error = err.Error()
		} else if n, err := h.db.TableCount(ctx); err == nil {
			resp.TablesCount = n
		}
	}

	if len(h.extra) > 0 {
		resp.Dependencies = make(map[string]string, len(h.extra))
		for name, check := range h.extra {
			if err := check(ctx); err != nil {
				// optional dependencies degrade, they do not fail the check
				resp.Dependencies[name] = "degraded: " + err.Error()
				continue
			}
			resp.Dependencies[name] = "healthy"
		}
	}

	status := http.StatusOK
	if !resp.Connected {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.Response{Success: resp.Connected, Data: resp})
}
