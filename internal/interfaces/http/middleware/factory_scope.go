package middleware

import (
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Factory scope keys
const (
	FactoryIDKey   = "factory_id"
	FactoryIDParam = "factory_id"
)

// FactoryScope tags the request with the factory named in the route, so
// logs, spans and profiles carry it. Ownership is still checked by the
// application services.
func FactoryScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(FactoryIDParam)
		if raw == "" {
			raw = c.Query(FactoryIDParam)
		}
		if id, err := uuid.Parse(raw); err == nil {
			c.Set(FactoryIDKey, id.String())
			c.Request = c.Request.WithContext(logger.WithFactoryID(c.Request.Context(), id.String()))
		}
		c.Next()
	}
}

// GetFactoryID returns the factory the request is scoped to, or ""
func GetFactoryID(c *gin.Context) string {
	return c.GetString(FactoryIDKey)
}
