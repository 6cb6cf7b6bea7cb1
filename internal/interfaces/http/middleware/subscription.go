package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActionChecker reports whether a user's factory accepts writes
type ActionChecker interface {
	CanPerformAction(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ReadOnlyGateConfig holds configuration for the read-only gate
type ReadOnlyGateConfig struct {
	Checker ActionChecker
	// ExemptRoutes are "METHOD /route/pattern" pairs that may always write
	ExemptRoutes []string
}

// ReadOnlyGate rejects mutating requests with 402 when the caller's factory
// is on an expired trial or a lapsed plan. Reads always pass. Must run
// after JWTAuthMiddleware.
func ReadOnlyGate(cfg ReadOnlyGateConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) || slices.Contains(cfg.ExemptRoutes, c.Request.Method+" "+c.FullPath()) {
			c.Next()
			return
		}

		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			// unauthenticated requests are the JWT middleware's business
			c.Next()
			return
		}

		ok, err := cfg.Checker.CanPerformAction(c.Request.Context(), userID)
		if err != nil {
			logger.L(c.Request.Context()).Error("Subscription check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", GetRequestID(c)))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusPaymentRequired,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeSubscriptionInactive,
					"Your trial or plan has expired. Renew your subscription to make changes.", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
