package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := range 3 {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.Equal(t, 0, rl.Remaining("1.2.3.4"))

	// other clients have their own bucket
	assert.True(t, rl.Allow("5.6.7.8"))
	assert.Equal(t, 3, rl.Remaining("9.9.9.9"))

	// one token comes back every window/limit
	now = now.Add(20 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(3 * time.Minute)
	rl.Allow("b")

	assert.Len(t, rl.clients, 1)
}

func TestRateLimit_Middleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	router := gin.New()
	router.Use(RequestID(), RateLimit(limiter))
	router.POST("/api/auth/login", okHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, dto.ErrCodeRateLimited, decodeError(t, rec).Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
