package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Plan     string `json:"plan_type" binding:"omitempty,oneof=monthly yearly"`
	Since    string `json:"since" binding:"omitempty,calendar_date"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req registerBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestHandleValidationError(t *testing.T) {
	router := validationRouter()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"nope","password":"123","plan_type":"weekly"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	info := decodeError(t, rec)
	assert.Equal(t, dto.ErrCodeValidation, info.Code)
	assert.NotEmpty(t, info.RequestID)
	require.Len(t, info.Details, 3)

	messages := map[string]string{}
	for _, d := range info.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid email format", messages["email"])
	assert.Equal(t, "Must be at least 6 characters", messages["password"])
	assert.Equal(t, "Must be one of: monthly yearly", messages["plan_type"])
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	router := validationRouter()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	info := decodeError(t, rec)
	assert.Equal(t, dto.ErrCodeValidation, info.Code)
	assert.Empty(t, info.Details)
}

func TestHandleValidationError_CalendarDate(t *testing.T) {
	router := validationRouter()

	for body, wantOK := range map[string]bool{
		`{"email":"a@b.co","password":"123456","since":"2024-02-29"}`: true,
		`{"email":"a@b.co","password":"123456"}`:                      true,
		`{"email":"a@b.co","password":"123456","since":"2023-02-29"}`: false,
		`{"email":"a@b.co","password":"123456","since":"29/02/2024"}`: false,
	} {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if wantOK {
			assert.Equal(t, http.StatusOK, rec.Code, body)
			continue
		}
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		info := decodeError(t, rec)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "since", info.Details[0].Field)
		assert.Equal(t, "Must be a date in YYYY-MM-DD format", info.Details[0].Message)
	}
}
