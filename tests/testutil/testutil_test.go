package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSQLMock(t *testing.T) {
	db, mock := SQLMock(t)
	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, at, FixedClock(at)())
	assert.Equal(t, at, Date(t, "2025-03-01"))
}

func TestPerformJSON(t *testing.T) {
	engine := gin.New()
	engine.Use(AuthAs("user-1"))
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": c.GetString(UserIDKey), "name": body["name"]}})
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "ERR_NOT_FOUND", "message": "gone"}})
	})

	w := PerformJSON(t, engine, http.MethodPost, "/echo", map[string]string{"name": "kiln"}, nil)
	data := DecodeData[map[string]string](t, w)
	assert.Equal(t, "user-1", data["user"])
	assert.Equal(t, "kiln", data["name"])

	w = PerformJSON(t, engine, http.MethodGet, "/fail", nil, nil)
	env := AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
	assert.Equal(t, "gone", env.Error.Message)
}

func TestMockScopedRepository(t *testing.T) {
	repo := new(MockScopedRepository[catalog.ProductDefinition])
	var _ catalog.ProductRepository = repo

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := repo.FindByID(t.Context(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestOwnedFactory(t *testing.T) {
	owner, id := uuid.New(), uuid.New()
	f := OwnedFactory(id, owner, time.Now())
	assert.True(t, f.IsOwnedBy(owner))
	assert.Equal(t, id, f.ID)
}
