// Package testutil holds helpers shared by BricksFlow tests: a sqlmock
// backed GORM handle, JSON request helpers, fixed clocks and dates, and
// testify mocks of the domain repositories.
package testutil

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// UserIDKey is the gin context key the JWT middleware stores the caller under
const UserIDKey = "jwt_user_id"

// SQLMock opens a postgres-dialect GORM handle whose queries are answered
// by the returned sqlmock. Unmet expectations fail the test at cleanup.
func SQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err, "create sqlmock")

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err, "open gorm over sqlmock")

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet database expectations")
		_ = conn.Close()
	})
	return db, mock
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date parses a YYYY-MM-DD date in UTC, failing the test on bad input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := shared.ParseDate(s)
	require.NoError(t, err)
	return d
}
