package persistence

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/identity"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/partner"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&identity.User{},
		&factory.Factory{},
		&catalog.ProductDefinition{},
		&production.ProductionLog{},
		&inventory.Material{},
		&inventory.MaterialDefinition{},
		&inventory.MaterialPurchase{},
		&inventory.MaterialUsage{},
		&trade.Sale{},
		&partner.Customer{},
		&partner.Supplier{},
		&workforce.Employee{},
		&workforce.EmployeePayment{},
		&finance.FactoryRate{},
		&finance.OtherExpense{},
	)
	require.NoError(t, err)
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	return testutil.SQLMock(t)
}
