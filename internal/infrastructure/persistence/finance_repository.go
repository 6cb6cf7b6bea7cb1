package persistence

import (
	"github.com/bricksflow/backend/internal/domain/finance"
	"gorm.io/gorm"
)

// GormRateRepository implements finance.RateRepository using GORM
type GormRateRepository struct {
	gormFactoryRepository[finance.FactoryRate]
}

// NewGormRateRepository creates a new GormRateRepository. Rates are listed
// by effective date so the active-rate lookup sees the newest first.
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{newGormFactoryRepository[finance.FactoryRate](db, "", "effective_date DESC, created_at DESC")}
}

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	gormFactoryRepository[finance.OtherExpense]
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{newGormFactoryRepository[finance.OtherExpense](db, "date", orderByDate)}
}

var (
	_ finance.RateRepository    = (*GormRateRepository)(nil)
	_ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
)
