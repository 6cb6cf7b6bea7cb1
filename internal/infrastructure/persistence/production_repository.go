package persistence

import (
	"github.com/bricksflow/backend/internal/domain/production"
	"gorm.io/gorm"
)

// GormProductionLogRepository implements production.LogRepository using GORM
type GormProductionLogRepository struct {
	gormFactoryRepository[production.ProductionLog]
}

// NewGormProductionLogRepository creates a new GormProductionLogRepository
func NewGormProductionLogRepository(db *gorm.DB) *GormProductionLogRepository {
	return &GormProductionLogRepository{newGormFactoryRepository[production.ProductionLog](db, "date", orderByDate)}
}

var _ production.LogRepository = (*GormProductionLogRepository)(nil)
