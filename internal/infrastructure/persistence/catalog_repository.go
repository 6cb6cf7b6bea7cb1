package persistence

import (
	"github.com/bricksflow/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	gormFactoryRepository[catalog.ProductDefinition]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{newGormFactoryRepository[catalog.ProductDefinition](db, "", orderByName)}
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
