package persistence

import (
	"context"
	"errors"

	"github.com/bricksflow/backend/internal/domain/inventory"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMaterialRepository implements inventory.MaterialRepository using GORM
type GormMaterialRepository struct {
	gormFactoryRepository[inventory.Material]
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{newGormFactoryRepository[inventory.Material](db, "", "material_name ASC")}
}

// GormMaterialDefinitionRepository implements inventory.MaterialDefinitionRepository using GORM
type GormMaterialDefinitionRepository struct {
	gormFactoryRepository[inventory.MaterialDefinition]
}

// NewGormMaterialDefinitionRepository creates a new GormMaterialDefinitionRepository
func NewGormMaterialDefinitionRepository(db *gorm.DB) *GormMaterialDefinitionRepository {
	return &GormMaterialDefinitionRepository{newGormFactoryRepository[inventory.MaterialDefinition](db, "", orderByName)}
}

// GormMaterialPurchaseRepository implements inventory.PurchaseRepository using GORM
type GormMaterialPurchaseRepository struct {
	gormFactoryRepository[inventory.MaterialPurchase]
}

// NewGormMaterialPurchaseRepository creates a new GormMaterialPurchaseRepository
func NewGormMaterialPurchaseRepository(db *gorm.DB) *GormMaterialPurchaseRepository {
	return &GormMaterialPurchaseRepository{newGormFactoryRepository[inventory.MaterialPurchase](db, "date", orderByDate)}
}

// GormMaterialUsageRepository implements inventory.UsageRepository using GORM
type GormMaterialUsageRepository struct {
	gormFactoryRepository[inventory.MaterialUsage]
}

// NewGormMaterialUsageRepository creates a new GormMaterialUsageRepository
func NewGormMaterialUsageRepository(db *gorm.DB) *GormMaterialUsageRepository {
	return &GormMaterialUsageRepository{newGormFactoryRepository[inventory.MaterialUsage](db, "date", orderByDate)}
}

// GormStockLedger writes purchases and usage together with the stock change
// they cause in one transaction. The material row is locked for update so
// concurrent movements on the same material serialize.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// RecordPurchase inserts the purchase and folds it into the material's
// weighted average cost. The returned material is nil when the purchase
// references a material that no longer exists.
func (l *GormStockLedger) RecordPurchase(ctx context.Context, purchase *inventory.MaterialPurchase) (*inventory.Material, error) {
	return l.record(ctx, purchase, purchase.MaterialID.String(), func(m *inventory.Material) {
		m.Receive(purchase.QuantityPurchased, purchase.UnitCost)
	})
}

// RecordUsage inserts the usage and draws the material's stock down, never
// below zero.
func (l *GormStockLedger) RecordUsage(ctx context.Context, usage *inventory.MaterialUsage) (*inventory.Material, error) {
	return l.record(ctx, usage, usage.MaterialID.String(), func(m *inventory.Material) {
		m.Consume(usage.QuantityUsed)
	})
}

func (l *GormStockLedger) record(ctx context.Context, movement any, materialID string, apply func(*inventory.Material)) (*inventory.Material, error) {
	var updated *inventory.Material
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		var material inventory.Material
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&material, "id = ?", materialID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		apply(&material)
		if err := tx.Model(&material).Select("current_stock_qty", "average_cost_per_unit", "updated_at").Updates(&material).Error; err != nil {
			return err
		}
		updated = &material
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

var (
	_ inventory.MaterialRepository           = (*GormMaterialRepository)(nil)
	_ inventory.MaterialDefinitionRepository = (*GormMaterialDefinitionRepository)(nil)
	_ inventory.PurchaseRepository           = (*GormMaterialPurchaseRepository)(nil)
	_ inventory.UsageRepository              = (*GormMaterialUsageRepository)(nil)
	_ inventory.StockLedger                  = (*GormStockLedger)(nil)
)
