package inventory

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialPurchase is a material bought from a supplier
type MaterialPurchase struct {
	shared.FactoryEntity
	Date              time.Time       `gorm:"type:date;not null;index"`
	MaterialID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityPurchased decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SupplierName      string          `gorm:"type:varchar(200)"`
	SupplierPhone     string          `gorm:"type:varchar(50)"`
	PaymentMade       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MaterialPurchase) TableName() string {
	return "material_purchases"
}

// NewMaterialPurchase creates a purchase entry
func NewMaterialPurchase(factoryID uuid.UUID, date time.Time, materialID uuid.UUID, qty, unitCost, paymentMade decimal.Decimal) (*MaterialPurchase, error) {
	if !qty.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessage("Quantity purchased must be positive")
	}
	if unitCost.IsNegative() || paymentMade.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage("Amounts cannot be negative")
	}
	return &MaterialPurchase{
		FactoryEntity:     shared.NewFactoryEntity(factoryID),
		Date:              date,
		MaterialID:        materialID,
		QuantityPurchased: qty,
		UnitCost:          unitCost,
		PaymentMade:       paymentMade,
	}, nil
}

// TotalCost returns quantity times unit cost
func (p *MaterialPurchase) TotalCost() decimal.Decimal {
	return p.QuantityPurchased.Mul(p.UnitCost)
}

// MaterialUsage is material consumed by production
type MaterialUsage struct {
	shared.FactoryEntity
	Date         time.Time       `gorm:"type:date;not null;index"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityUsed decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Purpose      string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (MaterialUsage) TableName() string {
	return "material_usage"
}

// NewMaterialUsage creates a usage entry
func NewMaterialUsage(factoryID uuid.UUID, date time.Time, materialID uuid.UUID, qty decimal.Decimal, purpose string) (*MaterialUsage, error) {
	if !qty.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessage("Quantity used must be positive")
	}
	return &MaterialUsage{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Date:          date,
		MaterialID:    materialID,
		QuantityUsed:  qty,
		Purpose:       purpose,
	}, nil
}
