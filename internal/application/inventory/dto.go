package inventory

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest registers a stocked material
type CreateMaterialRequest struct {
	FactoryID          uuid.UUID        `json:"factory_id" binding:"required"`
	MaterialName       string           `json:"material_name" binding:"required,min=1,max=200"`
	Unit               string           `json:"unit" binding:"required,min=1,max=50"`
	CurrentStockQty    *decimal.Decimal `json:"current_stock_qty"`
	AverageCostPerUnit *decimal.Decimal `json:"average_cost_per_unit"`
}

// UpdateMaterialRequest is a partial update of a material
type UpdateMaterialRequest struct {
	MaterialName       *string          `json:"material_name" binding:"omitempty,min=1,max=200"`
	Unit               *string          `json:"unit" binding:"omitempty,min=1,max=50"`
	CurrentStockQty    *decimal.Decimal `json:"current_stock_qty"`
	AverageCostPerUnit *decimal.Decimal `json:"average_cost_per_unit"`
}

// MaterialResponse represents a material in API responses
type MaterialResponse struct {
	ID                 uuid.UUID       `json:"id"`
	FactoryID          uuid.UUID       `json:"factory_id"`
	MaterialName       string          `json:"material_name"`
	Unit               string          `json:"unit"`
	CurrentStockQty    decimal.Decimal `json:"current_stock_qty"`
	AverageCostPerUnit decimal.Decimal `json:"average_cost_per_unit"`
	StockValue         decimal.Decimal `json:"stock_value"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToMaterialResponse converts a domain material to a response DTO
func ToMaterialResponse(m *inventory.Material) MaterialResponse {
	return MaterialResponse{
		ID:                 m.ID,
		FactoryID:          m.FactoryID,
		MaterialName:       m.MaterialName,
		Unit:               m.Unit,
		CurrentStockQty:    m.CurrentStockQty,
		AverageCostPerUnit: m.AverageCostPerUnit,
		StockValue:         m.StockValue(),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// CreateDefinitionRequest names a material type
type CreateDefinitionRequest struct {
	FactoryID uuid.UUID `json:"factory_id" binding:"required"`
	Name      string    `json:"name" binding:"required,min=1,max=200"`
	Unit      string    `json:"unit" binding:"required,min=1,max=50"`
}

// DefinitionResponse represents a material definition
type DefinitionResponse struct {
	ID        uuid.UUID `json:"id"`
	FactoryID uuid.UUID `json:"factory_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDefinitionResponse converts a domain material definition
func ToDefinitionResponse(d *inventory.MaterialDefinition) DefinitionResponse {
	return DefinitionResponse{
		ID:        d.ID,
		FactoryID: d.FactoryID,
		Name:      d.Name,
		Unit:      d.Unit,
		CreatedAt: d.CreatedAt,
	}
}

// CreatePurchaseRequest records a material bought from a supplier
type CreatePurchaseRequest struct {
	FactoryID         uuid.UUID       `json:"factory_id" binding:"required"`
	Date              string          `json:"date" binding:"required,calendar_date"`
	MaterialID        uuid.UUID       `json:"material_id" binding:"required"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	SupplierName      string          `json:"supplier_name" binding:"max=200"`
	SupplierPhone     string          `json:"supplier_phone" binding:"max=50"`
	PaymentMade       decimal.Decimal `json:"payment_made"`
	Notes             string          `json:"notes" binding:"max=2000"`
}

// PurchaseResponse represents a material purchase
type PurchaseResponse struct {
	ID                uuid.UUID       `json:"id"`
	FactoryID         uuid.UUID       `json:"factory_id"`
	Date              string          `json:"date"`
	MaterialID        uuid.UUID       `json:"material_id"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	SupplierName      string          `json:"supplier_name"`
	SupplierPhone     string          `json:"supplier_phone"`
	PaymentMade       decimal.Decimal `json:"payment_made"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToPurchaseResponse converts a domain purchase
func ToPurchaseResponse(p *inventory.MaterialPurchase) PurchaseResponse {
	return PurchaseResponse{
		ID:                p.ID,
		FactoryID:         p.FactoryID,
		Date:              p.Date.Format(shared.DateLayout),
		MaterialID:        p.MaterialID,
		QuantityPurchased: p.QuantityPurchased,
		UnitCost:          p.UnitCost,
		TotalCost:         p.TotalCost(),
		SupplierName:      p.SupplierName,
		SupplierPhone:     p.SupplierPhone,
		PaymentMade:       p.PaymentMade,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
	}
}

// CreateUsageRequest records material consumed by production
type CreateUsageRequest struct {
	FactoryID    uuid.UUID       `json:"factory_id" binding:"required"`
	Date         string          `json:"date" binding:"required,calendar_date"`
	MaterialID   uuid.UUID       `json:"material_id" binding:"required"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Purpose      string          `json:"purpose" binding:"max=255"`
}

// UsageResponse represents a material usage entry
type UsageResponse struct {
	ID           uuid.UUID       `json:"id"`
	FactoryID    uuid.UUID       `json:"factory_id"`
	Date         string          `json:"date"`
	MaterialID   uuid.UUID       `json:"material_id"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Purpose      string          `json:"purpose"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToUsageResponse converts a domain usage entry
func ToUsageResponse(u *inventory.MaterialUsage) UsageResponse {
	return UsageResponse{
		ID:           u.ID,
		FactoryID:    u.FactoryID,
		Date:         u.Date.Format(shared.DateLayout),
		MaterialID:   u.MaterialID,
		QuantityUsed: u.QuantityUsed,
		Purpose:      u.Purpose,
		CreatedAt:    u.CreatedAt,
	}
}
