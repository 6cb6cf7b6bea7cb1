package inventory

import (
	"strings"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a raw material held in stock (clay, coal, fly ash, ...)
type Material struct {
	shared.FactoryEntity
	MaterialName       string          `gorm:"type:varchar(200);not null"`
	Unit               string          `gorm:"type:varchar(50);not null"`
	CurrentStockQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AverageCostPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Material) TableName() string {
	return "materials"
}

// NewMaterial creates a stocked material
func NewMaterial(factoryID uuid.UUID, name, unit string, qty, avgCost decimal.Decimal) (*Material, error) {
	m := &Material{FactoryEntity: shared.NewFactoryEntity(factoryID)}
	if err := m.SetName(name); err != nil {
		return nil, err
	}
	if err := m.SetUnit(unit); err != nil {
		return nil, err
	}
	if err := m.SetStock(qty, avgCost); err != nil {
		return nil, err
	}
	return m, nil
}

// SetName validates and sets the material name
func (m *Material) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalidInput.WithMessage("Material name cannot be empty")
	}
	m.MaterialName = name
	return nil
}

// SetUnit validates and sets the unit of measure
func (m *Material) SetUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.ErrInvalidInput.WithMessage("Unit cannot be empty")
	}
	m.Unit = unit
	return nil
}

// SetStock overwrites quantity and average cost
func (m *Material) SetStock(qty, avgCost decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.ErrInvalidInput.WithMessage("Stock quantity cannot be negative")
	}
	if avgCost.IsNegative() {
		return shared.ErrInvalidInput.WithMessage("Average cost cannot be negative")
	}
	m.CurrentStockQty = qty
	m.AverageCostPerUnit = avgCost
	return nil
}

// Receive adds purchased stock and recomputes the weighted average cost:
// (qty*avg + received*unitCost) / (qty+received), or zero when the new
// quantity is not positive.
func (m *Material) Receive(quantity, unitCost decimal.Decimal) {
	newQty := m.CurrentStockQty.Add(quantity)
	if newQty.LessThanOrEqual(decimal.Zero) {
		m.CurrentStockQty = newQty
		m.AverageCostPerUnit = decimal.Zero
		m.Touch()
		return
	}
	totalValue := m.CurrentStockQty.Mul(m.AverageCostPerUnit).Add(quantity.Mul(unitCost))
	m.CurrentStockQty = newQty
	m.AverageCostPerUnit = totalValue.Div(newQty).Round(4)
	m.Touch()
}

// Consume removes used stock, never going below zero. Average cost is kept.
func (m *Material) Consume(quantity decimal.Decimal) {
	m.CurrentStockQty = decimal.Max(decimal.Zero, m.CurrentStockQty.Sub(quantity))
	m.Touch()
}

// StockValue returns quantity times average cost
func (m *Material) StockValue() decimal.Decimal {
	return m.CurrentStockQty.Mul(m.AverageCostPerUnit)
}

// MaterialDefinition is a named material type used to prefill purchase forms
type MaterialDefinition struct {
	shared.FactoryEntity
	Name string `gorm:"type:varchar(200);not null"`
	Unit string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (MaterialDefinition) TableName() string {
	return "material_definitions"
}

// NewMaterialDefinition creates a material type
func NewMaterialDefinition(factoryID uuid.UUID, name, unit string) (*MaterialDefinition, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Material name cannot be empty")
	}
	if unit == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Unit cannot be empty")
	}
	return &MaterialDefinition{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Name:          name,
		Unit:          unit,
	}, nil
}
