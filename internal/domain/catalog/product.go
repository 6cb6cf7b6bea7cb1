package catalog

import (
	"strings"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultUnit is the unit of a product when none is given
const DefaultUnit = "pieces"

// ProductDefinition is a brick type a factory produces and sells
type ProductDefinition struct {
	shared.FactoryEntity
	Name            string `gorm:"type:varchar(200);not null"`
	ItemsPerPunch   *int
	SizeDescription string `gorm:"type:varchar(255)"`
	Unit            string `gorm:"type:varchar(50);not null;default:'pieces'"`
}

// TableName returns the table name for GORM
func (ProductDefinition) TableName() string {
	return "product_definitions"
}

// NewProductDefinition creates a brick type
func NewProductDefinition(factoryID uuid.UUID, name string, itemsPerPunch *int, sizeDescription, unit string) (*ProductDefinition, error) {
	p := &ProductDefinition{FactoryEntity: shared.NewFactoryEntity(factoryID)}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetItemsPerPunch(itemsPerPunch); err != nil {
		return nil, err
	}
	p.SizeDescription = strings.TrimSpace(sizeDescription)
	p.SetUnit(unit)
	return p, nil
}

// SetName validates and sets the product name
func (p *ProductDefinition) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalidInput.WithMessage("Product name cannot be empty")
	}
	p.Name = name
	return nil
}

// SetItemsPerPunch sets how many bricks one machine punch yields
func (p *ProductDefinition) SetItemsPerPunch(n *int) error {
	if n != nil && *n < 0 {
		return shared.ErrInvalidInput.WithMessage("Items per punch cannot be negative")
	}
	p.ItemsPerPunch = n
	return nil
}

// SetUnit sets the unit, falling back to pieces
func (p *ProductDefinition) SetUnit(unit string) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultUnit
	}
	p.Unit = unit
}
