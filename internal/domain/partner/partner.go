package partner

import (
	"strings"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is a buyer of bricks
type Customer struct {
	shared.FactoryEntity
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Notes   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer
func NewCustomer(factoryID uuid.UUID, name, phone, address, notes string) (*Customer, error) {
	c := &Customer{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Phone:         strings.TrimSpace(phone),
		Address:       address,
		Notes:         notes,
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	return c, nil
}

// SetName validates and sets the customer name
func (c *Customer) SetName(name string) error {
	n, err := requireName(name, "Customer")
	if err != nil {
		return err
	}
	c.Name = n
	return nil
}

// Supplier provides raw materials
type Supplier struct {
	shared.FactoryEntity
	Name          string `gorm:"type:varchar(200);not null"`
	ContactNumber string `gorm:"type:varchar(50)"`
	Address       string `gorm:"type:text"`
	MaterialType  string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a supplier
func NewSupplier(factoryID uuid.UUID, name, contact, address, materialType string) (*Supplier, error) {
	s := &Supplier{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		ContactNumber: strings.TrimSpace(contact),
		Address:       address,
		MaterialType:  strings.TrimSpace(materialType),
	}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	return s, nil
}

// SetName validates and sets the supplier name
func (s *Supplier) SetName(name string) error {
	n, err := requireName(name, "Supplier")
	if err != nil {
		return err
	}
	s.Name = n
	return nil
}

func requireName(name, kind string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.ErrInvalidInput.WithMessage(kind + " name cannot be empty")
	}
	if len(name) > 200 {
		return "", shared.ErrInvalidInput.WithMessage(kind + " name cannot exceed 200 characters")
	}
	return name, nil
}
