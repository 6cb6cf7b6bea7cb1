package partner

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest represents a request to add a customer
type CreateCustomerRequest struct {
	FactoryID uuid.UUID `json:"factory_id" binding:"required"`
	Name      string    `json:"name" binding:"required,min=1,max=200"`
	Phone     string    `json:"phone" binding:"max=50"`
	Address   string    `json:"address" binding:"max=500"`
	Notes     string    `json:"notes" binding:"max=2000"`
}

// UpdateCustomerRequest represents a partial update of a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	FactoryID uuid.UUID `json:"factory_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		FactoryID: c.FactoryID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

// CreateSupplierRequest represents a request to add a supplier
type CreateSupplierRequest struct {
	FactoryID     uuid.UUID `json:"factory_id" binding:"required"`
	Name          string    `json:"name" binding:"required,min=1,max=200"`
	ContactNumber string    `json:"contact_number" binding:"max=50"`
	Address       string    `json:"address" binding:"max=500"`
	MaterialType  string    `json:"material_type" binding:"max=100"`
}

// UpdateSupplierRequest represents a partial update of a supplier
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=50"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	MaterialType  *string `json:"material_type" binding:"omitempty,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	FactoryID     uuid.UUID `json:"factory_id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	MaterialType  string    `json:"material_type"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		FactoryID:     s.FactoryID,
		Name:          s.Name,
		ContactNumber: s.ContactNumber,
		Address:       s.Address,
		MaterialType:  s.MaterialType,
		CreatedAt:     s.CreatedAt,
	}
}
