package catalog

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateProductRequest represents a request to define a brick type
type CreateProductRequest struct {
	FactoryID       uuid.UUID `json:"factory_id" binding:"required"`
	Name            string    `json:"name" binding:"required,min=1,max=200"`
	ItemsPerPunch   *int      `json:"items_per_punch" binding:"omitempty,min=0"`
	SizeDescription string    `json:"size_description" binding:"max=255"`
	Unit            string    `json:"unit" binding:"max=50"`
}

// UpdateProductRequest represents a partial update of a brick type
type UpdateProductRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	ItemsPerPunch   *int    `json:"items_per_punch" binding:"omitempty,min=0"`
	SizeDescription *string `json:"size_description" binding:"omitempty,max=255"`
	Unit            *string `json:"unit" binding:"omitempty,max=50"`
}

// ProductResponse represents a brick type in API responses
type ProductResponse struct {
	ID              uuid.UUID `json:"id"`
	FactoryID       uuid.UUID `json:"factory_id"`
	Name            string    `json:"name"`
	ItemsPerPunch   *int      `json:"items_per_punch"`
	SizeDescription string    `json:"size_description"`
	Unit            string    `json:"unit"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.ProductDefinition) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		FactoryID:       p.FactoryID,
		Name:            p.Name,
		ItemsPerPunch:   p.ItemsPerPunch,
		SizeDescription: p.SizeDescription,
		Unit:            p.Unit,
		CreatedAt:       p.CreatedAt,
	}
}

// ToProductResponses converts a list of domain products
func ToProductResponses(products []catalog.ProductDefinition) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
