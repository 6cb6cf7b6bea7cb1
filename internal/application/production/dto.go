package production

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateLogRequest records a day's output of one brick type
type CreateLogRequest struct {
	FactoryID   uuid.UUID `json:"factory_id" binding:"required"`
	Date        string    `json:"date" binding:"required,calendar_date"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name" binding:"max=200"`
	Quantity    int       `json:"quantity" binding:"min=0"`
	Punches     *int      `json:"punches" binding:"omitempty,min=0"`
	Remarks     string    `json:"remarks" binding:"max=2000"`
}

// UpdateLogRequest is a partial update of a production log
type UpdateLogRequest struct {
	Date        *string    `json:"date" binding:"omitempty,calendar_date"`
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName *string    `json:"product_name" binding:"omitempty,max=200"`
	Quantity    *int       `json:"quantity" binding:"omitempty,min=0"`
	Punches     *int       `json:"punches" binding:"omitempty,min=0"`
	Remarks     *string    `json:"remarks" binding:"omitempty,max=2000"`
}

// LogResponse represents a production log in API responses
type LogResponse struct {
	ID          uuid.UUID `json:"id"`
	FactoryID   uuid.UUID `json:"factory_id"`
	Date        string    `json:"date"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Punches     *int      `json:"punches"`
	Remarks     string    `json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToLogResponse converts a domain log to a response DTO
func ToLogResponse(l *production.ProductionLog) LogResponse {
	return LogResponse{
		ID:          l.ID,
		FactoryID:   l.FactoryID,
		Date:        l.Date.Format(shared.DateLayout),
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		Punches:     l.Punches,
		Remarks:     l.Remarks,
		CreatedAt:   l.CreatedAt,
	}
}
