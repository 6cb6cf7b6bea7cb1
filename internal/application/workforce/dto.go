package workforce

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest represents a request to add an employee
type CreateEmployeeRequest struct {
	FactoryID uuid.UUID        `json:"factory_id" binding:"required"`
	Name      string           `json:"name" binding:"required,min=1,max=200"`
	Phone     string           `json:"phone" binding:"max=50"`
	Role      string           `json:"role" binding:"max=100"`
	DailyWage *decimal.Decimal `json:"daily_wage"`
	IsActive  *bool            `json:"is_active"`
}

// UpdateEmployeeRequest represents a partial update of an employee
type UpdateEmployeeRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone     *string          `json:"phone" binding:"omitempty,max=50"`
	Role      *string          `json:"role" binding:"omitempty,max=100"`
	DailyWage *decimal.Decimal `json:"daily_wage"`
	IsActive  *bool            `json:"is_active"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID        uuid.UUID        `json:"id"`
	FactoryID uuid.UUID        `json:"factory_id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Role      string           `json:"role"`
	DailyWage *decimal.Decimal `json:"daily_wage"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToEmployeeResponse converts a domain employee to a response DTO
func ToEmployeeResponse(e *workforce.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FactoryID: e.FactoryID,
		Name:      e.Name,
		Phone:     e.Phone,
		Role:      e.Role,
		DailyWage: e.DailyWage,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}

// CreatePaymentRequest records money paid to a worker
type CreatePaymentRequest struct {
	FactoryID    uuid.UUID       `json:"factory_id" binding:"required"`
	Date         string          `json:"date" binding:"required,calendar_date"`
	EmployeeName string          `json:"employee_name" binding:"required,min=1,max=200"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentType  string          `json:"payment_type" binding:"max=50"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// PaymentResponse represents an employee payment
type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	FactoryID    uuid.UUID       `json:"factory_id"`
	Date         string          `json:"date"`
	EmployeeName string          `json:"employee_name"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentType  string          `json:"payment_type"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *workforce.EmployeePayment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		FactoryID:    p.FactoryID,
		Date:         p.Date.Format(shared.DateLayout),
		EmployeeName: p.EmployeeName,
		Amount:       p.Amount,
		PaymentType:  p.PaymentType,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}
