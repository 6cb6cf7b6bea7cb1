package finance

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRateRequest configures a labour or pricing rate
type CreateRateRequest struct {
	FactoryID     uuid.UUID       `json:"factory_id" binding:"required"`
	RateType      string          `json:"rate_type" binding:"required,min=1,max=100"`
	RateAmount    decimal.Decimal `json:"rate_amount"`
	EffectiveDate string          `json:"effective_date"`
	IsActive      *bool           `json:"is_active"`
	BrickTypeID   *uuid.UUID      `json:"brick_type_id"`
}

// UpdateRateRequest is a partial update of a rate
type UpdateRateRequest struct {
	RateType      *string          `json:"rate_type" binding:"omitempty,min=1,max=100"`
	RateAmount    *decimal.Decimal `json:"rate_amount"`
	EffectiveDate *string          `json:"effective_date"`
	IsActive      *bool            `json:"is_active"`
	BrickTypeID   *uuid.UUID       `json:"brick_type_id"`
}

// RateResponse represents a factory rate
type RateResponse struct {
	ID            uuid.UUID       `json:"id"`
	FactoryID     uuid.UUID       `json:"factory_id"`
	RateType      string          `json:"rate_type"`
	RateAmount    decimal.Decimal `json:"rate_amount"`
	EffectiveDate string          `json:"effective_date"`
	IsActive      bool            `json:"is_active"`
	BrickTypeID   *uuid.UUID      `json:"brick_type_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToRateResponse converts a domain rate to a response DTO
func ToRateResponse(r *finance.FactoryRate) RateResponse {
	return RateResponse{
		ID:            r.ID,
		FactoryID:     r.FactoryID,
		RateType:      r.RateType,
		RateAmount:    r.RateAmount,
		EffectiveDate: r.EffectiveDate.Format(shared.DateLayout),
		IsActive:      r.IsActive,
		BrickTypeID:   r.BrickTypeID,
		CreatedAt:     r.CreatedAt,
	}
}

// CreateExpenseRequest records an operating expense
type CreateExpenseRequest struct {
	FactoryID     uuid.UUID       `json:"factory_id" binding:"required"`
	Date          string          `json:"date" binding:"required,calendar_date"`
	ExpenseType   string          `json:"expense_type" binding:"required,min=1,max=100"`
	Description   string          `json:"description" binding:"max=2000"`
	Amount        decimal.Decimal `json:"amount"`
	VendorName    string          `json:"vendor_name" binding:"max=200"`
	ReceiptNumber string          `json:"receipt_number" binding:"max=100"`
	Notes         string          `json:"notes" binding:"max=2000"`
}

// UpdateExpenseRequest is a partial update of an expense
type UpdateExpenseRequest struct {
	Date          *string          `json:"date" binding:"omitempty,calendar_date"`
	ExpenseType   *string          `json:"expense_type" binding:"omitempty,min=1,max=100"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	Amount        *decimal.Decimal `json:"amount"`
	VendorName    *string          `json:"vendor_name" binding:"omitempty,max=200"`
	ReceiptNumber *string          `json:"receipt_number" binding:"omitempty,max=100"`
	Notes         *string          `json:"notes" binding:"omitempty,max=2000"`
}

// ExpenseResponse represents an expense
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	FactoryID     uuid.UUID       `json:"factory_id"`
	Date          string          `json:"date"`
	ExpenseType   string          `json:"expense_type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	VendorName    string          `json:"vendor_name"`
	ReceiptNumber string          `json:"receipt_number"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToExpenseResponse converts a domain expense to a response DTO
func ToExpenseResponse(e *finance.OtherExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		FactoryID:     e.FactoryID,
		Date:          e.Date.Format(shared.DateLayout),
		ExpenseType:   e.ExpenseType,
		Category:      e.Category(),
		Description:   e.Description,
		Amount:        e.Amount,
		VendorName:    e.VendorName,
		ReceiptNumber: e.ReceiptNumber,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}
