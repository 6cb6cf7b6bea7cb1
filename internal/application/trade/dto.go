package trade

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest records a brick sale. When total_amount is omitted it is
// quantity times rate; when balance_due is omitted it is total minus received.
type CreateSaleRequest struct {
	FactoryID      uuid.UUID        `json:"factory_id" binding:"required"`
	Date           string           `json:"date" binding:"required,calendar_date"`
	CustomerName   string           `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerPhone  string           `json:"customer_phone" binding:"max=50"`
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	QuantitySold   int              `json:"quantity_sold" binding:"min=0"`
	RatePerBrick   decimal.Decimal  `json:"rate_per_brick"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	AmountReceived decimal.Decimal  `json:"amount_received"`
	BalanceDue     *decimal.Decimal `json:"balance_due"`
	Notes          string           `json:"notes" binding:"max=2000"`
}

// UpdateSaleRequest is a partial update of a sale
type UpdateSaleRequest struct {
	Date           *string          `json:"date" binding:"omitempty,calendar_date"`
	CustomerName   *string          `json:"customer_name" binding:"omitempty,min=1,max=200"`
	CustomerPhone  *string          `json:"customer_phone" binding:"omitempty,max=50"`
	ProductID      *uuid.UUID       `json:"product_id"`
	QuantitySold   *int             `json:"quantity_sold" binding:"omitempty,min=0"`
	RatePerBrick   *decimal.Decimal `json:"rate_per_brick"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	AmountReceived *decimal.Decimal `json:"amount_received"`
	BalanceDue     *decimal.Decimal `json:"balance_due"`
	Notes          *string          `json:"notes" binding:"omitempty,max=2000"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID             uuid.UUID           `json:"id"`
	FactoryID      uuid.UUID           `json:"factory_id"`
	Date           string              `json:"date"`
	CustomerName   string              `json:"customer_name"`
	CustomerPhone  string              `json:"customer_phone"`
	ProductID      uuid.UUID           `json:"product_id"`
	QuantitySold   int                 `json:"quantity_sold"`
	RatePerBrick   decimal.Decimal     `json:"rate_per_brick"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	AmountReceived decimal.Decimal     `json:"amount_received"`
	BalanceDue     decimal.Decimal     `json:"balance_due"`
	PaymentStatus  trade.PaymentStatus `json:"payment_status"`
	InvoiceNumber  string              `json:"invoice_number"`
	Notes          string              `json:"notes"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToSaleResponse converts a domain sale to a response DTO
func ToSaleResponse(s *trade.Sale) SaleResponse {
	return SaleResponse{
		ID:             s.ID,
		FactoryID:      s.FactoryID,
		Date:           s.Date.Format(shared.DateLayout),
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		ProductID:      s.ProductID,
		QuantitySold:   s.QuantitySold,
		RatePerBrick:   s.RatePerBrick,
		TotalAmount:    s.TotalAmount,
		AmountReceived: s.AmountReceived,
		BalanceDue:     s.BalanceDue,
		PaymentStatus:  s.PaymentStatus(),
		InvoiceNumber:  s.InvoiceNumber(),
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// CustomerSummaryResponse is one row of the customer ledger
type CustomerSummaryResponse struct {
	CustomerName        string          `json:"customer_name"`
	CustomerPhone       string          `json:"customer_phone"`
	TotalSales          decimal.Decimal `json:"total_sales"`
	TotalReceived       decimal.Decimal `json:"total_received"`
	BalanceDue          decimal.Decimal `json:"balance_due"`
	TransactionCount    int             `json:"transaction_count"`
	LastTransactionDate string          `json:"last_transaction_date"`
}

// CustomerPaymentRequest applies a lump-sum payment to a customer's dues
type CustomerPaymentRequest struct {
	CustomerName string          `json:"customer_name" binding:"required,min=1,max=200"`
	Amount       decimal.Decimal `json:"amount"`
}

// AllocationResponse is the part of a payment applied to one sale
type AllocationResponse struct {
	SaleID           uuid.UUID       `json:"sale_id"`
	AmountApplied    decimal.Decimal `json:"amount_applied"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// CustomerPaymentResponse reports how a payment was spread over sales
type CustomerPaymentResponse struct {
	CustomerName string               `json:"customer_name"`
	Amount       decimal.Decimal      `json:"amount"`
	Applied      decimal.Decimal      `json:"applied"`
	Unapplied    decimal.Decimal      `json:"unapplied"`
	Allocations  []AllocationResponse `json:"allocations"`
}
