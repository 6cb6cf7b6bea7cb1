package trade

import (
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus describes how much of a sale has been paid
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPartial PaymentStatus = "Partial"
	PaymentUnpaid  PaymentStatus = "Unpaid"
)

// Sale is a brick sale to a customer
type Sale struct {
	shared.FactoryEntity
	Date           time.Time       `gorm:"type:date;not null;index"`
	CustomerName   string          `gorm:"type:varchar(200);not null;index"`
	CustomerPhone  string          `gorm:"type:varchar(50)"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantitySold   int             `gorm:"not null"`
	RatePerBrick   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountReceived decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceDue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleInput carries the client-computed amounts of a sale
type SaleInput struct {
	Date           time.Time
	CustomerName   string
	CustomerPhone  string
	ProductID      uuid.UUID
	QuantitySold   int
	RatePerBrick   decimal.Decimal
	TotalAmount    decimal.Decimal
	AmountReceived decimal.Decimal
	BalanceDue     decimal.Decimal
	Notes          string
}

// NewSale creates a sale. Amounts are stored as given.
func NewSale(factoryID uuid.UUID, in SaleInput) (*Sale, error) {
	s := &Sale{
		FactoryEntity:  shared.NewFactoryEntity(factoryID),
		Date:           in.Date,
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		ProductID:      in.ProductID,
		QuantitySold:   in.QuantitySold,
		RatePerBrick:   in.RatePerBrick,
		TotalAmount:    in.TotalAmount,
		AmountReceived: in.AmountReceived,
		BalanceDue:     in.BalanceDue,
		Notes:          in.Notes,
	}
	if err := s.SetCustomerName(in.CustomerName); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCustomerName validates and sets the customer name
func (s *Sale) SetCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalidInput.WithMessage("Customer name cannot be empty")
	}
	s.CustomerName = name
	return nil
}

// Validate checks quantity and amount signs
func (s *Sale) Validate() error {
	if s.QuantitySold < 0 {
		return shared.ErrInvalidInput.WithMessage("Quantity sold cannot be negative")
	}
	for _, v := range []decimal.Decimal{s.RatePerBrick, s.TotalAmount, s.AmountReceived, s.BalanceDue} {
		if v.IsNegative() {
			return shared.ErrInvalidInput.WithMessage("Amounts cannot be negative")
		}
	}
	return nil
}

// PaymentStatus classifies the sale by what has been paid
func (s *Sale) PaymentStatus() PaymentStatus {
	switch {
	case s.BalanceDue.IsZero():
		return PaymentPaid
	case s.AmountReceived.IsZero():
		return PaymentUnpaid
	default:
		return PaymentPartial
	}
}

// InvoiceNumber is the printable reference of the sale
func (s *Sale) InvoiceNumber() string {
	id := s.ID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return "SALE-" + strings.ToUpper(id)
}

// ApplyPayment moves up to amount from balance to received and returns the
// part applied.
func (s *Sale) ApplyPayment(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !s.BalanceDue.IsPositive() {
		return decimal.Zero
	}
	applied := decimal.Min(amount, s.BalanceDue)
	s.AmountReceived = s.AmountReceived.Add(applied)
	s.BalanceDue = s.BalanceDue.Sub(applied)
	s.Touch()
	return applied
}
