package finance

import (
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rate types used to price labour in the profit and loss report
const (
	RateProductionPerPunch = "production_per_punch"
	RateLoadingPerBrick    = "loading_per_brick"
)

// Default labour rates used when a factory has not configured one
var (
	DefaultProductionPerPunch = decimal.NewFromInt(15)
	DefaultLoadingPerBrick    = decimal.NewFromInt(2)
)

// FactoryRate is a configurable labour or pricing rate
type FactoryRate struct {
	shared.FactoryEntity
	RateType      string          `gorm:"type:varchar(100);not null;index"`
	RateAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
	IsActive      bool            `gorm:"not null"`
	BrickTypeID   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (FactoryRate) TableName() string {
	return "factory_rates"
}

// NewFactoryRate creates an active rate effective from effectiveDate
func NewFactoryRate(factoryID uuid.UUID, rateType string, amount decimal.Decimal, effectiveDate time.Time, brickTypeID *uuid.UUID) (*FactoryRate, error) {
	rateType = strings.TrimSpace(rateType)
	if rateType == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Rate type cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.ErrInvalidInput.WithMessage("Rate amount cannot be negative")
	}
	return &FactoryRate{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		RateType:      rateType,
		RateAmount:    amount,
		EffectiveDate: effectiveDate,
		IsActive:      true,
		BrickTypeID:   brickTypeID,
	}, nil
}

// ActiveRate returns the amount of the first active rate of rateType, or def.
func ActiveRate(rates []FactoryRate, rateType string, def decimal.Decimal) decimal.Decimal {
	for i := range rates {
		if rates[i].IsActive && rates[i].RateType == rateType {
			return rates[i].RateAmount
		}
	}
	return def
}
