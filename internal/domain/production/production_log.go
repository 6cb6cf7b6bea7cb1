package production

import (
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductionLog records bricks produced on a day
type ProductionLog struct {
	shared.FactoryEntity
	Date        time.Time `gorm:"type:date;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Quantity    int       `gorm:"not null"`
	Punches     *int
	Remarks     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductionLog) TableName() string {
	return "production_logs"
}

// NewProductionLog creates a production entry
func NewProductionLog(factoryID uuid.UUID, date time.Time, productID uuid.UUID, productName string, quantity int, punches *int, remarks string) (*ProductionLog, error) {
	l := &ProductionLog{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Date:          date,
		ProductID:     productID,
		ProductName:   strings.TrimSpace(productName),
		Remarks:       remarks,
	}
	if err := l.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := l.SetPunches(punches); err != nil {
		return nil, err
	}
	return l, nil
}

// SetQuantity validates and sets produced quantity
func (l *ProductionLog) SetQuantity(q int) error {
	if q < 0 {
		return shared.ErrInvalidInput.WithMessage("Quantity cannot be negative")
	}
	l.Quantity = q
	return nil
}

// SetPunches validates and sets the machine punch count
func (l *ProductionLog) SetPunches(p *int) error {
	if p != nil && *p < 0 {
		return shared.ErrInvalidInput.WithMessage("Punches cannot be negative")
	}
	l.Punches = p
	return nil
}

// PunchCount returns punches, treating a missing value as zero
func (l *ProductionLog) PunchCount() int {
	if l.Punches == nil {
		return 0
	}
	return *l.Punches
}
