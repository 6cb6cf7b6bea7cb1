package workforce

import (
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types with their own line in the profit and loss report
const (
	PaymentSalary    = "salary"
	PaymentAdvance   = "advance"
	PaymentBonus     = "bonus"
	PaymentIncentive = "incentive"
)

// Employee is a worker at the factory
type Employee struct {
	shared.FactoryEntity
	Name      string           `gorm:"type:varchar(200);not null"`
	Phone     string           `gorm:"type:varchar(50)"`
	Role      string           `gorm:"type:varchar(100)"`
	DailyWage *decimal.Decimal `gorm:"type:decimal(18,4)"`
	IsActive  bool             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates an active employee
func NewEmployee(factoryID uuid.UUID, name, phone, role string, dailyWage *decimal.Decimal) (*Employee, error) {
	e := &Employee{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Phone:         strings.TrimSpace(phone),
		Role:          strings.TrimSpace(role),
		IsActive:      true,
	}
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	if err := e.SetDailyWage(dailyWage); err != nil {
		return nil, err
	}
	return e, nil
}

// SetName validates and sets the employee name
func (e *Employee) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalidInput.WithMessage("Employee name cannot be empty")
	}
	e.Name = name
	return nil
}

// SetDailyWage validates and sets the daily wage
func (e *Employee) SetDailyWage(w *decimal.Decimal) error {
	if w != nil && w.IsNegative() {
		return shared.ErrInvalidInput.WithMessage("Daily wage cannot be negative")
	}
	e.DailyWage = w
	return nil
}

// EmployeePayment is money paid to a worker
type EmployeePayment struct {
	shared.FactoryEntity
	Date         time.Time       `gorm:"type:date;not null;index"`
	EmployeeName string          `gorm:"type:varchar(200);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentType  string          `gorm:"type:varchar(50);not null"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EmployeePayment) TableName() string {
	return "employee_payments"
}

// NewEmployeePayment creates a payment entry
func NewEmployeePayment(factoryID uuid.UUID, date time.Time, employeeName string, amount decimal.Decimal, paymentType, notes string) (*EmployeePayment, error) {
	employeeName = strings.TrimSpace(employeeName)
	if employeeName == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Employee name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidInput.WithMessage("Payment amount must be positive")
	}
	paymentType = strings.TrimSpace(paymentType)
	if paymentType == "" {
		paymentType = PaymentSalary
	}
	return &EmployeePayment{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Date:          date,
		EmployeeName:  employeeName,
		Amount:        amount,
		PaymentType:   paymentType,
		Notes:         notes,
	}, nil
}

// Category maps the free-text payment type to a report category. Unknown
// types count as salary.
func (p *EmployeePayment) Category() string {
	switch t := strings.ToLower(strings.TrimSpace(p.PaymentType)); t {
	case PaymentAdvance, PaymentBonus, PaymentIncentive:
		return t
	default:
		return PaymentSalary
	}
}
