package finance

import (
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense categories of the profit and loss report
const (
	ExpenseTransport     = "transport"
	ExpenseUtilities     = "utilities"
	ExpenseSalaries      = "salaries"
	ExpenseRepairs       = "repairs"
	ExpenseMiscellaneous = "miscellaneous"
)

// OtherExpense is an operating expense outside materials and wages
type OtherExpense struct {
	shared.FactoryEntity
	Date          time.Time       `gorm:"type:date;not null;index"`
	ExpenseType   string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VendorName    string          `gorm:"type:varchar(200)"`
	ReceiptNumber string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OtherExpense) TableName() string {
	return "other_expenses"
}

// NewOtherExpense creates an expense entry
func NewOtherExpense(factoryID uuid.UUID, date time.Time, expenseType string, amount decimal.Decimal) (*OtherExpense, error) {
	e := &OtherExpense{
		FactoryEntity: shared.NewFactoryEntity(factoryID),
		Date:          date,
	}
	if err := e.SetType(expenseType); err != nil {
		return nil, err
	}
	if err := e.SetAmount(amount); err != nil {
		return nil, err
	}
	return e, nil
}

// SetType validates and sets the expense type
func (e *OtherExpense) SetType(t string) error {
	t = strings.TrimSpace(t)
	if t == "" {
		return shared.ErrInvalidInput.WithMessage("Expense type cannot be empty")
	}
	e.ExpenseType = t
	return nil
}

// SetAmount validates and sets the amount
func (e *OtherExpense) SetAmount(a decimal.Decimal) error {
	if a.IsNegative() {
		return shared.ErrInvalidInput.WithMessage("Expense amount cannot be negative")
	}
	e.Amount = a
	return nil
}

// Category maps the expense type to a report category
func (e *OtherExpense) Category() string {
	switch strings.ToLower(strings.TrimSpace(e.ExpenseType)) {
	case "transport":
		return ExpenseTransport
	case "utilities":
		return ExpenseUtilities
	case "office salaries", "salaries":
		return ExpenseSalaries
	case "repairs":
		return ExpenseRepairs
	default:
		return ExpenseMiscellaneous
	}
}
