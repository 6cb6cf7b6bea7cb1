// Package finance manages factory rates and operating expenses.
package finance

import (
	"context"
	"strings"
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrRateNotFound    = shared.ErrNotFound.WithMessage("Factory rate not found")
	ErrExpenseNotFound = shared.ErrNotFound.WithMessage("Expense not found")
)

// FinanceService manages rates and other expenses
type FinanceService struct {
	rates    finance.RateRepository
	expenses finance.ExpenseRepository
	guard    *factoryapp.Guard
	logger   *zap.Logger
	now      func() time.Time
}

// NewFinanceService creates a new finance service
func NewFinanceService(rates finance.RateRepository, expenses finance.ExpenseRepository, guard *factoryapp.Guard, logger *zap.Logger) *FinanceService {
	return &FinanceService{rates: rates, expenses: expenses, guard: guard, logger: logger, now: time.Now}
}

// CreateRate configures a rate. effective_date defaults to today.
func (s *FinanceService) CreateRate(ctx context.Context, userID uuid.UUID, req CreateRateRequest) (*RateResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	effective := shared.Today(s.now())
	if req.EffectiveDate != "" {
		d, err := shared.ParseDate(req.EffectiveDate)
		if err != nil {
			return nil, err
		}
		effective = d
	}
	rate, err := finance.NewFactoryRate(req.FactoryID, req.RateType, req.RateAmount, effective, req.BrickTypeID)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if err := s.rates.Save(ctx, rate); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Factory rate created",
		zap.String("rate_id", rate.ID.String()),
		zap.String("rate_type", rate.RateType),
		zap.String("amount", rate.RateAmount.String()),
	)
	resp := ToRateResponse(rate)
	return &resp, nil
}

// ListRates lists rates, newest effective date first
func (s *FinanceService) ListRates(ctx context.Context, userID, factoryID uuid.UUID) ([]RateResponse, error) {
	rates, err := factoryapp.ListOwned[finance.FactoryRate](ctx, s.guard, s.rates, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]RateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, ToRateResponse(&rates[i]))
	}
	return out, nil
}

// UpdateRate applies a partial update to a rate
func (s *FinanceService) UpdateRate(ctx context.Context, userID, rateID uuid.UUID, req UpdateRateRequest) (*RateResponse, error) {
	rate, err := factoryapp.LoadOwned[finance.FactoryRate](ctx, s.guard, s.rates, userID, rateID, ErrRateNotFound)
	if err != nil {
		return nil, err
	}
	if req.RateType != nil {
		t := strings.TrimSpace(*req.RateType)
		if t == "" {
			return nil, shared.ErrInvalidInput.WithMessage("Rate type cannot be empty")
		}
		rate.RateType = t
	}
	if req.RateAmount != nil {
		if req.RateAmount.IsNegative() {
			return nil, shared.ErrInvalidInput.WithMessage("Rate amount cannot be negative")
		}
		rate.RateAmount = *req.RateAmount
	}
	if req.EffectiveDate != nil {
		d, err := shared.ParseDate(*req.EffectiveDate)
		if err != nil {
			return nil, err
		}
		rate.EffectiveDate = d
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if req.BrickTypeID != nil {
		rate.BrickTypeID = req.BrickTypeID
	}
	rate.Touch()

	if err := s.rates.Save(ctx, rate); err != nil {
		return nil, err
	}
	resp := ToRateResponse(rate)
	return &resp, nil
}

// DeleteRate removes a rate
func (s *FinanceService) DeleteRate(ctx context.Context, userID, rateID uuid.UUID) error {
	return factoryapp.DeleteOwned[finance.FactoryRate](ctx, s.guard, s.rates, userID, rateID, ErrRateNotFound)
}

// ActiveRate returns the factory's active rate of rateType, or def when none
// is configured
func (s *FinanceService) ActiveRate(ctx context.Context, userID, factoryID uuid.UUID, rateType string, def decimal.Decimal) (decimal.Decimal, error) {
	rates, err := factoryapp.ListOwned[finance.FactoryRate](ctx, s.guard, s.rates, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return decimal.Zero, err
	}
	return finance.ActiveRate(rates, rateType, def), nil
}

// CreateExpense records an operating expense
func (s *FinanceService) CreateExpense(ctx context.Context, userID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	expense, err := finance.NewOtherExpense(req.FactoryID, date, req.ExpenseType, req.Amount)
	if err != nil {
		return nil, err
	}
	expense.Description = req.Description
	expense.VendorName = strings.TrimSpace(req.VendorName)
	expense.ReceiptNumber = strings.TrimSpace(req.ReceiptNumber)
	expense.Notes = req.Notes

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", expense.Category()),
		zap.String("amount", expense.Amount.String()),
	)
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// ListExpenses lists expenses within the date range, newest first
func (s *FinanceService) ListExpenses(ctx context.Context, userID, factoryID uuid.UUID, query factoryapp.ListQuery) ([]ExpenseResponse, error) {
	expenses, err := factoryapp.ListOwned[finance.OtherExpense](ctx, s.guard, s.expenses, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ToExpenseResponse(&expenses[i]))
	}
	return out, nil
}

// UpdateExpense applies a partial update to an expense
func (s *FinanceService) UpdateExpense(ctx context.Context, userID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := factoryapp.LoadOwned[finance.OtherExpense](ctx, s.guard, s.expenses, userID, expenseID, ErrExpenseNotFound)
	if err != nil {
		return nil, err
	}
	if req.Date != nil {
		d, err := shared.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = d
	}
	if req.ExpenseType != nil {
		if err := expense.SetType(*req.ExpenseType); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		if err := expense.SetAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.VendorName != nil {
		expense.VendorName = strings.TrimSpace(*req.VendorName)
	}
	if req.ReceiptNumber != nil {
		expense.ReceiptNumber = strings.TrimSpace(*req.ReceiptNumber)
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}
	expense.Touch()

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// DeleteExpense removes an expense
func (s *FinanceService) DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error {
	return factoryapp.DeleteOwned[finance.OtherExpense](ctx, s.guard, s.expenses, userID, expenseID, ErrExpenseNotFound)
}
