// Package workforce manages employees and the payments made to them.
package workforce

import (
	"context"
	"strings"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmployeeNotFound = shared.ErrNotFound.WithMessage("Employee not found")
	ErrPaymentNotFound  = shared.ErrNotFound.WithMessage("Employee payment not found")
)

// WorkforceService manages employees and their payments
type WorkforceService struct {
	employees workforce.EmployeeRepository
	payments  workforce.PaymentRepository
	guard     *factoryapp.Guard
	logger    *zap.Logger
}

// NewWorkforceService creates a new workforce service
func NewWorkforceService(employees workforce.EmployeeRepository, payments workforce.PaymentRepository, guard *factoryapp.Guard, logger *zap.Logger) *WorkforceService {
	return &WorkforceService{employees: employees, payments: payments, guard: guard, logger: logger}
}

// CreateEmployee adds an employee, active unless stated otherwise
func (s *WorkforceService) CreateEmployee(ctx context.Context, userID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	employee, err := workforce.NewEmployee(req.FactoryID, req.Name, req.Phone, req.Role, req.DailyWage)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	if err := s.employees.Save(ctx, employee); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Employee created", zap.String("employee_id", employee.ID.String()))
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// ListEmployees lists a factory's employees
func (s *WorkforceService) ListEmployees(ctx context.Context, userID, factoryID uuid.UUID) ([]EmployeeResponse, error) {
	employees, err := factoryapp.ListOwned[workforce.Employee](ctx, s.guard, s.employees, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, ToEmployeeResponse(&employees[i]))
	}
	return out, nil
}

// UpdateEmployee applies a partial update to an employee
func (s *WorkforceService) UpdateEmployee(ctx context.Context, userID, employeeID uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := factoryapp.LoadOwned[workforce.Employee](ctx, s.guard, s.employees, userID, employeeID, ErrEmployeeNotFound)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := employee.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		employee.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		employee.Role = strings.TrimSpace(*req.Role)
	}
	if req.DailyWage != nil {
		if err := employee.SetDailyWage(req.DailyWage); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	employee.Touch()

	if err := s.employees.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// DeleteEmployee removes an employee. Past payments are kept.
func (s *WorkforceService) DeleteEmployee(ctx context.Context, userID, employeeID uuid.UUID) error {
	return factoryapp.DeleteOwned[workforce.Employee](ctx, s.guard, s.employees, userID, employeeID, ErrEmployeeNotFound)
}

// CreatePayment records a payment. An empty payment type means salary.
func (s *WorkforceService) CreatePayment(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	payment, err := workforce.NewEmployeePayment(req.FactoryID, date, req.EmployeeName, req.Amount, req.PaymentType, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Employee payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("type", payment.PaymentType),
		zap.String("amount", payment.Amount.String()),
	)
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// ListPayments lists payments within the date range, newest first
func (s *WorkforceService) ListPayments(ctx context.Context, userID, factoryID uuid.UUID, query factoryapp.ListQuery) ([]PaymentResponse, error) {
	payments, err := factoryapp.ListOwned[workforce.EmployeePayment](ctx, s.guard, s.payments, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out, nil
}

// DeletePayment removes a payment
func (s *WorkforceService) DeletePayment(ctx context.Context, userID, paymentID uuid.UUID) error {
	return factoryapp.DeleteOwned[workforce.EmployeePayment](ctx, s.guard, s.payments, userID, paymentID, ErrPaymentNotFound)
}
