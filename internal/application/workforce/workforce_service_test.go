package workforce

import (
	"context"
	"testing"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workforceFixture struct {
	owner     uuid.UUID
	factoryID uuid.UUID
	employees *testutil.MockScopedRepository[workforce.Employee]
	payments  *testutil.MockScopedRepository[workforce.EmployeePayment]
	svc       *WorkforceService
}

func newWorkforceFixture() *workforceFixture {
	f := &workforceFixture{
		owner:     uuid.New(),
		factoryID: uuid.New(),
		employees: new(testutil.MockScopedRepository[workforce.Employee]),
		payments:  new(testutil.MockScopedRepository[workforce.EmployeePayment]),
	}
	factories := new(testutil.MockFactoryRepository)
	factories.ExpectOwnedFactory(f.factoryID, f.owner)
	f.svc = NewWorkforceService(f.employees, f.payments, factoryapp.NewGuard(factories), zap.NewNop())
	return f
}

func TestWorkforceService_CreateEmployee(t *testing.T) {
	ctx := context.Background()
	fx := newWorkforceFixture()
	fx.employees.On("Save", mock.Anything, mock.AnythingOfType("*workforce.Employee")).Return(nil)

	wage := decimal.NewFromInt(600)
	resp, err := fx.svc.CreateEmployee(ctx, fx.owner, CreateEmployeeRequest{
		FactoryID: fx.factoryID,
		Name:      "Suresh",
		Role:      "Moulder",
		DailyWage: &wage,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.DailyWage.Equal(wage))

	inactive := false
	resp, err = fx.svc.CreateEmployee(ctx, fx.owner, CreateEmployeeRequest{FactoryID: fx.factoryID, Name: "Mohan", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Nil(t, resp.DailyWage)
}

func TestWorkforceService_UpdateEmployee(t *testing.T) {
	ctx := context.Background()
	fx := newWorkforceFixture()
	employee, err := workforce.NewEmployee(fx.factoryID, "Suresh", "", "Moulder", nil)
	require.NoError(t, err)
	fx.employees.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
	fx.employees.On("Save", mock.Anything, employee).Return(nil)

	inactive := false
	resp, err := fx.svc.UpdateEmployee(ctx, fx.owner, employee.ID, UpdateEmployeeRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "Moulder", resp.Role)

	negative := decimal.NewFromInt(-5)
	_, err = fx.svc.UpdateEmployee(ctx, fx.owner, employee.ID, UpdateEmployeeRequest{DailyWage: &negative})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestWorkforceService_CreatePayment(t *testing.T) {
	ctx := context.Background()
	fx := newWorkforceFixture()
	fx.payments.On("Save", mock.Anything, mock.AnythingOfType("*workforce.EmployeePayment")).Return(nil)

	resp, err := fx.svc.CreatePayment(ctx, fx.owner, CreatePaymentRequest{
		FactoryID:    fx.factoryID,
		Date:         "2024-06-05",
		EmployeeName: "Suresh",
		Amount:       decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, workforce.PaymentSalary, resp.PaymentType)
	assert.Equal(t, "2024-06-05", resp.Date)

	_, err = fx.svc.CreatePayment(ctx, fx.owner, CreatePaymentRequest{
		FactoryID: fx.factoryID, Date: "2024-06-05", EmployeeName: "Suresh", Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = fx.svc.CreatePayment(ctx, uuid.New(), CreatePaymentRequest{
		FactoryID: fx.factoryID, Date: "2024-06-05", EmployeeName: "Suresh", Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	fx.payments.AssertNumberOfCalls(t, "Save", 1)
}

func TestWorkforceService_ListPayments(t *testing.T) {
	ctx := context.Background()
	fx := newWorkforceFixture()
	payment, err := workforce.NewEmployeePayment(fx.factoryID, testutil.Date(t, "2024-06-05"), "Suresh", decimal.NewFromInt(100), "bonus", "")
	require.NoError(t, err)
	to := testutil.Date(t, "2024-06-30")
	fx.payments.On("FindByFactory", mock.Anything, fx.factoryID, shared.ListFilter{To: &to}).
		Return([]workforce.EmployeePayment{*payment}, nil)

	list, err := fx.svc.ListPayments(ctx, fx.owner, fx.factoryID, factoryapp.ListQuery{EndDate: "2024-06-30"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bonus", list[0].PaymentType)
}
