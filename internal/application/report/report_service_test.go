package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/bricksflow/backend/internal/infrastructure/cache"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportFixture struct {
	owner      uuid.UUID
	factoryID  uuid.UUID
	products   *testutil.MockScopedRepository[catalog.ProductDefinition]
	production *testutil.MockScopedRepository[production.ProductionLog]
	sales      *testutil.MockSaleRepository
	payments   *testutil.MockScopedRepository[workforce.EmployeePayment]
	materials  *testutil.MockScopedRepository[inventory.Material]
	purchases  *testutil.MockScopedRepository[inventory.MaterialPurchase]
	usage      *testutil.MockScopedRepository[inventory.MaterialUsage]
	expenses   *testutil.MockScopedRepository[finance.OtherExpense]
	rates      *testutil.MockScopedRepository[finance.FactoryRate]
	svc        *ReportService
}

// Wednesday; the default week is 2024-06-03 to 2024-06-09
var reportNow = time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)

func newReportFixture(store cache.Store) *reportFixture {
	f := &reportFixture{
		owner:      uuid.New(),
		factoryID:  uuid.New(),
		products:   new(testutil.MockScopedRepository[catalog.ProductDefinition]),
		production: new(testutil.MockScopedRepository[production.ProductionLog]),
		sales:      new(testutil.MockSaleRepository),
		payments:   new(testutil.MockScopedRepository[workforce.EmployeePayment]),
		materials:  new(testutil.MockScopedRepository[inventory.Material]),
		purchases:  new(testutil.MockScopedRepository[inventory.MaterialPurchase]),
		usage:      new(testutil.MockScopedRepository[inventory.MaterialUsage]),
		expenses:   new(testutil.MockScopedRepository[finance.OtherExpense]),
		rates:      new(testutil.MockScopedRepository[finance.FactoryRate]),
	}
	factories := new(testutil.MockFactoryRepository)
	factories.ExpectOwnedFactory(f.factoryID, f.owner)
	f.svc = NewReportService(Sources{
		Products:   f.products,
		Production: f.production,
		Sales:      f.sales,
		Payments:   f.payments,
		Materials:  f.materials,
		Purchases:  f.purchases,
		Usage:      f.usage,
		Expenses:   f.expenses,
		Rates:      f.rates,
	}, factoryapp.NewGuard(factories), store, time.Minute, zap.NewNop())
	f.svc.now = testutil.FixedClock(reportNow)
	return f
}

func (f *reportFixture) seed(t *testing.T) {
	t.Helper()
	red, err := catalog.NewProductDefinition(f.factoryID, "Red Brick", nil, "", "pcs")
	require.NoError(t, err)
	punches := 40
	log, err := production.NewProductionLog(f.factoryID, testutil.Date(t, "2024-06-04"), red.ID, "Red Brick", 5000, &punches, "")
	require.NoError(t, err)
	old, err := production.NewProductionLog(f.factoryID, testutil.Date(t, "2024-05-20"), red.ID, "Red Brick", 1000, nil, "")
	require.NoError(t, err)
	sale, err := trade.NewSale(f.factoryID, trade.SaleInput{
		Date:           testutil.Date(t, "2024-06-04"),
		CustomerName:   "Ravi Traders",
		ProductID:      red.ID,
		QuantitySold:   2000,
		RatePerBrick:   decimal.NewFromInt(8),
		TotalAmount:    decimal.NewFromInt(16000),
		AmountReceived: decimal.NewFromInt(10000),
		BalanceDue:     decimal.NewFromInt(6000),
	})
	require.NoError(t, err)
	coal, err := inventory.NewMaterial(f.factoryID, "Coal", "ton", decimal.NewFromInt(10), decimal.NewFromInt(500))
	require.NoError(t, err)
	pay, err := workforce.NewEmployeePayment(f.factoryID, testutil.Date(t, "2024-06-01"), "Mohan", decimal.NewFromInt(700), "advance", "")
	require.NoError(t, err)
	rate, err := finance.NewFactoryRate(f.factoryID, finance.RateProductionPerPunch, decimal.NewFromInt(10), testutil.Date(t, "2024-01-01"), nil)
	require.NoError(t, err)

	f.products.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]catalog.ProductDefinition{*red}, nil)
	f.production.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]production.ProductionLog{*log, *old}, nil)
	f.sales.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]trade.Sale{*sale}, nil)
	f.payments.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]workforce.EmployeePayment{*pay}, nil)
	f.materials.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]inventory.Material{*coal}, nil)
	f.purchases.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]inventory.MaterialPurchase{}, nil)
	f.usage.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]inventory.MaterialUsage{}, nil)
	f.expenses.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]finance.OtherExpense{}, nil)
	f.rates.On("FindByFactory", mock.Anything, f.factoryID, mock.Anything).Return([]finance.FactoryRate{*rate}, nil)
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(nil)
	fx.seed(t)

	dash, err := fx.svc.Dashboard(ctx, fx.owner, fx.factoryID)
	require.NoError(t, err)
	require.Len(t, dash.BrickStocks, 1)
	assert.Equal(t, 6000, dash.BrickStocks[0].Produced)
	assert.Equal(t, 2000, dash.BrickStocks[0].Sold)
	assert.Equal(t, 4000, dash.BrickStocks[0].Stock)
	assert.True(t, dash.MonthlyRevenue.Equal(decimal.NewFromInt(16000)))
	assert.True(t, dash.OutstandingReceivables.Equal(decimal.NewFromInt(6000)))
	assert.True(t, dash.WeeklyEmployeePayments.Equal(decimal.NewFromInt(700)))
	assert.True(t, dash.TotalMaterialValue.Equal(decimal.NewFromInt(5000)))
	require.NotNil(t, dash.Subscription)
}

func TestReportService_DashboardCached(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryStore()
	fx := newReportFixture(store)
	fx.seed(t)

	first, err := fx.svc.Dashboard(ctx, fx.owner, fx.factoryID)
	require.NoError(t, err)
	second, err := fx.svc.Dashboard(ctx, fx.owner, fx.factoryID)
	require.NoError(t, err)

	assert.True(t, first.MonthlyRevenue.Equal(second.MonthlyRevenue))
	assert.NotNil(t, second.Subscription)
	fx.sales.AssertNumberOfCalls(t, "FindByFactory", 1)
	assert.Equal(t, 1, store.Len())
}

func TestReportService_DashboardForbidden(t *testing.T) {
	fx := newReportFixture(nil)

	_, err := fx.svc.Dashboard(context.Background(), uuid.New(), fx.factoryID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	fx.sales.AssertNotCalled(t, "FindByFactory", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_ProfitLossDefaultsToCurrentWeek(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(nil)
	fx.seed(t)

	pl, err := fx.svc.ProfitLoss(ctx, fx.owner, fx.factoryID, ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", pl.StartDate)
	assert.Equal(t, "2024-06-09", pl.EndDate)
	assert.Equal(t, 40, pl.TotalPunches)
	require.Len(t, pl.Production, 1)
	assert.Equal(t, 5000, pl.Production[0].Quantity)
	assert.True(t, pl.TotalRevenue.Equal(decimal.NewFromInt(16000)))
	assert.True(t, pl.ProductionWages.Equal(decimal.NewFromInt(400)))
	// the advance on 2024-06-01 falls before the week
	assert.True(t, pl.EmployeePayments.Total.IsZero())
}

func TestReportService_ProfitLossRejectsInvertedPeriod(t *testing.T) {
	fx := newReportFixture(nil)

	_, err := fx.svc.ProfitLoss(context.Background(), fx.owner, fx.factoryID,
		ReportQuery{StartDate: "2024-06-10", EndDate: "2024-06-01"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = fx.svc.ProfitLoss(context.Background(), fx.owner, fx.factoryID, ReportQuery{StartDate: "06/01/2024"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestReportService_WriteProfitLossCSV(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(nil)
	fx.seed(t)

	var buf bytes.Buffer
	name, err := fx.svc.WriteProfitLossCSV(ctx, fx.owner, fx.factoryID,
		ReportQuery{StartDate: "2024-05-01", EndDate: "2024-06-30", Format: "csv"}, &buf)
	require.NoError(t, err)

	expected, err := fx.svc.Filename(ReportQuery{StartDate: "2024-05-01", EndDate: "2024-06-30"})
	require.NoError(t, err)
	assert.Equal(t, expected, name)
	assert.Contains(t, buf.String(), "Red Brick")
	assert.Contains(t, buf.String(), "Ravi Traders")
}
