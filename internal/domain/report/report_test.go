package report

import (
	"testing"
	"time"

	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factoryID = uuid.New()

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func prodLog(t *testing.T, date time.Time, productID uuid.UUID, name string, qty, punches int) production.ProductionLog {
	t.Helper()
	l, err := production.NewProductionLog(factoryID, date, productID, name, qty, &punches, "")
	require.NoError(t, err)
	return *l
}

func sale(t *testing.T, date time.Time, productID uuid.UUID, qty int, total, received string) trade.Sale {
	t.Helper()
	tot, rec := d(total), d(received)
	s, err := trade.NewSale(factoryID, trade.SaleInput{
		Date: date, CustomerName: "Ravi", ProductID: productID, QuantitySold: qty,
		RatePerBrick: decimal.Zero, TotalAmount: tot, AmountReceived: rec, BalanceDue: tot.Sub(rec),
	})
	require.NoError(t, err)
	return *s
}

func payment(t *testing.T, date time.Time, amount, kind string) workforce.EmployeePayment {
	t.Helper()
	p, err := workforce.NewEmployeePayment(factoryID, date, "Suresh", d(amount), kind, "")
	require.NoError(t, err)
	return *p
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	red, err := catalog.NewProductDefinition(factoryID, "Red", nil, "", "")
	require.NoError(t, err)
	fly, err := catalog.NewProductDefinition(factoryID, "Fly ash", nil, "", "")
	require.NoError(t, err)
	clay, err := inventory.NewMaterial(factoryID, "Clay", "ton", d("10"), d("500"))
	require.NoError(t, err)
	coal, err := inventory.NewMaterial(factoryID, "Coal", "kg", d("200"), d("12.5"))
	require.NoError(t, err)

	in := DashboardInput{
		Products: []catalog.ProductDefinition{*red, *fly},
		Production: []production.ProductionLog{
			prodLog(t, day(2024, 5, 1), red.ID, "Red", 5000, 100),
			prodLog(t, day(2024, 6, 10), red.ID, "Red", 3000, 60),
			prodLog(t, day(2024, 6, 11), fly.ID, "Fly ash", 100, 2),
		},
		Sales: []trade.Sale{
			sale(t, day(2024, 5, 30), red.ID, 4000, "28000", "20000"),
			sale(t, day(2024, 6, 1), red.ID, 1000, "7000", "0"),
			sale(t, day(2024, 6, 14), fly.ID, 300, "2400", "2400"),
		},
		Payments: []workforce.EmployeePayment{
			payment(t, day(2024, 6, 7), "1000", "salary"),
			payment(t, day(2024, 6, 8), "500", "advance"),
			payment(t, day(2024, 6, 15), "250", "bonus"),
		},
		Materials: []inventory.Material{*clay, *coal},
	}

	dash := BuildDashboard(in, now)

	require.Len(t, dash.BrickStocks, 2)
	assert.Equal(t, 8000, dash.BrickStocks[0].Produced)
	assert.Equal(t, 5000, dash.BrickStocks[0].Sold)
	assert.Equal(t, 3000, dash.BrickStocks[0].Stock)
	assert.Equal(t, -200, dash.BrickStocks[1].Stock)

	assert.True(t, d("9400").Equal(dash.MonthlyRevenue), dash.MonthlyRevenue.String())
	assert.True(t, d("15000").Equal(dash.OutstandingReceivables), dash.OutstandingReceivables.String())
	assert.True(t, d("750").Equal(dash.WeeklyEmployeePayments), dash.WeeklyEmployeePayments.String())
	assert.True(t, d("7500").Equal(dash.TotalMaterialValue), dash.TotalMaterialValue.String())
	require.Len(t, dash.Materials, 2)
	assert.True(t, d("2500").Equal(dash.Materials[1].Value))
}

func TestBuildDashboard_Empty(t *testing.T) {
	dash := BuildDashboard(DashboardInput{}, time.Now())
	assert.Empty(t, dash.BrickStocks)
	assert.True(t, dash.MonthlyRevenue.IsZero())
	assert.True(t, dash.TotalMaterialValue.IsZero())
}

func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		now   time.Time
		start time.Time
	}{
		{time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC), day(2024, 6, 10)}, // Wednesday
		{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), day(2024, 6, 10)},  // Monday
		{time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC), day(2024, 6, 10)}, // Sunday
	}
	for _, tt := range tests {
		p := CurrentWeek(tt.now)
		assert.Equal(t, tt.start, p.Start, tt.now.Weekday().String())
		assert.Equal(t, tt.start.AddDate(0, 0, 6), p.End)
	}
}

func TestBuildProfitLoss(t *testing.T) {
	period := Period{Start: day(2024, 6, 10), End: day(2024, 6, 16)}
	red := uuid.New()
	clay, err := inventory.NewMaterial(factoryID, "Clay", "ton", d("0"), d("0"))
	require.NoError(t, err)

	purchase, err := inventory.NewMaterialPurchase(factoryID, day(2024, 6, 11), clay.ID, d("4"), d("500"), d("0"))
	require.NoError(t, err)
	oldPurchase, err := inventory.NewMaterialPurchase(factoryID, day(2024, 6, 1), clay.ID, d("10"), d("500"), d("0"))
	require.NoError(t, err)
	usage, err := inventory.NewMaterialUsage(factoryID, day(2024, 6, 12), clay.ID, d("3"), "moulding")
	require.NoError(t, err)
	rate, err := finance.NewFactoryRate(factoryID, finance.RateProductionPerPunch, d("20"), day(2024, 1, 1), nil)
	require.NoError(t, err)
	transport, err := finance.NewOtherExpense(factoryID, day(2024, 6, 13), "Transport", d("800"))
	require.NoError(t, err)
	tea, err := finance.NewOtherExpense(factoryID, day(2024, 6, 16), "tea", d("200"))
	require.NoError(t, err)

	in := ProfitLossInput{
		Production: []production.ProductionLog{
			prodLog(t, day(2024, 6, 10), red, "Red", 2000, 50),
			prodLog(t, day(2024, 6, 12), red, "Red", 1000, 25),
			prodLog(t, day(2024, 6, 9), red, "Red", 9999, 999),
		},
		Sales: []trade.Sale{
			sale(t, day(2024, 6, 14), red, 1500, "12000", "10000"),
			sale(t, day(2024, 6, 17), red, 100, "800", "0"),
		},
		Purchases: []inventory.MaterialPurchase{*purchase, *oldPurchase},
		Usage:     []inventory.MaterialUsage{*usage},
		Payments: []workforce.EmployeePayment{
			payment(t, day(2024, 6, 15), "1000", "salary"),
			payment(t, day(2024, 6, 15), "300", "Overtime"),
			payment(t, day(2024, 6, 15), "200", "advance"),
		},
		Expenses:  []finance.OtherExpense{*transport, *tea},
		Rates:     []finance.FactoryRate{*rate},
		Materials: []inventory.Material{*clay},
	}

	pl := BuildProfitLoss(in, period)

	require.Len(t, pl.Production, 1)
	assert.Equal(t, 3000, pl.Production[0].Quantity)
	assert.Equal(t, 75, pl.TotalPunches)

	assert.True(t, d("12000").Equal(pl.TotalRevenue))
	assert.Equal(t, 1500, pl.TotalQtySold)
	assert.True(t, d("2000").Equal(pl.OutstandingBalance))

	require.Len(t, pl.MaterialsPurchased, 1)
	assert.Equal(t, "Clay", pl.MaterialsPurchased[0].MaterialName)
	assert.True(t, d("2000").Equal(pl.TotalPurchaseCost))
	require.Len(t, pl.MaterialsUsed, 1)
	assert.True(t, d("3").Equal(pl.MaterialsUsed[0].Quantity))

	// 75 punches * 20 + 1500 bricks * default 2
	assert.True(t, d("1500").Equal(pl.ProductionWages))
	assert.True(t, d("3000").Equal(pl.LoadingWages))
	assert.True(t, d("6500").Equal(pl.TotalCOGS))

	assert.True(t, d("1300").Equal(pl.Payments.Salary))
	assert.True(t, d("200").Equal(pl.Payments.Advance))
	assert.True(t, d("1500").Equal(pl.Payments.Total))

	assert.True(t, d("800").Equal(pl.Expenses.Transport))
	assert.True(t, d("200").Equal(pl.Expenses.Miscellaneous))
	assert.True(t, d("1000").Equal(pl.Expenses.Total))

	// 12000 - 6500 - 1500 - 1000
	assert.True(t, d("3000").Equal(pl.NetProfit), pl.NetProfit.String())

	require.Len(t, pl.Records.Production, 2)
	assert.Equal(t, day(2024, 6, 12), pl.Records.Production[0].Date)
	assert.Len(t, pl.Records.Sales, 1)
}
