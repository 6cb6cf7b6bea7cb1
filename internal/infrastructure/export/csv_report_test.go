package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/report"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestProfitLossFilename(t *testing.T) {
	p := report.Period{Start: day(3), End: day(9)}
	assert.Equal(t, "brickworks-report-2025-03-03-to-2025-03-09.csv", ProfitLossFilename(p))
}

func TestCSVReportWriter_WriteProfitLoss(t *testing.T) {
	productID := uuid.New()
	materialID := uuid.New()
	punches := 40

	pl := report.ProfitLoss{
		Period:    report.Period{Start: day(3), End: day(9)},
		NetProfit: decimal.NewFromInt(1500),
		Records: report.PeriodRecords{
			Production: []production.ProductionLog{{
				FactoryEntity: shared.FactoryEntity{BaseEntity: shared.NewBaseEntity()},
				Date:          day(4), ProductID: productID, Quantity: 1000, Punches: &punches,
			}},
			Sales: []trade.Sale{{
				Date: day(5), CustomerName: "Ravi, Sons", ProductID: productID, QuantitySold: 500,
				RatePerBrick: decimal.NewFromInt(8), TotalAmount: decimal.NewFromInt(4000),
				AmountReceived: decimal.NewFromInt(1000), BalanceDue: decimal.NewFromInt(3000),
			}},
			Purchases: []inventory.MaterialPurchase{{
				Date: day(6), MaterialID: materialID, SupplierName: "Sharma",
				QuantityPurchased: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(50),
				PaymentMade: decimal.Zero,
			}},
			Usage: []inventory.MaterialUsage{{
				Date: day(6), MaterialID: materialID, QuantityUsed: decimal.NewFromInt(2), Purpose: "kiln",
			}},
			Payments: []workforce.EmployeePayment{{
				Date: day(7), EmployeeName: "Mohan", PaymentType: "advance", Amount: decimal.NewFromInt(200),
			}},
			Expenses: []finance.OtherExpense{{
				Date: day(8), ExpenseType: "transport", Description: "diesel", Amount: decimal.NewFromInt(300),
			}},
		},
	}

	var buf bytes.Buffer
	err := NewCSVReportWriter(&buf, Lookups{
		Products:  map[uuid.UUID]string{productID: "Red Brick"},
		Materials: map[uuid.UUID]string{materialID: "Clay"},
	}).WriteProfitLoss(pl)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(out, "\n")
	assert.Equal(t, ReportTitle, lines[0])
	assert.Equal(t, "Period: 03 Mar 2025 to 09 Mar 2025", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "=== SUMMARY ===", lines[3])
	assert.Equal(t, "Net Profit,1500", lines[4])

	sections := []string{
		"=== SUMMARY ===",
		"=== PRODUCTION RECORDS ===",
		"=== SALES RECORDS ===",
		"=== MATERIAL PURCHASES ===",
		"=== MATERIAL USAGE ===",
		"=== EMPLOYEE PAYMENTS ===",
		"=== OTHER EXPENSES ===",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.Greater(t, idx, last, s)
		last = idx
	}

	assert.Contains(t, out, "2025-03-04,Red Brick,1000,40,\n")
	assert.Contains(t, out, "2025-03-06,Clay,Sharma,10,50,500,0,\n")

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	var saleRow []string
	for _, rec := range records {
		if len(rec) == 10 && rec[0] == "2025-03-05" {
			saleRow = rec
		}
	}
	require.NotNil(t, saleRow)
	assert.Equal(t, "Ravi, Sons", saleRow[1], "commas inside fields are quoted")
	assert.Equal(t, "Red Brick", saleRow[3])
	assert.Equal(t, "3000", saleRow[8])
}

func TestCSVReportWriter_ProductionNamePrefersCurrentProduct(t *testing.T) {
	renamed := uuid.New()
	deleted := uuid.New()

	pl := report.ProfitLoss{
		Period: report.Period{Start: day(3), End: day(9)},
		Records: report.PeriodRecords{
			Production: []production.ProductionLog{
				{Date: day(4), ProductID: renamed, ProductName: "Old Red", Quantity: 100},
				{Date: day(5), ProductID: deleted, ProductName: "Fly Ash", Quantity: 200},
			},
		},
	}

	var buf bytes.Buffer
	err := NewCSVReportWriter(&buf, Lookups{
		Products: map[uuid.UUID]string{renamed: "Red Brick"},
	}).WriteProfitLoss(pl)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2025-03-04,Red Brick,100,,\n")
	assert.NotContains(t, out, "Old Red")
	assert.Contains(t, out, "2025-03-05,Fly Ash,200,,\n")
}
