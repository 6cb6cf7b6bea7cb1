// Package export writes reports in downloadable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bricksflow/backend/internal/domain/report"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportTitle is the first line of every exported report
const ReportTitle = "BricksFlow - Detailed Report"

const periodLayout = "02 Jan 2006"

// Lookups resolves record references to display names
type Lookups struct {
	Products  map[uuid.UUID]string
	Materials map[uuid.UUID]string
}

// ProfitLossFilename is the attachment name for a period's CSV export
func ProfitLossFilename(p report.Period) string {
	return fmt.Sprintf("brickworks-report-%s-to-%s.csv",
		p.Start.Format(shared.DateLayout), p.End.Format(shared.DateLayout))
}

// CSVReportWriter streams the detailed profit and loss report. Rows have
// varying widths, so the underlying csv.Writer runs with FieldsPerRecord
// unchecked.
type CSVReportWriter struct {
	w       *csv.Writer
	lookups Lookups
}

// NewCSVReportWriter creates a writer over out
func NewCSVReportWriter(out io.Writer, lookups Lookups) *CSVReportWriter {
	return &CSVReportWriter{w: csv.NewWriter(out), lookups: lookups}
}

// WriteProfitLoss writes the title, the period, the summary and one section
// per record kind, separated by blank lines.
func (cw *CSVReportWriter) WriteProfitLoss(pl report.ProfitLoss) error {
	cw.row(ReportTitle)
	cw.row(fmt.Sprintf("Period: %s to %s", pl.Period.Start.Format(periodLayout), pl.Period.End.Format(periodLayout)))
	cw.blank()

	cw.section("=== SUMMARY ===", nil)
	cw.row("Net Profit", money(pl.NetProfit))
	cw.row("Total Revenue", money(pl.TotalRevenue))
	cw.row("Total COGS", money(pl.TotalCOGS))
	cw.row("Total Payments", money(pl.Payments.Total))
	cw.row("Total Expenses", money(pl.Expenses.Total))
	cw.blank()

	r := pl.Records

	cw.section("=== PRODUCTION RECORDS ===", []string{"Date", "Product", "Quantity", "Punches", "Remarks"})
	for _, p := range r.Production {
		name, ok := cw.lookups.Products[p.ProductID]
		if !ok || name == "" {
			name = p.ProductName
		}
		punches := ""
		if p.Punches != nil {
			punches = strconv.Itoa(*p.Punches)
		}
		cw.row(date(p.Date), name, strconv.Itoa(p.Quantity), punches, p.Remarks)
	}
	cw.blank()

	cw.section("=== SALES RECORDS ===", []string{"Date", "Customer", "Phone", "Product", "Quantity", "Rate", "Total", "Received", "Balance", "Notes"})
	for _, s := range r.Sales {
		cw.row(date(s.Date), s.CustomerName, s.CustomerPhone, cw.lookups.Products[s.ProductID],
			strconv.Itoa(s.QuantitySold), money(s.RatePerBrick), money(s.TotalAmount),
			money(s.AmountReceived), money(s.BalanceDue), s.Notes)
	}
	cw.blank()

	cw.section("=== MATERIAL PURCHASES ===", []string{"Date", "Material", "Supplier", "Quantity", "Unit Cost", "Total Cost", "Payment Made", "Notes"})
	for _, p := range r.Purchases {
		cw.row(date(p.Date), cw.lookups.Materials[p.MaterialID], p.SupplierName,
			money(p.QuantityPurchased), money(p.UnitCost), money(p.TotalCost()),
			money(p.PaymentMade), p.Notes)
	}
	cw.blank()

	cw.section("=== MATERIAL USAGE ===", []string{"Date", "Material", "Quantity", "Purpose"})
	for _, u := range r.Usage {
		cw.row(date(u.Date), cw.lookups.Materials[u.MaterialID], money(u.QuantityUsed), u.Purpose)
	}
	cw.blank()

	cw.section("=== EMPLOYEE PAYMENTS ===", []string{"Date", "Employee", "Type", "Amount", "Notes"})
	for _, p := range r.Payments {
		cw.row(date(p.Date), p.EmployeeName, p.PaymentType, money(p.Amount), p.Notes)
	}
	cw.blank()

	cw.section("=== OTHER EXPENSES ===", []string{"Date", "Type", "Description", "Amount", "Vendor", "Receipt", "Notes"})
	for _, e := range r.Expenses {
		cw.row(date(e.Date), e.ExpenseType, e.Description, money(e.Amount), e.VendorName, e.ReceiptNumber, e.Notes)
	}

	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}

func (cw *CSVReportWriter) section(title string, header []string) {
	cw.row(title)
	if header != nil {
		cw.row(header...)
	}
}

// row ignores the write error; csv.Writer keeps the first one for Error().
func (cw *CSVReportWriter) row(fields ...string) {
	_ = cw.w.Write(fields)
}

func (cw *CSVReportWriter) blank() {
	cw.row("")
}

func date(t time.Time) string {
	return t.Format(shared.DateLayout)
}

func money(d decimal.Decimal) string {
	return d.String()
}
