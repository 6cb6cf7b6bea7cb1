package report

import (
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/report"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrickStockResponse is the stock of one brick type
type BrickStockResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Unit        string    `json:"unit"`
	Produced    int       `json:"produced"`
	Sold        int       `json:"sold"`
	Stock       int       `json:"stock"`
}

// MaterialStockResponse is the stock and value of one material
type MaterialStockResponse struct {
	MaterialID         uuid.UUID       `json:"material_id"`
	MaterialName       string          `json:"material_name"`
	Unit               string          `json:"unit"`
	CurrentStockQty    decimal.Decimal `json:"current_stock_qty"`
	AverageCostPerUnit decimal.Decimal `json:"average_cost_per_unit"`
	Value              decimal.Decimal `json:"value"`
}

// DashboardResponse is the headline view of a factory
type DashboardResponse struct {
	FactoryID              uuid.UUID                        `json:"factory_id"`
	BrickStocks            []BrickStockResponse             `json:"brick_stocks"`
	MonthlyRevenue         decimal.Decimal                  `json:"monthly_revenue"`
	OutstandingReceivables decimal.Decimal                  `json:"outstanding_receivables"`
	WeeklyEmployeePayments decimal.Decimal                  `json:"weekly_employee_payments"`
	Materials              []MaterialStockResponse          `json:"materials"`
	TotalMaterialValue     decimal.Decimal                  `json:"total_material_value"`
	Subscription           *factoryapp.SubscriptionResponse `json:"subscription,omitempty"`
	GeneratedAt            time.Time                        `json:"generated_at"`
}

// ToDashboardResponse converts the domain dashboard
func ToDashboardResponse(factoryID uuid.UUID, d report.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		FactoryID:              factoryID,
		BrickStocks:            make([]BrickStockResponse, 0, len(d.BrickStocks)),
		MonthlyRevenue:         d.MonthlyRevenue,
		OutstandingReceivables: d.OutstandingReceivables,
		WeeklyEmployeePayments: d.WeeklyEmployeePayments,
		Materials:              make([]MaterialStockResponse, 0, len(d.Materials)),
		TotalMaterialValue:     d.TotalMaterialValue,
		GeneratedAt:            d.GeneratedAt,
	}
	for _, b := range d.BrickStocks {
		resp.BrickStocks = append(resp.BrickStocks, BrickStockResponse(b))
	}
	for _, m := range d.Materials {
		resp.Materials = append(resp.Materials, MaterialStockResponse(m))
	}
	return resp
}

// ReportQuery selects the report period and format
type ReportQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,calendar_date"`
	EndDate   string `form:"end_date" binding:"omitempty,calendar_date"`
	Format    string `form:"format" binding:"omitempty,oneof=json csv"`
}

// Period resolves the query to a period, defaulting to the week of now. A
// single missing bound is taken from the default week.
func (q ReportQuery) Period(now time.Time) (report.Period, error) {
	p := report.CurrentWeek(now)
	if q.StartDate != "" {
		d, err := shared.ParseDate(q.StartDate)
		if err != nil {
			return p, err
		}
		p.Start = d
	}
	if q.EndDate != "" {
		d, err := shared.ParseDate(q.EndDate)
		if err != nil {
			return p, err
		}
		p.End = d
	}
	if p.End.Before(p.Start) {
		return p, shared.ErrInvalidInput.WithMessage("end_date must not be before start_date")
	}
	return p, nil
}

// ProductionLineResponse is production of one brick type
type ProductionLineResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Punches     int    `json:"punches"`
}

// MaterialLineResponse is purchases or usage of one material
type MaterialLineResponse struct {
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
}

// PaymentsResponse splits employee payments by category
type PaymentsResponse struct {
	Salary    decimal.Decimal `json:"salary"`
	Advance   decimal.Decimal `json:"advance"`
	Bonus     decimal.Decimal `json:"bonus"`
	Incentive decimal.Decimal `json:"incentive"`
	Total     decimal.Decimal `json:"total"`
}

// ExpensesResponse splits other expenses by category
type ExpensesResponse struct {
	Transport     decimal.Decimal `json:"transport"`
	Utilities     decimal.Decimal `json:"utilities"`
	Salaries      decimal.Decimal `json:"salaries"`
	Repairs       decimal.Decimal `json:"repairs"`
	Miscellaneous decimal.Decimal `json:"miscellaneous"`
	Total         decimal.Decimal `json:"total"`
}

// ProfitLossResponse is the profit and loss statement of a period
type ProfitLossResponse struct {
	StartDate          string                   `json:"start_date"`
	EndDate            string                   `json:"end_date"`
	Production         []ProductionLineResponse `json:"production"`
	TotalPunches       int                      `json:"total_punches"`
	TotalRevenue       decimal.Decimal          `json:"total_revenue"`
	TotalQtySold       int                      `json:"total_qty_sold"`
	OutstandingBalance decimal.Decimal          `json:"outstanding_balance"`
	MaterialsPurchased []MaterialLineResponse   `json:"materials_purchased"`
	MaterialsUsed      []MaterialLineResponse   `json:"materials_used"`
	TotalPurchaseCost  decimal.Decimal          `json:"total_purchase_cost"`
	ProductionRate     decimal.Decimal          `json:"production_rate"`
	LoadingRate        decimal.Decimal          `json:"loading_rate"`
	ProductionWages    decimal.Decimal          `json:"production_wages"`
	LoadingWages       decimal.Decimal          `json:"loading_wages"`
	TotalCOGS          decimal.Decimal          `json:"total_cogs"`
	EmployeePayments   PaymentsResponse         `json:"employee_payments"`
	OtherExpenses      ExpensesResponse         `json:"other_expenses"`
	NetProfit          decimal.Decimal          `json:"net_profit"`
}

// ToProfitLossResponse converts the domain statement
func ToProfitLossResponse(pl report.ProfitLoss) ProfitLossResponse {
	resp := ProfitLossResponse{
		StartDate:          pl.Period.Start.Format(shared.DateLayout),
		EndDate:            pl.Period.End.Format(shared.DateLayout),
		Production:         make([]ProductionLineResponse, 0, len(pl.Production)),
		TotalPunches:       pl.TotalPunches,
		TotalRevenue:       pl.TotalRevenue,
		TotalQtySold:       pl.TotalQtySold,
		OutstandingBalance: pl.OutstandingBalance,
		MaterialsPurchased: materialLines(pl.MaterialsPurchased),
		MaterialsUsed:      materialLines(pl.MaterialsUsed),
		TotalPurchaseCost:  pl.TotalPurchaseCost,
		ProductionRate:     pl.ProductionRate,
		LoadingRate:        pl.LoadingRate,
		ProductionWages:    pl.ProductionWages,
		LoadingWages:       pl.LoadingWages,
		TotalCOGS:          pl.TotalCOGS,
		EmployeePayments:   PaymentsResponse(pl.Payments),
		OtherExpenses:      ExpensesResponse(pl.Expenses),
		NetProfit:          pl.NetProfit,
	}
	for _, l := range pl.Production {
		resp.Production = append(resp.Production, ProductionLineResponse(l))
	}
	return resp
}

func materialLines(lines []report.MaterialLine) []MaterialLineResponse {
	out := make([]MaterialLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, MaterialLineResponse(l))
	}
	return out
}
