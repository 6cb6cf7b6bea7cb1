package report

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrickStock is the on-hand stock of one brick type
type BrickStock struct {
	ProductID   uuid.UUID
	ProductName string
	Unit        string
	Produced    int
	Sold        int
	Stock       int
}

// MaterialStock is the on-hand stock and value of one material
type MaterialStock struct {
	MaterialID         uuid.UUID
	MaterialName       string
	Unit               string
	CurrentStockQty    decimal.Decimal
	AverageCostPerUnit decimal.Decimal
	Value              decimal.Decimal
}

// Dashboard is the headline view of a factory
type Dashboard struct {
	BrickStocks            []BrickStock
	MonthlyRevenue         decimal.Decimal
	OutstandingReceivables decimal.Decimal
	WeeklyEmployeePayments decimal.Decimal
	Materials              []MaterialStock
	TotalMaterialValue     decimal.Decimal
	GeneratedAt            time.Time
}

// DashboardInput is every record the dashboard is computed from
type DashboardInput struct {
	Products   []catalog.ProductDefinition
	Production []production.ProductionLog
	Sales      []trade.Sale
	Payments   []workforce.EmployeePayment
	Materials  []inventory.Material
}

// BuildDashboard aggregates the factory records at now.
//
// Stock per brick type is everything produced minus everything sold, over
// all dates, and may be negative. Monthly revenue counts sales dated on or
// after the first of the current month. Weekly payments count payments dated
// on or after today minus seven days.
func BuildDashboard(in DashboardInput, now time.Time) Dashboard {
	today := shared.Today(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)

	produced := make(map[uuid.UUID]int)
	for _, l := range in.Production {
		produced[l.ProductID] += l.Quantity
	}

	dash := Dashboard{
		MonthlyRevenue:         decimal.Zero,
		OutstandingReceivables: decimal.Zero,
		WeeklyEmployeePayments: decimal.Zero,
		TotalMaterialValue:     decimal.Zero,
		BrickStocks:            make([]BrickStock, 0, len(in.Products)),
		Materials:              make([]MaterialStock, 0, len(in.Materials)),
		GeneratedAt:            now,
	}

	sold := make(map[uuid.UUID]int)
	for _, s := range in.Sales {
		sold[s.ProductID] += s.QuantitySold
		dash.OutstandingReceivables = dash.OutstandingReceivables.Add(s.BalanceDue)
		if !s.Date.Before(monthStart) {
			dash.MonthlyRevenue = dash.MonthlyRevenue.Add(s.TotalAmount)
		}
	}

	for _, p := range in.Products {
		dash.BrickStocks = append(dash.BrickStocks, BrickStock{
			ProductID:   p.ID,
			ProductName: p.Name,
			Unit:        p.Unit,
			Produced:    produced[p.ID],
			Sold:        sold[p.ID],
			Stock:       produced[p.ID] - sold[p.ID],
		})
	}

	for _, p := range in.Payments {
		if !p.Date.Before(weekAgo) {
			dash.WeeklyEmployeePayments = dash.WeeklyEmployeePayments.Add(p.Amount)
		}
	}

	for i := range in.Materials {
		m := &in.Materials[i]
		value := m.StockValue()
		dash.TotalMaterialValue = dash.TotalMaterialValue.Add(value)
		dash.Materials = append(dash.Materials, MaterialStock{
			MaterialID:         m.ID,
			MaterialName:       m.MaterialName,
			Unit:               m.Unit,
			CurrentStockQty:    m.CurrentStockQty,
			AverageCostPerUnit: m.AverageCostPerUnit,
			Value:              value,
		})
	}

	return dash
}
