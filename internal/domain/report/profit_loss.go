package report

import (
	"sort"
	"time"

	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is an inclusive range of calendar dates
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentWeek returns Monday to Sunday of the week containing now
func CurrentWeek(now time.Time) Period {
	today := shared.Today(now)
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset)
	return Period{Start: start, End: start.AddDate(0, 0, 6)}
}

// Contains reports whether the calendar date of t lies within the period
func (p Period) Contains(t time.Time) bool {
	d := shared.Today(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// ProductionLine is production of one brick type within the period
type ProductionLine struct {
	ProductName string
	Quantity    int
	Punches     int
}

// MaterialLine is purchases or usage of one material within the period
type MaterialLine struct {
	MaterialName string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
}

// PaymentBreakdown splits employee payments by category
type PaymentBreakdown struct {
	Salary    decimal.Decimal
	Advance   decimal.Decimal
	Bonus     decimal.Decimal
	Incentive decimal.Decimal
	Total     decimal.Decimal
}

// ExpenseBreakdown splits other expenses by category
type ExpenseBreakdown struct {
	Transport     decimal.Decimal
	Utilities     decimal.Decimal
	Salaries      decimal.Decimal
	Repairs       decimal.Decimal
	Miscellaneous decimal.Decimal
	Total         decimal.Decimal
}

// ProfitLoss is the profit and loss statement of a period
type ProfitLoss struct {
	Period Period

	Production   []ProductionLine
	TotalPunches int

	TotalRevenue       decimal.Decimal
	TotalQtySold       int
	OutstandingBalance decimal.Decimal

	MaterialsPurchased []MaterialLine
	MaterialsUsed      []MaterialLine
	TotalPurchaseCost  decimal.Decimal

	ProductionRate  decimal.Decimal
	LoadingRate     decimal.Decimal
	ProductionWages decimal.Decimal
	LoadingWages    decimal.Decimal
	TotalCOGS       decimal.Decimal

	Payments PaymentBreakdown
	Expenses ExpenseBreakdown

	NetProfit decimal.Decimal

	// Records in the period, kept for the detailed export
	Records PeriodRecords
}

// PeriodRecords holds the raw records that fall inside the period
type PeriodRecords struct {
	Production []production.ProductionLog
	Sales      []trade.Sale
	Purchases  []inventory.MaterialPurchase
	Usage      []inventory.MaterialUsage
	Payments   []workforce.EmployeePayment
	Expenses   []finance.OtherExpense
}

// ProfitLossInput is every record the statement is computed from
type ProfitLossInput struct {
	Production   []production.ProductionLog
	Sales        []trade.Sale
	Purchases    []inventory.MaterialPurchase
	Usage        []inventory.MaterialUsage
	Payments     []workforce.EmployeePayment
	Expenses     []finance.OtherExpense
	Rates        []finance.FactoryRate
	Materials    []inventory.Material
	ProductNames map[uuid.UUID]string
}

// BuildProfitLoss computes the statement for the records dated within period.
//
// COGS is material purchase cost plus production wages (punches times the
// production_per_punch rate) plus loading wages (bricks sold times the
// loading_per_brick rate). Net profit is revenue less COGS, employee
// payments and other expenses.
func BuildProfitLoss(in ProfitLossInput, period Period) ProfitLoss {
	pl := ProfitLoss{
		Period:             period,
		TotalRevenue:       decimal.Zero,
		OutstandingBalance: decimal.Zero,
		TotalPurchaseCost:  decimal.Zero,
		Payments:           zeroPayments(),
		Expenses:           zeroExpenses(),
	}

	materialNames := make(map[uuid.UUID]string, len(in.Materials))
	for _, m := range in.Materials {
		materialNames[m.ID] = m.MaterialName
	}
	nameOf := func(id uuid.UUID) string {
		if n, ok := materialNames[id]; ok {
			return n
		}
		return "Unknown"
	}

	prodIdx := newLineIndex[ProductionLine]()
	for _, l := range in.Production {
		if !period.Contains(l.Date) {
			continue
		}
		pl.Records.Production = append(pl.Records.Production, l)
		name := l.ProductName
		if name == "" {
			name = in.ProductNames[l.ProductID]
		}
		line := prodIdx.get(name, func() ProductionLine { return ProductionLine{ProductName: name} })
		line.Quantity += l.Quantity
		line.Punches += l.PunchCount()
		pl.TotalPunches += l.PunchCount()
	}
	pl.Production = prodIdx.values()

	for _, s := range in.Sales {
		if !period.Contains(s.Date) {
			continue
		}
		pl.Records.Sales = append(pl.Records.Sales, s)
		pl.TotalRevenue = pl.TotalRevenue.Add(s.TotalAmount)
		pl.TotalQtySold += s.QuantitySold
		pl.OutstandingBalance = pl.OutstandingBalance.Add(s.BalanceDue)
	}

	purchIdx := newLineIndex[MaterialLine]()
	for _, p := range in.Purchases {
		if !period.Contains(p.Date) {
			continue
		}
		pl.Records.Purchases = append(pl.Records.Purchases, p)
		name := nameOf(p.MaterialID)
		line := purchIdx.get(name, func() MaterialLine {
			return MaterialLine{MaterialName: name, Quantity: decimal.Zero, Cost: decimal.Zero}
		})
		cost := p.TotalCost()
		line.Quantity = line.Quantity.Add(p.QuantityPurchased)
		line.Cost = line.Cost.Add(cost)
		pl.TotalPurchaseCost = pl.TotalPurchaseCost.Add(cost)
	}
	pl.MaterialsPurchased = purchIdx.values()

	usageIdx := newLineIndex[MaterialLine]()
	for _, u := range in.Usage {
		if !period.Contains(u.Date) {
			continue
		}
		pl.Records.Usage = append(pl.Records.Usage, u)
		name := nameOf(u.MaterialID)
		line := usageIdx.get(name, func() MaterialLine {
			return MaterialLine{MaterialName: name, Quantity: decimal.Zero, Cost: decimal.Zero}
		})
		line.Quantity = line.Quantity.Add(u.QuantityUsed)
	}
	pl.MaterialsUsed = usageIdx.values()

	for i := range in.Payments {
		p := &in.Payments[i]
		if !period.Contains(p.Date) {
			continue
		}
		pl.Records.Payments = append(pl.Records.Payments, *p)
		switch p.Category() {
		case workforce.PaymentAdvance:
			pl.Payments.Advance = pl.Payments.Advance.Add(p.Amount)
		case workforce.PaymentBonus:
			pl.Payments.Bonus = pl.Payments.Bonus.Add(p.Amount)
		case workforce.PaymentIncentive:
			pl.Payments.Incentive = pl.Payments.Incentive.Add(p.Amount)
		default:
			pl.Payments.Salary = pl.Payments.Salary.Add(p.Amount)
		}
		pl.Payments.Total = pl.Payments.Total.Add(p.Amount)
	}

	for i := range in.Expenses {
		e := &in.Expenses[i]
		if !period.Contains(e.Date) {
			continue
		}
		pl.Records.Expenses = append(pl.Records.Expenses, *e)
		switch e.Category() {
		case finance.ExpenseTransport:
			pl.Expenses.Transport = pl.Expenses.Transport.Add(e.Amount)
		case finance.ExpenseUtilities:
			pl.Expenses.Utilities = pl.Expenses.Utilities.Add(e.Amount)
		case finance.ExpenseSalaries:
			pl.Expenses.Salaries = pl.Expenses.Salaries.Add(e.Amount)
		case finance.ExpenseRepairs:
			pl.Expenses.Repairs = pl.Expenses.Repairs.Add(e.Amount)
		default:
			pl.Expenses.Miscellaneous = pl.Expenses.Miscellaneous.Add(e.Amount)
		}
		pl.Expenses.Total = pl.Expenses.Total.Add(e.Amount)
	}

	pl.ProductionRate = finance.ActiveRate(in.Rates, finance.RateProductionPerPunch, finance.DefaultProductionPerPunch)
	pl.LoadingRate = finance.ActiveRate(in.Rates, finance.RateLoadingPerBrick, finance.DefaultLoadingPerBrick)
	pl.ProductionWages = decimal.NewFromInt(int64(pl.TotalPunches)).Mul(pl.ProductionRate)
	pl.LoadingWages = decimal.NewFromInt(int64(pl.TotalQtySold)).Mul(pl.LoadingRate)
	pl.TotalCOGS = pl.TotalPurchaseCost.Add(pl.ProductionWages).Add(pl.LoadingWages)

	pl.NetProfit = pl.TotalRevenue.
		Sub(pl.TotalCOGS).
		Sub(pl.Payments.Total).
		Sub(pl.Expenses.Total)

	sortByDateDesc(&pl.Records)
	return pl
}

func zeroPayments() PaymentBreakdown {
	return PaymentBreakdown{
		Salary: decimal.Zero, Advance: decimal.Zero, Bonus: decimal.Zero,
		Incentive: decimal.Zero, Total: decimal.Zero,
	}
}

func zeroExpenses() ExpenseBreakdown {
	return ExpenseBreakdown{
		Transport: decimal.Zero, Utilities: decimal.Zero, Salaries: decimal.Zero,
		Repairs: decimal.Zero, Miscellaneous: decimal.Zero, Total: decimal.Zero,
	}
}

// lineIndex keeps grouped lines in first-seen order
type lineIndex[T any] struct {
	order []string
	lines map[string]*T
}

func newLineIndex[T any]() *lineIndex[T] {
	return &lineIndex[T]{lines: make(map[string]*T)}
}

func (x *lineIndex[T]) get(key string, init func() T) *T {
	if l, ok := x.lines[key]; ok {
		return l
	}
	v := init()
	x.lines[key] = &v
	x.order = append(x.order, key)
	return &v
}

func (x *lineIndex[T]) values() []T {
	out := make([]T, 0, len(x.order))
	for _, k := range x.order {
		out = append(out, *x.lines[k])
	}
	return out
}

func sortByDateDesc(r *PeriodRecords) {
	sort.SliceStable(r.Production, func(i, j int) bool { return r.Production[i].Date.After(r.Production[j].Date) })
	sort.SliceStable(r.Sales, func(i, j int) bool { return r.Sales[i].Date.After(r.Sales[j].Date) })
	sort.SliceStable(r.Purchases, func(i, j int) bool { return r.Purchases[i].Date.After(r.Purchases[j].Date) })
	sort.SliceStable(r.Usage, func(i, j int) bool { return r.Usage[i].Date.After(r.Usage[j].Date) })
	sort.SliceStable(r.Payments, func(i, j int) bool { return r.Payments[i].Date.After(r.Payments[j].Date) })
	sort.SliceStable(r.Expenses, func(i, j int) bool { return r.Expenses[i].Date.After(r.Expenses[j].Date) })
}
