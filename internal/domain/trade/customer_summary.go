package trade

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSummary aggregates the sales ledger of one customer
type CustomerSummary struct {
	CustomerName        string
	CustomerPhone       string
	TotalSales          decimal.Decimal
	TotalReceived       decimal.Decimal
	BalanceDue          decimal.Decimal
	TransactionCount    int
	LastTransactionDate time.Time
}

// SummarizeCustomers groups sales by customer name, largest total first
func SummarizeCustomers(sales []Sale) []CustomerSummary {
	byName := make(map[string]*CustomerSummary)
	order := make([]string, 0)
	for i := range sales {
		s := &sales[i]
		cs, ok := byName[s.CustomerName]
		if !ok {
			cs = &CustomerSummary{
				CustomerName:  s.CustomerName,
				TotalSales:    decimal.Zero,
				TotalReceived: decimal.Zero,
				BalanceDue:    decimal.Zero,
			}
			byName[s.CustomerName] = cs
			order = append(order, s.CustomerName)
		}
		if cs.CustomerPhone == "" {
			cs.CustomerPhone = s.CustomerPhone
		}
		cs.TotalSales = cs.TotalSales.Add(s.TotalAmount)
		cs.TotalReceived = cs.TotalReceived.Add(s.AmountReceived)
		cs.BalanceDue = cs.BalanceDue.Add(s.BalanceDue)
		cs.TransactionCount++
		if s.Date.After(cs.LastTransactionDate) {
			cs.LastTransactionDate = s.Date
		}
	}

	out := make([]CustomerSummary, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales.GreaterThan(out[j].TotalSales)
	})
	return out
}
