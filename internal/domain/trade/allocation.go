package trade

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is the part of a customer payment applied to one sale
type Allocation struct {
	SaleID     uuid.UUID
	Amount     decimal.Decimal
	BalanceDue decimal.Decimal
}

// AllocationResult is the outcome of applying a customer payment
type AllocationResult struct {
	Allocations []Allocation
	Applied     decimal.Decimal
	Unapplied   decimal.Decimal
}

// AllocateFIFO applies amount to sales with an outstanding balance, oldest
// date first (creation time breaks ties). Sales are mutated in place.
func AllocateFIFO(amount decimal.Decimal, sales []*Sale) AllocationResult {
	open := make([]*Sale, 0, len(sales))
	for _, s := range sales {
		if s.BalanceDue.IsPositive() {
			open = append(open, s)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if !open[i].Date.Equal(open[j].Date) {
			return open[i].Date.Before(open[j].Date)
		}
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})

	res := AllocationResult{Applied: decimal.Zero}
	remaining := amount
	for _, s := range open {
		if !remaining.IsPositive() {
			break
		}
		applied := s.ApplyPayment(remaining)
		remaining = remaining.Sub(applied)
		res.Applied = res.Applied.Add(applied)
		res.Allocations = append(res.Allocations, Allocation{
			SaleID:     s.ID,
			Amount:     applied,
			BalanceDue: s.BalanceDue,
		})
	}
	res.Unapplied = decimal.Max(decimal.Zero, remaining)
	return res
}
