package billing

import (
	"context"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
)

// Currency of all subscription payments
const Currency = "INR"

// ErrInvalidPlan is returned for an unknown plan_id
var ErrInvalidPlan = shared.ErrInvalidInput.WithMessage("Invalid plan_id")

// ErrInvalidSignature is returned when a payment signature does not verify
var ErrInvalidSignature = shared.ErrInvalidInput.WithMessage("Invalid payment signature")

// Plan is a purchasable subscription plan
type Plan struct {
	ID         factory.PlanType
	Days       int
	PricePaise int64
}

// Catalog resolves plan ids to plans
type Catalog struct {
	plans map[factory.PlanType]Plan
}

// NewCatalog builds the monthly and yearly plans
func NewCatalog(monthlyDays, yearlyDays int, monthlyPrice, yearlyPrice int64) *Catalog {
	return &Catalog{plans: map[factory.PlanType]Plan{
		factory.PlanMonthly: {ID: factory.PlanMonthly, Days: monthlyDays, PricePaise: monthlyPrice},
		factory.PlanYearly:  {ID: factory.PlanYearly, Days: yearlyDays, PricePaise: yearlyPrice},
	}}
}

// Lookup returns the plan for id or ErrInvalidPlan
func (c *Catalog) Lookup(id string) (Plan, error) {
	p, ok := c.plans[factory.PlanType(id)]
	if !ok {
		return Plan{}, ErrInvalidPlan
	}
	return p, nil
}

// Plans returns all purchasable plans, monthly first
func (c *Catalog) Plans() []Plan {
	return []Plan{c.plans[factory.PlanMonthly], c.plans[factory.PlanYearly]}
}

// Order is a payment order created with the gateway
type Order struct {
	OrderID     string
	KeyID       string
	AmountPaise int64
	Currency    string
}

// PaymentProof is what the checkout returns after a successful payment
type PaymentProof struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Gateway creates payment orders and verifies completed payments
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*Order, error)
	VerifyPayment(proof PaymentProof) error
}
