package telemetry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BusinessMetrics records factory activity. A nil *BusinessMetrics is valid
// and records nothing.
type BusinessMetrics struct {
	salesTotal          *Counter
	salesAmount         *FloatCounter
	paymentsAmount      *FloatCounter
	productionQuantity  *FloatCounter
	purchasesAmount     *FloatCounter
	subscriptionsTotal  *Counter
	factoriesExpired    *Counter
	expirySweepFailures *Counter
}

// NewBusinessMetrics registers the business instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	var err error
	if bm.salesTotal, err = NewCounter(meter, "bricksflow_sales_total", "Number of sales recorded", "{sales}"); err != nil {
		return nil, err
	}
	if bm.salesAmount, err = NewFloatCounter(meter, "bricksflow_sales_amount", "Invoiced sales value", "INR"); err != nil {
		return nil, err
	}
	if bm.paymentsAmount, err = NewFloatCounter(meter, "bricksflow_customer_payments_amount", "Customer payments applied to sales", "INR"); err != nil {
		return nil, err
	}
	if bm.productionQuantity, err = NewFloatCounter(meter, "bricksflow_production_quantity", "Bricks produced", "{bricks}"); err != nil {
		return nil, err
	}
	if bm.purchasesAmount, err = NewFloatCounter(meter, "bricksflow_material_purchases_amount", "Raw material spend", "INR"); err != nil {
		return nil, err
	}
	if bm.subscriptionsTotal, err = NewCounter(meter, "bricksflow_subscriptions_activated_total", "Plans activated after payment", "{subscriptions}"); err != nil {
		return nil, err
	}
	if bm.factoriesExpired, err = NewCounter(meter, "bricksflow_factories_expired_total", "Factories moved to expired by the sweeper", "{factories}"); err != nil {
		return nil, err
	}
	if bm.expirySweepFailures, err = NewCounter(meter, "bricksflow_expiry_sweep_failures_total", "Failed expiry sweeps", "{sweeps}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordSale counts a sale and its invoiced total.
func (bm *BusinessMetrics) RecordSale(ctx context.Context, factoryID uuid.UUID, brickType string, total decimal.Decimal) {
	if bm == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrFactoryID.String(factoryID.String()), AttrBrickType.String(brickType)}
	bm.salesTotal.Inc(ctx, attrs...)
	bm.salesAmount.Add(ctx, total.InexactFloat64(), attrs...)
}

// RecordPaymentApplied records a customer payment allocated to sales.
func (bm *BusinessMetrics) RecordPaymentApplied(ctx context.Context, factoryID uuid.UUID, amount decimal.Decimal) {
	if bm == nil {
		return
	}
	bm.paymentsAmount.Add(ctx, amount.InexactFloat64(), AttrFactoryID.String(factoryID.String()))
}

// RecordProduction records bricks produced.
func (bm *BusinessMetrics) RecordProduction(ctx context.Context, factoryID uuid.UUID, brickType string, quantity decimal.Decimal) {
	if bm == nil {
		return
	}
	bm.productionQuantity.Add(ctx, quantity.InexactFloat64(),
		AttrFactoryID.String(factoryID.String()), AttrBrickType.String(brickType))
}

// RecordMaterialPurchase records raw material spend.
func (bm *BusinessMetrics) RecordMaterialPurchase(ctx context.Context, factoryID uuid.UUID, cost decimal.Decimal) {
	if bm == nil {
		return
	}
	bm.purchasesAmount.Add(ctx, cost.InexactFloat64(), AttrFactoryID.String(factoryID.String()))
}

// RecordSubscriptionActivated counts a completed plan purchase.
func (bm *BusinessMetrics) RecordSubscriptionActivated(ctx context.Context, plan string) {
	if bm == nil {
		return
	}
	bm.subscriptionsTotal.Inc(ctx, AttrPlanType.String(plan))
}

// RecordExpirySweep records the outcome of a subscription expiry sweep. Its
// signature matches scheduler.SweepObserver.
func (bm *BusinessMetrics) RecordExpirySweep(ctx context.Context, expired int64, err error) {
	if bm == nil {
		return
	}
	if err != nil {
		bm.expirySweepFailures.Inc(ctx)
		return
	}
	if expired > 0 {
		bm.factoriesExpired.Add(ctx, expired)
	}
}
