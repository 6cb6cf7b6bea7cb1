package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/billing"
	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionService sells plans and reports the caller's subscription
type SubscriptionService struct {
	factories factory.Repository
	catalog   *billing.Catalog
	gateway   billing.Gateway
	metrics   *telemetry.BusinessMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubscriptionService creates a new subscription service. metrics may be nil.
func NewSubscriptionService(
	factories factory.Repository,
	catalog *billing.Catalog,
	gateway billing.Gateway,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		factories: factories,
		catalog:   catalog,
		gateway:   gateway,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Plans lists the purchasable plans
func (s *SubscriptionService) Plans() []PlanResponse {
	plans := s.catalog.Plans()
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{
			ID:            string(p.ID),
			Days:          p.Days,
			AmountInPaise: p.PricePaise,
			Currency:      billing.Currency,
		})
	}
	return out
}

// Status returns the derived subscription of the caller's factory
func (s *SubscriptionService) Status(ctx context.Context, userID uuid.UUID) (*factoryapp.SubscriptionResponse, error) {
	f, err := s.callerFactory(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := factoryapp.ToSubscriptionResponse(f, s.now())
	return &resp, nil
}

// Restore re-reads the subscription from storage, for clients recovering
// from an interrupted checkout
func (s *SubscriptionService) Restore(ctx context.Context, userID uuid.UUID) (*factoryapp.SubscriptionResponse, error) {
	resp, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Subscription restored",
		zap.String("factory_id", resp.FactoryID.String()),
		zap.String("status", resp.Status),
	)
	return resp, nil
}

// CreateOrder opens a payment order for the caller's factory. The amount
// defaults to the plan price.
func (s *SubscriptionService) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subscription", "create_order",
		telemetry.AttrPlanType.String(req.PlanID))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	f, err := s.callerFactory(ctx, userID)
	if err != nil {
		return nil, err
	}

	amount := req.AmountInPaise
	if req.PlanID != "" {
		plan, lookupErr := s.catalog.Lookup(req.PlanID)
		if lookupErr != nil {
			err = lookupErr
			return nil, err
		}
		if amount <= 0 {
			amount = plan.PricePaise
		}
	}
	if amount <= 0 {
		err = shared.ErrInvalidInput.WithMessage("amount_in_paise or plan_id is required")
		return nil, err
	}

	receipt := fmt.Sprintf("factory_%s", f.ID.String()[:8])
	order, err := s.gateway.CreateOrder(ctx, amount, receipt)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	logger.L(ctx).Info("Payment order created",
		zap.String("factory_id", f.ID.String()),
		zap.String("order_id", order.OrderID),
		zap.Int64("amount_paise", order.AmountPaise),
	)
	return &OrderResponse{
		OrderID:     order.OrderID,
		RazorpayKey: order.KeyID,
		Amount:      order.AmountPaise,
		Currency:    order.Currency,
	}, nil
}

// Complete verifies a finished payment and activates the purchased plan
func (s *SubscriptionService) Complete(ctx context.Context, userID uuid.UUID, req CompletePaymentRequest) (*factoryapp.SubscriptionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "subscription", "complete",
		telemetry.AttrPlanType.String(req.PlanID))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	f, err := s.callerFactory(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err = s.gateway.VerifyPayment(billing.PaymentProof{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	}); err != nil {
		logger.L(ctx).Warn("Payment verification failed",
			zap.String("factory_id", f.ID.String()),
			zap.String("order_id", req.RazorpayOrderID),
		)
		return nil, err
	}

	plan, err := s.catalog.Lookup(req.PlanID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	f.ActivatePlan(plan.ID, plan.Days, now)
	if err = s.factories.Save(ctx, f); err != nil {
		return nil, err
	}
	s.metrics.RecordSubscriptionActivated(ctx, string(plan.ID))

	logger.L(ctx).Info("Subscription activated",
		zap.String("factory_id", f.ID.String()),
		zap.String("plan", string(plan.ID)),
		zap.Timep("expires_at", f.PlanExpiryDate),
	)
	resp := factoryapp.ToSubscriptionResponse(f, now)
	return &resp, nil
}

func (s *SubscriptionService) callerFactory(ctx context.Context, userID uuid.UUID) (*factory.Factory, error) {
	f, err := s.factories.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, factoryapp.ErrFactoryNotFound
		}
		return nil, err
	}
	return f, nil
}
