package payment

import (
	"context"
	"strings"

	"github.com/bricksflow/backend/internal/domain/billing"
	"github.com/bricksflow/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockKeyID is the public key reported by the offline gateway
const MockKeyID = "rzp_test_MOCK_KEY_12345"

// MockGateway creates fake orders and accepts every payment. It is used
// when no gateway secret is configured or mock mode is forced.
type MockGateway struct{}

// NewMockGateway creates an offline gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// CreateOrder returns an order id of the form order_mock_<16 hex>
func (g *MockGateway) CreateOrder(_ context.Context, amountPaise int64, _ string) (*billing.Order, error) {
	hexID := strings.ReplaceAll(uuid.New().String(), "-", "")
	return &billing.Order{
		OrderID:     "order_mock_" + hexID[:16],
		KeyID:       MockKeyID,
		AmountPaise: amountPaise,
		Currency:    billing.Currency,
	}, nil
}

// VerifyPayment accepts any proof
func (g *MockGateway) VerifyPayment(billing.PaymentProof) error {
	return nil
}

var _ billing.Gateway = (*MockGateway)(nil)

// NewGateway returns the live gateway when cfg allows it, otherwise the mock
func NewGateway(cfg config.PaymentConfig, logger *zap.Logger) (billing.Gateway, error) {
	if !cfg.Live() {
		return NewMockGateway(), nil
	}
	return NewRazorpayGateway(cfg, logger)
}
