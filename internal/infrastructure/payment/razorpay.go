// Package payment implements the subscription payment gateway: a Razorpay
// client for live mode and an offline mock.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bricksflow/backend/internal/domain/billing"
	"github.com/bricksflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const ordersPath = "/v1/orders"

// ErrGatewayUnavailable is returned when the gateway cannot be reached or
// keeps failing after retries
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// RazorpayGateway creates orders with the Razorpay REST API
type RazorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	retries    uint
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRazorpayGateway creates a live gateway from configuration
func NewRazorpayGateway(cfg config.PaymentConfig, logger *zap.Logger) (*RazorpayGateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("razorpay key id and secret are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := cfg.Retries
	if retries == 0 {
		retries = 3
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RazorpayGateway{
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		retries:    retries,
		retryDelay: 200 * time.Millisecond,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("razorpay"),
	}, nil
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates an order, retrying network errors and 5xx responses
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*billing.Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amountPaise,
		Currency: billing.Currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal request: %w", err)
	}

	var resp orderResponse
	err = retry.Do(
		func() error {
			return g.post(ctx, ordersPath, body, &resp)
		},
		retry.Context(ctx),
		retry.Attempts(g.retries),
		retry.Delay(g.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			g.logger.Warn("retrying order creation", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}

	return &billing.Order{
		OrderID:     resp.ID,
		KeyID:       g.keyID,
		AmountPaise: resp.Amount,
		Currency:    resp.Currency,
	}, nil
}

func (g *RazorpayGateway) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("razorpay: failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: HTTP %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Description != "" {
			return retry.Unrecoverable(fmt.Errorf("razorpay: %s: %s", errResp.Error.Code, errResp.Error.Description))
		}
		return retry.Unrecoverable(fmt.Errorf("razorpay: HTTP %d", resp.StatusCode))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("razorpay: failed to parse response: %w", err))
	}
	return nil
}

// VerifyPayment checks the checkout signature:
// hex(HMAC-SHA256(secret, order_id + "|" + payment_id))
func (g *RazorpayGateway) VerifyPayment(proof billing.PaymentProof) error {
	if !ValidSignature(g.keySecret, proof) {
		return billing.ErrInvalidSignature
	}
	return nil
}

// Sign computes the checkout signature for proof's order and payment ids
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature compares the proof's signature to the expected one in constant time
func ValidSignature(secret string, proof billing.PaymentProof) bool {
	expected := Sign(secret, proof.OrderID, proof.PaymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(proof.Signature)))
}

var _ billing.Gateway = (*RazorpayGateway)(nil)
