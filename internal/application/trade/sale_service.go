// Package trade manages brick sales and the customer ledger built from them.
package trade

import (
	"context"
	"strings"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrSaleNotFound is returned for an unknown sale
var ErrSaleNotFound = shared.ErrNotFound.WithMessage("Sale not found")

// SaleService manages sales and customer payments
type SaleService struct {
	sales    trade.SaleRepository
	products catalog.ProductRepository
	guard    *factoryapp.Guard
	metrics  *telemetry.BusinessMetrics
	logger   *zap.Logger
}

// NewSaleService creates a new sale service. metrics may be nil.
func NewSaleService(
	sales trade.SaleRepository,
	products catalog.ProductRepository,
	guard *factoryapp.Guard,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		sales:    sales,
		products: products,
		guard:    guard,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create records a sale
func (s *SaleService) Create(ctx context.Context, userID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "create_sale",
		telemetry.AttrFactoryID.String(req.FactoryID.String()))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	if _, err = s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	total := req.RatePerBrick.Mul(decimal.NewFromInt(int64(req.QuantitySold)))
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}
	balance := decimal.Max(decimal.Zero, total.Sub(req.AmountReceived))
	if req.BalanceDue != nil {
		balance = *req.BalanceDue
	}

	sale, err := trade.NewSale(req.FactoryID, trade.SaleInput{
		Date:           date,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ProductID:      req.ProductID,
		QuantitySold:   req.QuantitySold,
		RatePerBrick:   req.RatePerBrick,
		TotalAmount:    total,
		AmountReceived: req.AmountReceived,
		BalanceDue:     balance,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err = s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSale(ctx, sale.FactoryID, s.brickType(ctx, sale.ProductID), sale.TotalAmount)
	}

	logger.L(ctx).Info("Sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("customer", sale.CustomerName),
		zap.String("total", sale.TotalAmount.String()),
		zap.String("status", string(sale.PaymentStatus())),
	)
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ListByFactory lists sales within the date range, newest first
func (s *SaleService) ListByFactory(ctx context.Context, userID, factoryID uuid.UUID, query factoryapp.ListQuery) ([]SaleResponse, error) {
	sales, err := factoryapp.ListOwned[trade.Sale](ctx, s.guard, s.sales, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, ToSaleResponse(&sales[i]))
	}
	return out, nil
}

// Get returns one sale
func (s *SaleService) Get(ctx context.Context, userID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := factoryapp.LoadOwned[trade.Sale](ctx, s.guard, s.sales, userID, saleID, ErrSaleNotFound)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Update applies a partial update. Amounts are stored as given.
func (s *SaleService) Update(ctx context.Context, userID, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := factoryapp.LoadOwned[trade.Sale](ctx, s.guard, s.sales, userID, saleID, ErrSaleNotFound)
	if err != nil {
		return nil, err
	}
	if req.Date != nil {
		d, err := shared.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		sale.Date = d
	}
	if req.CustomerName != nil {
		if err := sale.SetCustomerName(*req.CustomerName); err != nil {
			return nil, err
		}
	}
	if req.CustomerPhone != nil {
		sale.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.ProductID != nil {
		sale.ProductID = *req.ProductID
	}
	if req.QuantitySold != nil {
		sale.QuantitySold = *req.QuantitySold
	}
	if req.RatePerBrick != nil {
		sale.RatePerBrick = *req.RatePerBrick
	}
	if req.TotalAmount != nil {
		sale.TotalAmount = *req.TotalAmount
	}
	if req.AmountReceived != nil {
		sale.AmountReceived = *req.AmountReceived
	}
	if req.BalanceDue != nil {
		sale.BalanceDue = *req.BalanceDue
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
	}
	if err := sale.Validate(); err != nil {
		return nil, err
	}
	sale.Touch()

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Delete removes a sale
func (s *SaleService) Delete(ctx context.Context, userID, saleID uuid.UUID) error {
	return factoryapp.DeleteOwned[trade.Sale](ctx, s.guard, s.sales, userID, saleID, ErrSaleNotFound)
}

// Customers returns the customer ledger of a factory, largest total first
func (s *SaleService) Customers(ctx context.Context, userID, factoryID uuid.UUID) ([]CustomerSummaryResponse, error) {
	sales, err := factoryapp.ListOwned[trade.Sale](ctx, s.guard, s.sales, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	summaries := trade.SummarizeCustomers(sales)
	out := make([]CustomerSummaryResponse, 0, len(summaries))
	for _, cs := range summaries {
		out = append(out, CustomerSummaryResponse{
			CustomerName:        cs.CustomerName,
			CustomerPhone:       cs.CustomerPhone,
			TotalSales:          cs.TotalSales,
			TotalReceived:       cs.TotalReceived,
			BalanceDue:          cs.BalanceDue,
			TransactionCount:    cs.TransactionCount,
			LastTransactionDate: cs.LastTransactionDate.Format(shared.DateLayout),
		})
	}
	return out, nil
}

// ApplyCustomerPayment spreads a lump-sum payment over the customer's unpaid
// sales, oldest first, in a single transaction.
func (s *SaleService) ApplyCustomerPayment(ctx context.Context, userID, factoryID uuid.UUID, req CustomerPaymentRequest) (*CustomerPaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trade", "apply_customer_payment",
		telemetry.AttrFactoryID.String(factoryID.String()))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	if _, err = s.guard.Authorize(ctx, userID, factoryID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		err = shared.ErrInvalidInput.WithMessage("Payment amount must be positive")
		return nil, err
	}
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		err = shared.ErrInvalidInput.WithMessage("Customer name cannot be empty")
		return nil, err
	}

	result, err := s.sales.ApplyCustomerPayment(ctx, factoryID, name, req.Amount)
	if err != nil {
		return nil, err
	}

	allocations := make([]AllocationResponse, 0, len(result.Allocations))
	for _, a := range result.Allocations {
		allocations = append(allocations, AllocationResponse{
			SaleID:           a.SaleID,
			AmountApplied:    a.Amount,
			RemainingBalance: a.BalanceDue,
		})
	}
	s.metrics.RecordPaymentApplied(ctx, factoryID, result.Applied)

	logger.L(ctx).Info("Customer payment applied",
		zap.String("customer", name),
		zap.String("amount", req.Amount.String()),
		zap.String("applied", result.Applied.String()),
		zap.Int("sales", len(allocations)),
	)
	return &CustomerPaymentResponse{
		CustomerName: name,
		Amount:       req.Amount,
		Applied:      result.Applied,
		Unapplied:    result.Unapplied,
		Allocations:  allocations,
	}, nil
}

// brickType names the product for metric labels
func (s *SaleService) brickType(ctx context.Context, productID uuid.UUID) string {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return "unknown"
	}
	return product.Name
}
