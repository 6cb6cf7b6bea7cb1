// Package production records the daily output of each brick type.
package production

import (
	"context"
	"errors"
	"strings"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrLogNotFound is returned for an unknown production log
var ErrLogNotFound = shared.ErrNotFound.WithMessage("Production log not found")

// ProductionService manages production logs
type ProductionService struct {
	logs     production.LogRepository
	products catalog.ProductRepository
	guard    *factoryapp.Guard
	metrics  *telemetry.BusinessMetrics
	logger   *zap.Logger
}

// NewProductionService creates a new production service. metrics may be nil.
func NewProductionService(
	logs production.LogRepository,
	products catalog.ProductRepository,
	guard *factoryapp.Guard,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *ProductionService {
	return &ProductionService{
		logs:     logs,
		products: products,
		guard:    guard,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create records production. An empty product name is taken from the
// brick type.
func (s *ProductionService) Create(ctx context.Context, userID uuid.UUID, req CreateLogRequest) (*LogResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "create",
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

	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		name, err = s.productName(ctx, req.FactoryID, req.ProductID)
		if err != nil {
			return nil, err
		}
	}

	entry, err := production.NewProductionLog(req.FactoryID, date, req.ProductID, name, req.Quantity, req.Punches, req.Remarks)
	if err != nil {
		return nil, err
	}
	if err = s.logs.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.metrics.RecordProduction(ctx, entry.FactoryID, entry.ProductName, decimal.NewFromInt(int64(entry.Quantity)))

	logger.L(ctx).Info("Production recorded",
		zap.String("log_id", entry.ID.String()),
		zap.String("product", entry.ProductName),
		zap.Int("quantity", entry.Quantity),
	)
	resp := ToLogResponse(entry)
	return &resp, nil
}

// ListByFactory lists production logs, newest first, within the date range
func (s *ProductionService) ListByFactory(ctx context.Context, userID, factoryID uuid.UUID, query factoryapp.ListQuery) ([]LogResponse, error) {
	entries, err := factoryapp.ListOwned[production.ProductionLog](ctx, s.guard, s.logs, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	out := make([]LogResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToLogResponse(&entries[i]))
	}
	return out, nil
}

// Get returns one production log
func (s *ProductionService) Get(ctx context.Context, userID, logID uuid.UUID) (*LogResponse, error) {
	entry, err := factoryapp.LoadOwned[production.ProductionLog](ctx, s.guard, s.logs, userID, logID, ErrLogNotFound)
	if err != nil {
		return nil, err
	}
	resp := ToLogResponse(entry)
	return &resp, nil
}

// Update applies a partial update to a production log
func (s *ProductionService) Update(ctx context.Context, userID, logID uuid.UUID, req UpdateLogRequest) (*LogResponse, error) {
	entry, err := factoryapp.LoadOwned[production.ProductionLog](ctx, s.guard, s.logs, userID, logID, ErrLogNotFound)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := shared.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	if req.ProductID != nil {
		entry.ProductID = *req.ProductID
	}
	if req.ProductName != nil {
		entry.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.Quantity != nil {
		if err := entry.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Punches != nil {
		if err := entry.SetPunches(req.Punches); err != nil {
			return nil, err
		}
	}
	if req.Remarks != nil {
		entry.Remarks = *req.Remarks
	}
	entry.Touch()

	if err := s.logs.Save(ctx, entry); err != nil {
		return nil, err
	}
	resp := ToLogResponse(entry)
	return &resp, nil
}

// Delete removes a production log
func (s *ProductionService) Delete(ctx context.Context, userID, logID uuid.UUID) error {
	return factoryapp.DeleteOwned[production.ProductionLog](ctx, s.guard, s.logs, userID, logID, ErrLogNotFound)
}

func (s *ProductionService) productName(ctx context.Context, factoryID, productID uuid.UUID) (string, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.ErrInvalidInput.WithMessage("Unknown product_id")
		}
		return "", err
	}
	if product.FactoryID != factoryID {
		return "", shared.ErrInvalidInput.WithMessage("Unknown product_id")
	}
	return product.Name, nil
}
