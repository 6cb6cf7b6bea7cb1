package factory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrFactoryNotFound is returned when the caller has no such factory
	ErrFactoryNotFound = shared.ErrNotFound.WithMessage("Factory not found")
	// ErrFactoryExists is returned when the caller already owns a factory
	ErrFactoryExists = shared.ErrInvalidInput.WithMessage("User already has a factory")
)

// FactoryService manages the caller's factory and its subscription state
type FactoryService struct {
	factories factory.Repository
	trialDays int
	logger    *zap.Logger
	now       func() time.Time
}

// NewFactoryService creates a new factory service
func NewFactoryService(factories factory.Repository, trialDays int, logger *zap.Logger) *FactoryService {
	return &FactoryService{
		factories: factories,
		trialDays: trialDays,
		logger:    logger,
		now:       time.Now,
	}
}

// Create starts a trial factory for a user who has none
func (s *FactoryService) Create(ctx context.Context, userID uuid.UUID, req CreateFactoryRequest) (*FactoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "factory", "create")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	exists, err := s.factories.ExistsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		err = ErrFactoryExists
		return nil, err
	}

	f, err := factory.NewTrialFactory(userID, req.Name, req.Location, s.trialDays, s.now())
	if err != nil {
		return nil, err
	}
	f.OwnerName = strings.TrimSpace(req.OwnerName)
	f.ContactNumber = strings.TrimSpace(req.ContactNumber)

	if err = s.factories.Save(ctx, f); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Factory created",
		zap.String("factory_id", f.ID.String()),
		zap.Timep("trial_ends_at", f.TrialEndsAt),
	)
	resp := ToFactoryResponse(f)
	return &resp, nil
}

// ListMine returns the caller's factories, zero or one
func (s *FactoryService) ListMine(ctx context.Context, userID uuid.UUID) ([]FactoryResponse, error) {
	f, err := s.factories.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []FactoryResponse{}, nil
		}
		return nil, err
	}
	return []FactoryResponse{ToFactoryResponse(f)}, nil
}

// Get returns one of the caller's factories
func (s *FactoryService) Get(ctx context.Context, userID, factoryID uuid.UUID) (*FactoryResponse, error) {
	f, err := s.owned(ctx, userID, factoryID)
	if err != nil {
		return nil, err
	}
	resp := ToFactoryResponse(f)
	return &resp, nil
}

// Update applies a partial update to one of the caller's factories
func (s *FactoryService) Update(ctx context.Context, userID, factoryID uuid.UUID, req UpdateFactoryRequest) (*FactoryResponse, error) {
	f, err := s.owned(ctx, userID, factoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := f.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc == "" {
			return nil, shared.ErrInvalidInput.WithMessage("Factory location cannot be empty")
		}
		f.Location = loc
	}
	if req.OwnerName != nil {
		f.OwnerName = strings.TrimSpace(*req.OwnerName)
	}
	if req.ContactNumber != nil {
		f.ContactNumber = strings.TrimSpace(*req.ContactNumber)
	}
	if req.SubscriptionStatus != nil {
		status := factory.Status(*req.SubscriptionStatus)
		if !status.IsValid() {
			return nil, shared.ErrInvalidInput.WithMessage("Invalid subscription_status")
		}
		f.SubscriptionStatus = status
	}
	if req.PlanType != nil {
		plan := factory.PlanType(*req.PlanType)
		f.PlanType = &plan
	}
	if req.PlanExpiryDate != nil {
		expiry, err := parseInstant(*req.PlanExpiryDate)
		if err != nil {
			return nil, err
		}
		f.PlanExpiryDate = &expiry
	}
	f.Touch()

	if err := s.factories.Save(ctx, f); err != nil {
		return nil, err
	}
	resp := ToFactoryResponse(f)
	return &resp, nil
}

// Delete removes one of the caller's factories
func (s *FactoryService) Delete(ctx context.Context, userID, factoryID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, factoryID); err != nil {
		return err
	}
	if err := s.factories.Delete(ctx, factoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrFactoryNotFound
		}
		return err
	}
	logger.L(ctx).Info("Factory deleted", zap.String("factory_id", factoryID.String()))
	return nil
}

// CanPerformAction reports whether the caller's factory accepts writes. A
// user without a factory passes; ownership checks reject them later.
func (s *FactoryService) CanPerformAction(ctx context.Context, userID uuid.UUID) (bool, error) {
	f, err := s.factories.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return f.Subscription(s.now()).CanPerformAction, nil
}

func (s *FactoryService) owned(ctx context.Context, userID, factoryID uuid.UUID) (*factory.Factory, error) {
	f, err := s.factories.FindByID(ctx, factoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrFactoryNotFound
		}
		return nil, err
	}
	if !f.IsOwnedBy(userID) {
		return nil, ErrFactoryNotFound
	}
	return f, nil
}

// parseInstant accepts RFC 3339 timestamps or plain dates
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return shared.ParseDate(s)
}
