// Package admin serves the PIN-gated operator console.
package admin

import (
	"context"
	"crypto/subtle"
	"math"
	"sort"
	"time"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/identity"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidPIN is returned for a wrong admin PIN
var ErrInvalidPIN = shared.ErrUnauthorized.WithMessage("Invalid admin PIN")

// Subscription labels shown in the console
const (
	LabelFree     = "Free"
	LabelTrial    = "Trial"
	LabelPremium  = "Premium"
	LabelLifetime = "Lifetime"
	LabelExpired  = "Expired"
)

// VerifyPINRequest carries the PIN typed into the console
type VerifyPINRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// VerifyPINResponse reports a successful PIN check
type VerifyPINResponse struct {
	Valid bool `json:"valid"`
}

// UserRow is one user in the console listing
type UserRow struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	OwnerName          string     `json:"owner_name"`
	Location           string     `json:"location"`
	FactoryName        string     `json:"factory_name"`
	PhoneNumber        string     `json:"phone_number"`
	SubscriptionStatus string     `json:"subscription_status"`
	DaysLeft           *int       `json:"days_left"`
	LastActiveAt       *time.Time `json:"last_active_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

// AdminService lists accounts for the operator
type AdminService struct {
	users     identity.UserRepository
	factories factory.Repository
	pin       string
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(users identity.UserRepository, factories factory.Repository, pin string, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:     users,
		factories: factories,
		pin:       pin,
		logger:    logger,
		now:       time.Now,
	}
}

// VerifyPIN checks pin against the configured one in constant time
func (s *AdminService) VerifyPIN(ctx context.Context, pin string) (*VerifyPINResponse, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		logger.L(ctx).Warn("Admin PIN rejected")
		return nil, ErrInvalidPIN
	}
	return &VerifyPINResponse{Valid: true}, nil
}

// ListUsers returns every user with their factory and subscription label,
// most recently active first
func (s *AdminService) ListUsers(ctx context.Context, pin string) ([]UserRow, error) {
	if _, err := s.VerifyPIN(ctx, pin); err != nil {
		return nil, err
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	factories, err := s.factories.FindByOwners(ctx, ids)
	if err != nil {
		return nil, err
	}
	byOwner := make(map[uuid.UUID]*factory.Factory, len(factories))
	for i := range factories {
		byOwner[factories[i].OwnerID] = &factories[i]
	}

	now := s.now()
	rows := make([]UserRow, 0, len(users))
	for i := range users {
		u := &users[i]
		row := UserRow{
			ID:           u.ID,
			Email:        u.Email,
			LastActiveAt: u.LastActiveAt,
			CreatedAt:    u.CreatedAt,
		}
		if f, ok := byOwner[u.ID]; ok {
			row.OwnerName = f.OwnerName
			row.Location = f.Location
			row.FactoryName = f.Name
			row.PhoneNumber = f.ContactNumber
		}
		row.SubscriptionStatus, row.DaysLeft = Label(byOwner[u.ID], now)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].LastActiveAt, rows[j].LastActiveAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	s.logger.Info("Admin listed users", zap.Int("count", len(rows)))
	return rows, nil
}

// Label classifies a factory's subscription for the console. A nil factory
// or an unrecognised status is a free account.
func Label(f *factory.Factory, now time.Time) (string, *int) {
	if f == nil {
		return LabelFree, nil
	}
	switch f.SubscriptionStatus {
	case factory.StatusLifetime:
		return LabelLifetime, nil
	case factory.StatusExpired:
		return LabelExpired, intPtr(0)
	case factory.StatusActive:
		return countdown(LabelPremium, f.PlanExpiryDate, now)
	case factory.StatusTrial:
		return countdown(LabelTrial, f.TrialEndsAt, now)
	default:
		return LabelFree, nil
	}
}

func countdown(label string, end *time.Time, now time.Time) (string, *int) {
	if end == nil {
		return label, nil
	}
	days := int(math.Floor(end.Sub(now).Hours() / 24))
	if days < 0 {
		return LabelExpired, intPtr(0)
	}
	return label, intPtr(days)
}

func intPtr(v int) *int {
	return &v
}
