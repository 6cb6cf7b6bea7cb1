package factory

import (
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status is the stored subscription status of a factory
type Status string

const (
	StatusTrial    Status = "trial"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusLifetime Status = "lifetime"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusExpired, StatusLifetime:
		return true
	}
	return false
}

// PlanType is the billing period of a paid plan
type PlanType string

const (
	PlanMonthly  PlanType = "monthly"
	PlanYearly   PlanType = "yearly"
	PlanLifetime PlanType = "lifetime"
)

// Factory is a brick factory owned by exactly one user. It carries the
// subscription state that gates writes to every record it owns.
type Factory struct {
	shared.BaseEntity
	Name               string     `gorm:"type:varchar(200);not null"`
	Location           string     `gorm:"type:varchar(255);not null"`
	OwnerID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	OwnerName          string     `gorm:"type:varchar(200)"`
	ContactNumber      string     `gorm:"type:varchar(50)"`
	SubscriptionStatus Status     `gorm:"type:varchar(20);not null;default:'trial';index"`
	TrialEndsAt        *time.Time `gorm:"index"`
	PlanExpiryDate     *time.Time `gorm:"index"`
	PlanType           *PlanType  `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Factory) TableName() string {
	return "factories"
}

// NewTrialFactory creates a factory whose trial ends trialDays from now
func NewTrialFactory(ownerID uuid.UUID, name, location string, trialDays int, now time.Time) (*Factory, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(location) == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Factory location cannot be empty")
	}
	if trialDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TRIAL_DAYS", "Trial days must be positive")
	}
	trialEnds := now.UTC().AddDate(0, 0, trialDays)
	return &Factory{
		BaseEntity:         shared.NewBaseEntity(),
		Name:               strings.TrimSpace(name),
		Location:           strings.TrimSpace(location),
		OwnerID:            ownerID,
		SubscriptionStatus: StatusTrial,
		TrialEndsAt:        &trialEnds,
	}, nil
}

// IsOwnedBy reports whether userID owns the factory
func (f *Factory) IsOwnedBy(userID uuid.UUID) bool {
	return f.OwnerID == userID
}

// Rename updates the factory name
func (f *Factory) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	f.Name = strings.TrimSpace(name)
	f.Touch()
	return nil
}

// ActivatePlan starts a paid plan of the given length from now
func (f *Factory) ActivatePlan(plan PlanType, days int, now time.Time) {
	expiry := now.UTC().AddDate(0, 0, days)
	f.SubscriptionStatus = StatusActive
	f.PlanType = &plan
	f.PlanExpiryDate = &expiry
	f.Touch()
}

// Subscription derives the subscription view at now
func (f *Factory) Subscription(now time.Time) Subscription {
	return Derive(f.SubscriptionStatus, f.TrialEndsAt, f.PlanExpiryDate, f.PlanType, now)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalidInput.WithMessage("Factory name cannot be empty")
	}
	if len(name) > 200 {
		return shared.ErrInvalidInput.WithMessage("Factory name cannot exceed 200 characters")
	}
	return nil
}
