package factory

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateFactoryRequest represents a request to create the caller's factory
type CreateFactoryRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Location      string `json:"location" binding:"required,min=1,max=255"`
	OwnerName     string `json:"owner_name" binding:"max=200"`
	ContactNumber string `json:"contact_number" binding:"max=50"`
}

// UpdateFactoryRequest represents a partial factory update
type UpdateFactoryRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=200"`
	Location           *string `json:"location" binding:"omitempty,min=1,max=255"`
	OwnerName          *string `json:"owner_name" binding:"omitempty,max=200"`
	ContactNumber      *string `json:"contact_number" binding:"omitempty,max=50"`
	SubscriptionStatus *string `json:"subscription_status" binding:"omitempty,oneof=trial active expired lifetime"`
	PlanType           *string `json:"plan_type" binding:"omitempty,oneof=monthly yearly lifetime"`
	PlanExpiryDate     *string `json:"plan_expiry_date"`
}

// FactoryResponse represents a factory in API responses
type FactoryResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	OwnerName          string     `json:"owner_name"`
	ContactNumber      string     `json:"contact_number"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	PlanExpiryDate     *time.Time `json:"plan_expiry_date"`
	PlanType           *string    `json:"plan_type"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// SubscriptionResponse is the derived subscription state of a factory
type SubscriptionResponse struct {
	FactoryID        uuid.UUID  `json:"factory_id"`
	Status           string     `json:"status"`
	PlanType         *string    `json:"plan_type"`
	TrialEndsAt      *time.Time `json:"trial_ends_at"`
	PlanExpiryDate   *time.Time `json:"plan_expiry_date"`
	DaysRemaining    int        `json:"days_remaining"`
	IsActive         bool       `json:"is_active"`
	IsTrialExpired   bool       `json:"is_trial_expired"`
	IsPlanLapsed     bool       `json:"is_plan_lapsed"`
	CanPerformAction bool       `json:"can_perform_action"`
}

// ToFactoryResponse converts a domain factory to a response DTO
func ToFactoryResponse(f *factory.Factory) FactoryResponse {
	return FactoryResponse{
		ID:                 f.ID,
		Name:               f.Name,
		Location:           f.Location,
		OwnerID:            f.OwnerID,
		OwnerName:          f.OwnerName,
		ContactNumber:      f.ContactNumber,
		SubscriptionStatus: string(f.SubscriptionStatus),
		TrialEndsAt:        f.TrialEndsAt,
		PlanExpiryDate:     f.PlanExpiryDate,
		PlanType:           planString(f.PlanType),
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

// ToSubscriptionResponse derives the subscription of f at now
func ToSubscriptionResponse(f *factory.Factory, now time.Time) SubscriptionResponse {
	sub := f.Subscription(now)
	return SubscriptionResponse{
		FactoryID:        f.ID,
		Status:           string(sub.Status),
		PlanType:         planString(sub.PlanType),
		TrialEndsAt:      sub.TrialEndsAt,
		PlanExpiryDate:   sub.PlanExpiryDate,
		DaysRemaining:    sub.DaysRemaining,
		IsActive:         sub.IsActive,
		IsTrialExpired:   sub.IsTrialExpired,
		IsPlanLapsed:     sub.IsPlanLapsed,
		CanPerformAction: sub.CanPerformAction,
	}
}

func planString(p *factory.PlanType) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// ListQuery is the optional date range of a factory-scoped listing
type ListQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,calendar_date"`
	EndDate   string `form:"end_date" binding:"omitempty,calendar_date"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Filter parses the query into a repository filter
func (q ListQuery) Filter() (shared.ListFilter, error) {
	filter := shared.ListFilter{Limit: q.Limit}
	if q.StartDate != "" {
		from, err := shared.ParseDate(q.StartDate)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if q.EndDate != "" {
		to, err := shared.ParseDate(q.EndDate)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, shared.ErrInvalidInput.WithMessage("end_date must not be before start_date")
	}
	return filter, nil
}
