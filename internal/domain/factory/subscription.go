package factory

import (
	"time"
)

// LifetimeDays is reported as days remaining for lifetime plans
const LifetimeDays = 99999

// Subscription is the derived access state of a factory at an instant
type Subscription struct {
	Status           Status
	PlanType         *PlanType
	TrialEndsAt      *time.Time
	PlanExpiryDate   *time.Time
	DaysRemaining    int
	IsActive         bool
	IsTrialExpired   bool
	IsPlanLapsed     bool
	CanPerformAction bool
}

// Derive computes the subscription state from the stored fields.
//
// A paid plan is active while its expiry lies in the future. A trial is
// expired once trial_ends_at has passed. A paid plan whose expiry has passed,
// or a factory explicitly marked expired, is lapsed. Writes are allowed while
// the plan is active, or while the factory is neither in an expired trial nor
// lapsed.
func Derive(status Status, trialEndsAt, planExpiry *time.Time, planType *PlanType, now time.Time) Subscription {
	if status == StatusLifetime {
		lifetime := PlanLifetime
		return Subscription{
			Status:           StatusLifetime,
			PlanType:         &lifetime,
			DaysRemaining:    LifetimeDays,
			IsActive:         true,
			CanPerformAction: true,
		}
	}
	if status == "" {
		status = StatusTrial
	}

	s := Subscription{
		Status:         status,
		PlanType:       planType,
		TrialEndsAt:    trialEndsAt,
		PlanExpiryDate: planExpiry,
	}

	s.IsActive = status == StatusActive && planExpiry != nil && planExpiry.After(now)
	// A swept trial keeps reporting as an expired trial until a plan is bought.
	trialPhase := status == StatusTrial || (status == StatusExpired && planType == nil)
	s.IsTrialExpired = trialPhase && trialEndsAt != nil && trialEndsAt.Before(now)
	s.IsPlanLapsed = (status == StatusActive && !s.IsActive) || status == StatusExpired

	switch {
	case s.IsActive:
		s.DaysRemaining = wholeDays(planExpiry.Sub(now))
	case !s.IsTrialExpired && trialEndsAt != nil:
		s.DaysRemaining = wholeDays(trialEndsAt.Sub(now))
	}

	s.CanPerformAction = s.IsActive || (!s.IsTrialExpired && !s.IsPlanLapsed)
	return s
}

// wholeDays truncates d to whole days, never below zero
func wholeDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
