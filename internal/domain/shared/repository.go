package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxListSize caps every factory-scoped listing
const MaxListSize = 1000

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ListFilter narrows a factory-scoped listing. From and To are inclusive
// calendar dates and only apply to records that carry a date.
type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// EffectiveLimit returns the limit clamped to MaxListSize
func (f ListFilter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > MaxListSize {
		return MaxListSize
	}
	return f.Limit
}

// FactoryRepository is the CRUD contract shared by factory-scoped records
type FactoryRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByFactory(ctx context.Context, factoryID uuid.UUID, filter ListFilter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidInput.WithMessage("Invalid date, expected YYYY-MM-DD: " + s)
	}
	return t, nil
}

// Today returns the current UTC calendar date at midnight
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
