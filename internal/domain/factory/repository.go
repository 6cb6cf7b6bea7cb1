package factory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists factories
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Factory, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Factory, error)
	FindByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]Factory, error)
	ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
	Save(ctx context.Context, f *Factory) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExpireLapsed marks trials and paid plans that ended before now as expired
	// and returns how many rows changed.
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
	// GrantLifetimeToTrials converts trial factories (including rows with an
	// empty status) to lifetime plans and returns how many rows changed.
	GrantLifetimeToTrials(ctx context.Context) (int64, error)
}
