package factory

import (
	"context"
	"errors"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Guard enforces that only a factory's owner touches its records
type Guard struct {
	factories factory.Repository
}

// NewGuard creates a new ownership guard
func NewGuard(factories factory.Repository) *Guard {
	return &Guard{factories: factories}
}

// Authorize returns the factory when userID owns it. A missing factory is
// reported the same way as someone else's.
func (g *Guard) Authorize(ctx context.Context, userID, factoryID uuid.UUID) (*factory.Factory, error) {
	f, err := g.factories.FindByID(ctx, factoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrForbidden
		}
		return nil, err
	}
	if !f.IsOwnedBy(userID) {
		return nil, shared.ErrForbidden
	}
	return f, nil
}

// Finder loads a record by id
type Finder[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
}

// LoadOwned loads a factory-scoped record and checks the caller owns its
// factory. A missing record yields notFound.
func LoadOwned[T any, P interface {
	*T
	GetFactoryID() uuid.UUID
}](ctx context.Context, g *Guard, repo Finder[T], userID, id uuid.UUID, notFound error) (*T, error) {
	record, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if _, err := g.Authorize(ctx, userID, P(record).GetFactoryID()); err != nil {
		return nil, err
	}
	return record, nil
}

// Lister lists a factory's records
type Lister[T any] interface {
	FindByFactory(ctx context.Context, factoryID uuid.UUID, filter shared.ListFilter) ([]T, error)
}

// ListOwned authorizes the caller and lists the factory's records
func ListOwned[T any](ctx context.Context, g *Guard, repo Lister[T], userID, factoryID uuid.UUID, query ListQuery) ([]T, error) {
	if _, err := g.Authorize(ctx, userID, factoryID); err != nil {
		return nil, err
	}
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}
	return repo.FindByFactory(ctx, factoryID, filter)
}

// DeleteOwned removes a factory-scoped record after the ownership check
func DeleteOwned[T any, P interface {
	*T
	GetFactoryID() uuid.UUID
}](ctx context.Context, g *Guard, repo shared.FactoryRepository[T], userID, id uuid.UUID, notFound error) error {
	if _, err := LoadOwned[T, P](ctx, g, repo, userID, id, notFound); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return notFound
		}
		return err
	}
	return nil
}
