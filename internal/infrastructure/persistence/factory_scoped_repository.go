package persistence

import (
	"context"
	"errors"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	orderByDate    = "date DESC, created_at DESC"
	orderByName    = "name ASC"
	orderByCreated = "created_at DESC"
)

// gormFactoryRepository implements shared.FactoryRepository for any record
// stored with a factory_id column. dateColumn is empty for undated records.
type gormFactoryRepository[T any] struct {
	db         *gorm.DB
	dateColumn string
	orderBy    string
}

func newGormFactoryRepository[T any](db *gorm.DB, dateColumn, orderBy string) gormFactoryRepository[T] {
	return gormFactoryRepository[T]{db: db, dateColumn: dateColumn, orderBy: orderBy}
}

// FindByID finds a record by its ID
func (r *gormFactoryRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindByFactory lists a factory's records, newest first, within the filter
func (r *gormFactoryRepository[T]) FindByFactory(ctx context.Context, factoryID uuid.UUID, filter shared.ListFilter) ([]T, error) {
	query := r.db.WithContext(ctx).Where("factory_id = ?", factoryID)
	if r.dateColumn != "" {
		if filter.From != nil {
			query = query.Where(r.dateColumn+" >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where(r.dateColumn+" <= ?", *filter.To)
		}
	}

	var entities []T
	if err := query.Order(r.orderBy).Limit(filter.EffectiveLimit()).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save creates or updates a record
func (r *gormFactoryRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete removes a record by ID
func (r *gormFactoryRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
