package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFactoryRepository implements factory.Repository using GORM
type GormFactoryRepository struct {
	db *gorm.DB
}

// NewGormFactoryRepository creates a new GormFactoryRepository
func NewGormFactoryRepository(db *gorm.DB) *GormFactoryRepository {
	return &GormFactoryRepository{db: db}
}

// FindByID finds a factory by ID
func (r *GormFactoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*factory.Factory, error) {
	var f factory.Factory
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindByOwner finds the factory owned by a user
func (r *GormFactoryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*factory.Factory, error) {
	var f factory.Factory
	if err := r.db.WithContext(ctx).First(&f, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindByOwners returns the factories owned by any of the users
func (r *GormFactoryRepository) FindByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]factory.Factory, error) {
	if len(ownerIDs) == 0 {
		return []factory.Factory{}, nil
	}
	var factories []factory.Factory
	if err := r.db.WithContext(ctx).Where("owner_id IN ?", ownerIDs).Find(&factories).Error; err != nil {
		return nil, err
	}
	return factories, nil
}

// ExistsByOwner checks if the user already owns a factory
func (r *GormFactoryRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&factory.Factory{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a factory
func (r *GormFactoryRepository) Save(ctx context.Context, f *factory.Factory) error {
	return r.db.WithContext(ctx).Save(f).Error
}

// Delete removes a factory by ID
func (r *GormFactoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&factory.Factory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExpireLapsed marks ended trials and paid plans as expired
func (r *GormFactoryRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&factory.Factory{}).
		Where("(subscription_status = ? AND trial_ends_at < ?) OR (subscription_status = ? AND (plan_expiry_date IS NULL OR plan_expiry_date <= ?))",
			factory.StatusTrial, now, factory.StatusActive, now).
		Updates(map[string]any{
			"subscription_status": factory.StatusExpired,
			"updated_at":          now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GrantLifetimeToTrials converts trial factories, including rows without a
// status, to lifetime plans
func (r *GormFactoryRepository) GrantLifetimeToTrials(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&factory.Factory{}).
		Where("subscription_status = ? OR subscription_status IS NULL OR subscription_status = ''", factory.StatusTrial).
		Updates(map[string]any{
			"subscription_status": factory.StatusLifetime,
			"plan_type":           factory.PlanLifetime,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ factory.Repository = (*GormFactoryRepository)(nil)
