package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// Touch bumps UpdatedAt
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FactoryOwned is implemented by every record that belongs to a factory
type FactoryOwned interface {
	Entity
	GetFactoryID() uuid.UUID
}

// FactoryEntity is the base for records scoped to a single factory
type FactoryEntity struct {
	BaseEntity
	FactoryID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// GetFactoryID returns the owning factory
func (e *FactoryEntity) GetFactoryID() uuid.UUID {
	return e.FactoryID
}

// NewFactoryEntity creates a factory-scoped base entity
func NewFactoryEntity(factoryID uuid.UUID) FactoryEntity {
	return FactoryEntity{
		BaseEntity: NewBaseEntity(),
		FactoryID:  factoryID,
	}
}
