package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
}
