package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// User is an account that can own a factory
type User struct {
	shared.BaseEntity
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	LastActiveAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a normalized email and a hashed password
func NewUser(email, password string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      normalized,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.ErrInvalidInput.WithMessage("Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// MarkActive records activity at the given instant
func (u *User) MarkActive(at time.Time) {
	at = at.UTC()
	u.LastActiveAt = &at
}

// NormalizeEmail trims, lowercases and validates an email address
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", shared.ErrInvalidInput.WithMessage("Invalid email address")
	}
	return e, nil
}
