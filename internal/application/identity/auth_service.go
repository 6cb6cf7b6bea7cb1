package identity

import (
	"context"
	"errors"
	"time"

	"github.com/bricksflow/backend/internal/domain/identity"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/auth"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmailTaken is returned when registering an existing email
	ErrEmailTaken = shared.ErrInvalidInput.WithMessage("Email already registered")
	// ErrInvalidCredentials is returned for any failed login
	ErrInvalidCredentials = shared.ErrUnauthorized.WithMessage("Incorrect email or password")
	// ErrInvalidRefreshToken is returned when a refresh token cannot be rotated
	ErrInvalidRefreshToken = shared.ErrUnauthorized.WithMessage("Invalid refresh token")
	// ErrUserNotFound is returned when the token subject no longer exists
	ErrUserNotFound = shared.ErrNotFound.WithMessage("User not found")
)

// AuthService handles authentication operations
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
		now:        time.Now,
	}
}

// Register opens an account and signs the new user in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user, err := identity.NewUser(email, input.Password)
	if err != nil {
		return nil, err
	}
	user.MarkActive(s.now())
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	s.touch(ctx, user)
	return s.issue(user)
}

// Me returns the authenticated user and records the activity
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.touch(ctx, user)
	resp := ToUserResponse(user)
	return &resp, nil
}

// Refresh rotates a refresh token into a new token pair
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*TokenResponse, error) {
	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		logger.L(ctx).Warn("Refresh rejected", zap.Error(err))
		return nil, ErrInvalidRefreshToken
	}
	resp := toTokenResponse(pair)
	return &resp, nil
}

// Logout revokes the access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.ErrUnauthorized
	}
	ttl := claims.RemainingTTL(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		return err
	}
	logger.L(ctx).Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		TokenResponse: toTokenResponse(pair),
		User:          ToUserResponse(user),
	}, nil
}

// touch records activity; a failure here never fails the request
func (s *AuthService) touch(ctx context.Context, user *identity.User) {
	now := s.now()
	user.MarkActive(now)
	if err := s.users.TouchLastActive(ctx, user.ID, now); err != nil {
		logger.L(ctx).Warn("Failed to record user activity", zap.Error(err))
	}
}

func toTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}
