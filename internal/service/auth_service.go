package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/config"
	"github.com/wakanda-gov/platform/internal/domain"
	"github.com/wakanda-gov/platform/internal/events"
	"github.com/wakanda-gov/platform/internal/repository"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

// TokenPair bundles the short-lived access token and the long-lived refresh
// token issued together on registration and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Email      string
	Username   string
	FirstName  string
	LastName   string
	Password   string
	Role       domain.Role
	Department string
	Phone      string
	Address    string
}

// AuthService coordinates registration and login flows on top of the
// credential hasher, token service and identity store.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret),
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
	}
}

// Register creates a new account. Email is checked before username; either
// duplicate, whether seen by the pre-check or by the store's own uniqueness
// constraint, answers Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, *TokenPair, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, nil, apperrors.NewConflict("User with this email already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, nil, apperrors.NewConflict("User with this username already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         role,
		Department:   in.Department,
		Phone:        in.Phone,
		Address:      in.Address,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, nil, apperrors.NewConflict("User with this email already exists", nil)
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, nil, apperrors.NewConflict("User with this username already exists", nil)
		}
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
	return user, pair, nil
}

// Login authenticates by email and password. Unknown email, inactive account
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, nil, err
	}
	if !user.Active || !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.NewUnauthorized("Invalid email or password")
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("record last login", zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{
		Email: user.Email,
		Role:  user.Role,
	})
	return user, pair, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	access, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.Issue(user.ID, user.Email, user.Role, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
