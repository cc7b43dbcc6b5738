package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wakanda-gov/platform/internal/config"
	"github.com/wakanda-gov/platform/internal/domain"
	"github.com/wakanda-gov/platform/internal/events"
	"github.com/wakanda-gov/platform/internal/repository"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

func newAuthService() (*AuthService, repository.UserRepository) {
	repo := repository.NewMemoryUserRepository()
	cfg := config.AuthConfig{
		JWTSecret:            "test-secret",
		AccessTokenTTLHours:  168,
		RefreshTokenTTLHours: 720,
		BcryptCost:           4,
	}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	return NewAuthService(cfg, repo, dispatcher, zap.NewNop()), repo
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:     "a@x.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Okafor",
		Password:  "Abcdef1!",
	}
}

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de
}

func TestRegisterIssuesTokensAndStoresHash(t *testing.T) {
	svc, repo := newAuthService()

	user, tokens, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
	require.Equal(t, domain.RoleUser, user.Role)
	require.True(t, user.Active)

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", stored.PasswordHash)
	require.NotEmpty(t, stored.PasswordHash)

	claims, err := svc.TokenManager().Verify(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Username = "alice2"
	_, _, err = svc.Register(context.Background(), in)
	de := domainErr(t, err)
	require.Equal(t, 409, de.HTTPStatus)
	require.Equal(t, "User with this email already exists", de.Message)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Email = "b@x.com"
	_, _, err = svc.Register(context.Background(), in)
	de := domainErr(t, err)
	require.Equal(t, 409, de.HTTPStatus)
	require.Equal(t, "User with this username already exists", de.Message)
}

func TestRegisterHonorsRequestedRole(t *testing.T) {
	svc, _ := newAuthService()

	in := registerInput()
	in.Role = domain.RoleManager
	user, _, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, user.Role)
}

func TestLoginSuccessRecordsLastLogin(t *testing.T) {
	svc, repo := newAuthService()
	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	user, tokens, err := svc.Login(context.Background(), "a@x.com", "Abcdef1!")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotNil(t, user.LastLoginAt)

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, repo := newAuthService()
	user, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "a@x.com", "Wrong1!aa")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@x.com", "Abcdef1!")

	user.Active = false
	require.NoError(t, repo.Update(context.Background(), user))
	_, _, inactive := svc.Login(context.Background(), "a@x.com", "Abcdef1!")

	for _, err := range []error{wrongPassword, unknownEmail, inactive} {
		de := domainErr(t, err)
		require.Equal(t, 401, de.HTTPStatus)
		require.Equal(t, "Invalid email or password", de.Message)
	}
}
