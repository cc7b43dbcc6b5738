package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wakanda-gov/platform/internal/domain"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, expiresAt, err := tm.Issue("user-1", "a@x.com", domain.RoleManager, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, domain.RoleManager, claims.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, _, err := tm.Issue("user-1", "a@x.com", domain.RoleUser, time.Minute)
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, _, err := tm.Issue("user-1", "a@x.com", domain.RoleUser, time.Hour)
	require.NoError(t, err)

	tampered := []byte(token)
	i := len(tampered) / 2
	if tampered[i] == 'a' {
		tampered[i] = 'b'
	} else {
		tampered[i] = 'a'
	}
	_, err = tm.Verify(string(tampered))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret")
	other := NewTokenManager("other-secret")

	token, _, err := tm.Issue("user-1", "a@x.com", domain.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(input)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
