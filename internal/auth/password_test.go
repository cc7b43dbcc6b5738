package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Low cost keeps the test fast; the clamp guards production values.
	hash, err := HashPassword("Abcdef1!", 4)
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", hash)

	require.True(t, VerifyPassword(hash, "Abcdef1!"))
	require.False(t, VerifyPassword(hash, "Abcdef1?"))
	require.False(t, VerifyPassword(hash, ""))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	require.False(t, VerifyPassword("not-a-bcrypt-hash", "Abcdef1!"))
	require.False(t, VerifyPassword("", "Abcdef1!"))
}

func TestHashPasswordCostOutOfRange(t *testing.T) {
	hash, err := HashPassword("Abcdef1!", 99)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "Abcdef1!"))
}

func TestDistinctPasswordsDistinctHashes(t *testing.T) {
	h1, err := HashPassword("Abcdef1!", 4)
	require.NoError(t, err)
	h2, err := HashPassword("Ghijkl2?", 4)
	require.NoError(t, err)
	require.False(t, VerifyPassword(h2, "Abcdef1!"))
	require.False(t, VerifyPassword(h1, "Ghijkl2?"))
}
