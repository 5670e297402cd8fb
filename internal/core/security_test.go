// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	require.NotContains(t, hash, "correct-horse-battery")

	valid, rehash, err := VerifyPasswordWithRehash(
		"correct-horse-battery", hash,
	)
	require.NoError(t, err)
	require.True(t, valid)
	require.Empty(t, rehash, "a fresh hash never needs an upgrade")

	valid, _, err = VerifyPasswordWithRehash("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestStaleParametersTriggerRehash(t *testing.T) {
	stale := currentArgonParams
	stale.time = currentArgonParams.time + 1

	hash, err := hashPasswordWith(stale, "correct-horse-battery")
	require.NoError(t, err)

	valid, rehash, err := VerifyPasswordWithRehash(
		"correct-horse-battery", hash,
	)
	require.NoError(t, err)
	require.True(t, valid)
	require.NotEmpty(t, rehash, "stale cost parameters get upgraded")

	valid, again, err := VerifyPasswordWithRehash(
		"correct-horse-battery", rehash,
	)
	require.NoError(t, err)
	require.True(t, valid)
	require.Empty(t, again)
}

func TestVerifyPasswordTimingSafeNilHash(t *testing.T) {
	// The nil path burns a decoy verification so unknown accounts
	// cost the same as known ones.
	valid, rehash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	require.False(t, valid)
	require.Empty(t, rehash)
}

func TestVerifyPasswordTimingSafeMatch(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	valid, rehash, err := VerifyPasswordTimingSafe(
		"correct-horse-battery", &hash,
	)
	require.NoError(t, err)
	require.True(t, valid)
	require.Empty(t, rehash)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, _, err := VerifyPasswordWithRehash("password", "not-an-argon2-hash")
	require.Error(t, err)
}

func TestTokenHashing(t *testing.T) {
	token, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)

	hash := HashToken(token)
	require.NotEqual(t, token, hash)
	require.Equal(t, hash, HashToken(token))

	require.True(t, CompareTokenHash(token, hash))
	require.False(t, CompareTokenHash(other, hash))
}
