package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", 60)

	raw, err := tokens.Issue("wanjiru")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	subject, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "wanjiru", subject)
}

func TestTokens_WrongSecretRejected(t *testing.T) {
	issuer := NewTokens("secret-a", 60)
	verifier := NewTokens("secret-b", 60)

	raw, err := issuer.Issue("wanjiru")
	require.NoError(t, err)

	_, err = verifier.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_ExpiredRejected(t *testing.T) {
	tokens := NewTokens("test-secret", -1)

	raw, err := tokens.Issue("wanjiru")
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_GarbageRejected(t *testing.T) {
	tokens := NewTokens("test-secret", 60)
	_, err := tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("cdf2025")
	require.NoError(t, err)
	require.NotEqual(t, "cdf2025", hash)

	assert.True(t, CheckPassword("cdf2025", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("cdf2025", "not-a-hash"))
}
