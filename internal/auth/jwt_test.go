package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret-with-enough-entropy-000", 15*time.Minute, 24*time.Hour)
}

func TestIssuePair_RoundTrip(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair("u-1", "asha@example.com", "customer")
	require.NoError(t, err)

	access, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", access.UserID)
	assert.Equal(t, "asha@example.com", access.Email)
	assert.Equal(t, "customer", access.Role)
	assert.NotEmpty(t, access.ID)

	refresh, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
}

func TestValidate_RejectsWrongType(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair("u-1", "a@b.c", "customer")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidate_RejectsExpired(t *testing.T) {
	m := newTestManager()
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	pair, err := m.IssuePair("u-1", "a@b.c", "customer")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = m.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestValidate_RejectsOtherSecret(t *testing.T) {
	pair, err := newTestManager().IssuePair("u-1", "a@b.c", "admin")
	require.NoError(t, err)

	other := NewJWTManager("a-different-secret-entirely-11111", time.Minute, time.Hour)
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u-1", TokenType: TokenTypeAccess})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestManager().ValidateAccessToken(s)
	assert.Error(t, err)
}

func TestClaims_RemainingTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute))}}
	assert.Equal(t, 5*time.Minute, c.RemainingTTL(now))
	assert.Zero(t, (&Claims{}).RemainingTTL(now))
}
