package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

type fakeDenylist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeDenylist) Revoke(_ context.Context, id string, _ time.Duration) error {
	f.revoked[id] = true
	return nil
}

func (f *fakeDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	return f.revoked[id], f.err
}

func TestTokenValidator(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair("u-1", "a@b.c", "admin")
	require.NoError(t, err)
	ctx := context.Background()

	deny := &fakeDenylist{revoked: map[string]bool{}}
	validate := NewTokenValidator(m, deny)

	claims, err := validate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	require.NotEmpty(t, claims.TokenID)

	require.NoError(t, deny.Revoke(ctx, claims.TokenID, time.Minute))
	_, err = validate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = validate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenValidator_DenylistFailure(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair("u-1", "a@b.c", "customer")
	require.NoError(t, err)

	validate := NewTokenValidator(m, &fakeDenylist{err: errors.New("redis down")})
	_, err = validate(context.Background(), pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenValidator_NilDenylist(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair("u-1", "a@b.c", "customer")
	require.NoError(t, err)

	_, err = NewTokenValidator(m, nil)(context.Background(), pair.AccessToken)
	assert.NoError(t, err)
}
