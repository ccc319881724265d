package auth

import (
	"context"
	"fmt"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
)

// NewTokenValidator returns a middleware.TokenValidator that accepts access
// tokens issued by m whose ID is not on the denylist. denylist may be nil.
func NewTokenValidator(m *JWTManager, denylist repository.TokenDenylist) middleware.TokenValidator {
	return func(ctx context.Context, token string) (*middleware.Claims, error) {
		claims, err := m.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.IsRevoked(ctx, claims.ID)
			if err != nil {
				return nil, fmt.Errorf("check token revocation: %w", err)
			}
			if revoked {
				return nil, apperrors.Unauthorized("token has been revoked")
			}
		}
		return claims.ToMiddleware(), nil
	}
}

// ToMiddleware converts the JWT claims to request-context claims.
func (c *Claims) ToMiddleware() *middleware.Claims {
	return &middleware.Claims{
		UserID:  c.UserID,
		Email:   c.Email,
		Role:    c.Role,
		TokenID: c.ID,
	}
}
