package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/auth"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/event"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// SignUpInput holds the parameters for creating an account.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// AuthService implements sign-up, sign-in, sign-out and token refresh.
type AuthService struct {
	users      repository.UserRepository
	denylist   repository.TokenDenylist
	jwt        *auth.JWTManager
	producer   *event.Producer
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users repository.UserRepository,
	denylist repository.TokenDenylist,
	jwt *auth.JWTManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		denylist:   denylist,
		jwt:        jwt,
		producer:   producer,
		logger:     logger,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SignUp creates the account and its profile, then signs the user in.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, *auth.TokenPair, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, nil, apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &domain.Profile{UserID: user.ID, CreatedAt: now, UpdatedAt: now}
	if name := strings.TrimSpace(input.FullName); name != "" {
		profile.FullName = &name
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.jwt.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user signed up", slog.String("user_id", user.ID))
	return user, tokens, nil
}

// SignIn checks the credentials and issues a token pair.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, *auth.TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, apperrors.InvalidInput("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, nil, fmt.Errorf("get user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.Unauthorized("invalid email or password")
	}

	tokens, err := s.jwt.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed in", slog.String("user_id", user.ID))
	return user, tokens, nil
}

// SignOut revokes the access token and, when given, the refresh token until
// they would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return apperrors.Unauthorized("invalid or expired token")
	}
	if err := s.revoke(ctx, claims); err != nil {
		return err
	}

	if refreshToken != "" {
		if rc, err := s.jwt.ValidateRefreshToken(refreshToken); err == nil && rc.UserID == claims.UserID {
			if err := s.revoke(ctx, rc); err != nil {
				return err
			}
		}
	}

	s.logger.InfoContext(ctx, "user signed out", slog.String("user_id", claims.UserID))
	return nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is
// revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check refresh token: %w", err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("refresh token has been revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}

	tokens, err := s.jwt.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return tokens, nil
}

// User returns the account behind an authenticated request.
func (s *AuthService) User(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) revoke(ctx context.Context, claims *auth.Claims) error {
	if err := s.denylist.Revoke(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
