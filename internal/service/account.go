package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
)

// AccountService implements the profile and wishlist pages.
type AccountService struct {
	profiles repository.ProfileRepository
	wishlist repository.WishlistRepository
	logger   *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(profiles repository.ProfileRepository, wishlist repository.WishlistRepository, logger *slog.Logger) *AccountService {
	return &AccountService{profiles: profiles, wishlist: wishlist, logger: logger}
}

// Profile returns the user's profile.
func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies the non-nil fields of upd. An empty string clears a
// field.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	upd.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated", slog.String("user_id", userID))
	return p, nil
}

// Wishlist returns the user's saved products, newest first.
func (s *AccountService) Wishlist(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := s.wishlist.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return items, nil
}

// AddToWishlist saves a product. Saving it twice is not an error.
func (s *AccountService) AddToWishlist(ctx context.Context, userID, productID string) error {
	if err := s.wishlist.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

// RemoveFromWishlist removes a saved product.
func (s *AccountService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	if err := s.wishlist.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}
