package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

// RecentlyViewedService tracks the products a visitor looked at.
type RecentlyViewedService struct {
	store  repository.RecentlyViewedStore
	logger *slog.Logger
	now    func() time.Time
}

// NewRecentlyViewedService creates a new recently-viewed service.
func NewRecentlyViewedService(store repository.RecentlyViewedStore, logger *slog.Logger) *RecentlyViewedService {
	return &RecentlyViewedService{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record puts p at the front of the visitor's list.
func (s *RecentlyViewedService) Record(ctx context.Context, visitorID string, p *domain.Product) error {
	if visitorID == "" {
		return apperrors.InvalidInput("visitor id is required")
	}

	list, err := s.store.Load(ctx, visitorID)
	if err != nil {
		return fmt.Errorf("load recently viewed: %w", err)
	}
	list = domain.PushRecentlyViewed(list, domain.SnapshotForRecentlyViewed(p, s.now()))
	if err := s.store.Save(ctx, visitorID, list); err != nil {
		return fmt.Errorf("save recently viewed: %w", err)
	}
	return nil
}

// List returns the visitor's products, newest first. Storage failures are
// logged and reported as an empty list.
func (s *RecentlyViewedService) List(ctx context.Context, visitorID string) []domain.RecentlyViewedProduct {
	if visitorID == "" {
		return []domain.RecentlyViewedProduct{}
	}
	list, err := s.store.Load(ctx, visitorID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load recently viewed products",
			slog.String("visitor_id", visitorID),
			slog.String("error", err.Error()),
		)
		return []domain.RecentlyViewedProduct{}
	}
	if list == nil {
		list = []domain.RecentlyViewedProduct{}
	}
	return list
}

// Clear empties the visitor's list.
func (s *RecentlyViewedService) Clear(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return nil
	}
	if err := s.store.Clear(ctx, visitorID); err != nil {
		return fmt.Errorf("clear recently viewed: %w", err)
	}
	return nil
}
