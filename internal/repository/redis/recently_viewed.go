package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
)

const recentlyViewedPrefix = "recently_viewed:"

// RecentlyViewedStore implements repository.RecentlyViewedStore. Each
// visitor's list is one JSON array under recently_viewed:<visitorID>.
type RecentlyViewedStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRecentlyViewedStore creates a Redis-backed recently viewed store. Every
// save refreshes the key's ttl.
func NewRecentlyViewedStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RecentlyViewedStore {
	return &RecentlyViewedStore{client: client, ttl: ttl, logger: logger}
}

func recentlyViewedKey(visitorID string) string {
	return recentlyViewedPrefix + visitorID
}

// Load returns the visitor's list. A missing key is an empty list; so is a
// corrupt value, which is also deleted.
func (s *RecentlyViewedStore) Load(ctx context.Context, visitorID string) ([]domain.RecentlyViewedProduct, error) {
	key := recentlyViewedKey(visitorID)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.RecentlyViewedProduct{}, nil
		}
		return nil, fmt.Errorf("redis get recently viewed: %w", err)
	}

	var list []domain.RecentlyViewedProduct
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt recently viewed list",
			slog.String("visitor_id", visitorID),
			slog.String("error", err.Error()),
		)
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete corrupt recently viewed list",
				slog.String("visitor_id", visitorID),
				slog.String("error", delErr.Error()),
			)
		}
		return []domain.RecentlyViewedProduct{}, nil
	}
	if list == nil {
		list = []domain.RecentlyViewedProduct{}
	}
	return list, nil
}

// Save replaces the visitor's list.
func (s *RecentlyViewedStore) Save(ctx context.Context, visitorID string, list []domain.RecentlyViewedProduct) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal recently viewed: %w", err)
	}
	if err := s.client.Set(ctx, recentlyViewedKey(visitorID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set recently viewed: %w", err)
	}
	return nil
}

// Clear deletes the visitor's list.
func (s *RecentlyViewedStore) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, recentlyViewedKey(visitorID)).Err(); err != nil {
		return fmt.Errorf("redis del recently viewed: %w", err)
	}
	return nil
}
