package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/kafka"
)

// RatingRecomputer recomputes and stores a product's aggregate rating.
type RatingRecomputer interface {
	RecomputeRating(ctx context.Context, productID string) (float64, error)
}

// RatingRecomputeConsumer handles product.rating_recompute_requested events.
type RatingRecomputeConsumer struct {
	recomputer RatingRecomputer
	logger     *slog.Logger
}

// NewRatingRecomputeConsumer creates a consumer handler backed by r.
func NewRatingRecomputeConsumer(r RatingRecomputer, logger *slog.Logger) *RatingRecomputeConsumer {
	return &RatingRecomputeConsumer{recomputer: r, logger: logger}
}

// Handle re-runs the recompute for the event's product. Returning an error
// makes the kafka consumer retry and eventually dead-letter the event.
func (c *RatingRecomputeConsumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	var data RatingRecomputeRequestedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if data.ProductID == "" {
		c.logger.WarnContext(ctx, "recompute request without product id",
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	rating, err := c.recomputer.RecomputeRating(ctx, data.ProductID)
	if err != nil {
		return fmt.Errorf("recompute rating for product %s: %w", data.ProductID, err)
	}

	c.logger.InfoContext(ctx, "product rating recomputed from request",
		slog.String("product_id", data.ProductID),
		slog.Float64("rating", rating),
		slog.String("reason", data.Reason),
	)
	return nil
}
