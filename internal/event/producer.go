package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	pkgkafka "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/kafka"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/logger"
)

// Kafka topics for storefront domain events.
var (
	TopicReviewCreated            = pkgkafka.Topic("review", "created")
	TopicReviewUpdated            = pkgkafka.Topic("review", "updated")
	TopicReviewDeleted            = pkgkafka.Topic("review", "deleted")
	TopicRatingUpdated            = pkgkafka.Topic("product", "rating_updated")
	TopicRatingRecomputeRequested = pkgkafka.Topic("product", "rating_recompute_requested")
	TopicUserRegistered           = pkgkafka.Topic("user", "registered")
)

// Aggregate types.
const (
	AggregateTypeReview  = "review"
	AggregateTypeProduct = "product"
	AggregateTypeUser    = "user"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront-api"

// ReviewData is the payload of the review.* events.
type ReviewData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
}

// RatingUpdatedData is the payload of product.rating_updated.
type RatingUpdatedData struct {
	ProductID string  `json:"product_id"`
	Rating    float64 `json:"rating"`
}

// RatingRecomputeRequestedData is the payload of
// product.rating_recompute_requested.
type RatingRecomputeRequestedData struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// UserRegisteredData is the payload of user.registered.
type UserRegisteredData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Producer publishes storefront domain events.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

func reviewData(r *domain.Review) ReviewData {
	return ReviewData{ID: r.ID, ProductID: r.ProductID, UserID: r.UserID, Rating: r.Rating}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, r *domain.Review) error {
	return p.publish(ctx, TopicReviewCreated, r.ID, AggregateTypeReview, reviewData(r))
}

// PublishReviewUpdated publishes a review.updated event.
func (p *Producer) PublishReviewUpdated(ctx context.Context, r *domain.Review) error {
	return p.publish(ctx, TopicReviewUpdated, r.ID, AggregateTypeReview, reviewData(r))
}

// PublishReviewDeleted publishes a review.deleted event.
func (p *Producer) PublishReviewDeleted(ctx context.Context, r *domain.Review) error {
	return p.publish(ctx, TopicReviewDeleted, r.ID, AggregateTypeReview, reviewData(r))
}

// PublishRatingUpdated publishes a product.rating_updated event.
func (p *Producer) PublishRatingUpdated(ctx context.Context, productID string, rating float64) error {
	return p.publish(ctx, TopicRatingUpdated, productID, AggregateTypeProduct,
		RatingUpdatedData{ProductID: productID, Rating: rating})
}

// PublishRatingRecomputeRequested asks the recompute consumer to retry the
// rating aggregation of a product.
func (p *Producer) PublishRatingRecomputeRequested(ctx context.Context, productID, reason string) error {
	return p.publish(ctx, TopicRatingRecomputeRequested, productID, AggregateTypeProduct,
		RatingRecomputeRequestedData{ProductID: productID, Reason: reason})
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, u *domain.User) error {
	return p.publish(ctx, TopicUserRegistered, u.ID, AggregateTypeUser,
		UserRegisteredData{UserID: u.ID, Email: u.Email})
}
