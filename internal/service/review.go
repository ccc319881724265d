package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/event"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// MaxCommentLength is the longest review comment accepted, in characters.
const MaxCommentLength = 2000

// ReviewInput holds the user-editable fields of a review.
type ReviewInput struct {
	Rating  int
	Comment string
}

func (in ReviewInput) validate() error {
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if utf8.RuneCountInString(in.Comment) > MaxCommentLength {
		return apperrors.InvalidInput(fmt.Sprintf("comment must be at most %d characters", MaxCommentLength))
	}
	return nil
}

// ReviewService implements review operations and keeps each product's
// aggregate rating in line with its reviews.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// Add creates a review by userID on productID.
func (s *ReviewService) Add(ctx context.Context, productID, userID string, in ReviewInput) (*domain.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", productID),
		slog.Int("rating", review.Rating),
	)

	s.recompute(ctx, productID)
	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logPublishFailure(ctx, event.TopicReviewCreated, review.ID, err)
	}
	return review, nil
}

// Update edits a review. Only its author may edit it.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID string, in ReviewInput) (*domain.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := in.validate(); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review.UserID != userID {
		return nil, apperrors.Forbidden("only the author can edit a review")
	}

	review.Rating = in.Rating
	review.Comment = in.Comment
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.recompute(ctx, review.ProductID)
	if err := s.producer.PublishReviewUpdated(ctx, review); err != nil {
		s.logPublishFailure(ctx, event.TopicReviewUpdated, review.ID, err)
	}
	return review, nil
}

// Delete removes a review. The author or an admin may delete it.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID string, isAdmin bool) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("get review: %w", err)
	}
	if review.UserID != userID && !isAdmin {
		return apperrors.Forbidden("only the author can delete a review")
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", reviewID),
		slog.String("product_id", review.ProductID),
		slog.Bool("by_admin", review.UserID != userID),
	)

	s.recompute(ctx, review.ProductID)
	if err := s.producer.PublishReviewDeleted(ctx, review); err != nil {
		s.logPublishFailure(ctx, event.TopicReviewDeleted, review.ID, err)
	}
	return nil
}

// List returns one page of a product's reviews, newest first.
func (s *ReviewService) List(ctx context.Context, productID string, params pagination.Params) (pagination.Result[domain.Review], error) {
	reviews, total, err := s.reviews.ListByProduct(ctx, productID, params)
	if err != nil {
		return pagination.Result[domain.Review]{}, fmt.Errorf("list reviews: %w", err)
	}
	return pagination.NewResult(reviews, total, params), nil
}

// Summary returns the product's average rating, rounded to one decimal, and
// review count.
func (s *ReviewService) Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	summary, err := s.reviews.Summary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("review summary: %w", err)
	}
	return summary, nil
}

// RecomputeRating stores the mean of the product's reviews as its rating
// and returns it. A product without reviews gets 0. It is idempotent.
func (s *ReviewService) RecomputeRating(ctx context.Context, productID string) (float64, error) {
	avg, err := s.reviews.RatingAverage(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("compute rating average: %w", err)
	}
	if err := s.products.UpdateRating(ctx, productID, avg); err != nil {
		return 0, fmt.Errorf("update product rating: %w", err)
	}

	if err := s.producer.PublishRatingUpdated(ctx, productID, avg); err != nil {
		s.logPublishFailure(ctx, event.TopicRatingUpdated, productID, err)
	}
	return avg, nil
}

// recompute runs RecomputeRating after a review mutation. Failures are logged
// and handed to the recompute consumer instead of failing the mutation.
func (s *ReviewService) recompute(ctx context.Context, productID string) {
	if _, err := s.RecomputeRating(ctx, productID); err != nil {
		s.logger.ErrorContext(ctx, "product rating recompute failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		if pubErr := s.producer.PublishRatingRecomputeRequested(ctx, productID, err.Error()); pubErr != nil {
			s.logPublishFailure(ctx, event.TopicRatingRecomputeRequested, productID, pubErr)
		}
	}
}

func (s *ReviewService) logPublishFailure(ctx context.Context, topic, aggregateID string, err error) {
	s.logger.ErrorContext(ctx, "failed to publish event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
		slog.String("error", err.Error()),
	)
}
