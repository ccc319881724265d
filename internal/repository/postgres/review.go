package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return apperrors.NotFound("product", rv.ProductID)
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var row reviewRow
	err := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id).Scan(row.targets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	rv := reviewFromRow(row)
	return &rv, nil
}

// Update stores a review's rating and comment.
func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	rv.UpdatedAt = time.Now().UTC()

	ct, err := r.db.Exec(ctx,
		`UPDATE reviews SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`,
		rv.Rating, rv.Comment, rv.UpdatedAt, rv.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", rv.ID)
	}
	return nil
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}
	return nil
}

// ListByProduct returns a page of a product's reviews, newest first, and
// the total count.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, params pagination.Params) ([]domain.Review, int, error) {
	query := `
		SELECT ` + reviewColumns + `, count(*) OVER() AS total_count
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, productID, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews    = []domain.Review{}
		totalCount int
	)
	for rows.Next() {
		var row reviewRow
		if err := rows.Scan(append(row.targets(), &totalCount)...); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, reviewFromRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, totalCount, nil
}

// Summary returns the rounded average rating and review count for a product.
func (r *ReviewRepository) Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	var summary domain.ReviewSummary
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM reviews WHERE product_id = $1`, productID,
	).Scan(&summary.AverageRating, &summary.TotalCount)
	if err != nil {
		return nil, fmt.Errorf("get review summary: %w", err)
	}
	summary.AverageRating = domain.RoundRating(summary.AverageRating)
	return &summary, nil
}

// RatingAverage evaluates the product_rating_average SQL function.
func (r *ReviewRepository) RatingAverage(ctx context.Context, productID string) (avg float64, err error) {
	const query = `SELECT product_rating_average($1)`
	ctx, end := database.TraceQuery(ctx, "RatingAverage", query)
	defer func() { end(err) }()

	if err := r.db.QueryRow(ctx, query, productID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("compute rating average: %w", err)
	}
	return avg, nil
}
