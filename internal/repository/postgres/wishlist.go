package postgres

import (
	"context"
	"fmt"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	db database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db database.DBTX) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// List returns the user's saved products, most recent first.
func (r *WishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+wishlistItemColumns+` FROM wishlist_items WHERE user_id = $1 ORDER BY created_at DESC, product_id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	var itemRows []wishlistItemRow
	for rows.Next() {
		var row wishlistItemRow
		if err := rows.Scan(&row.UserID, &row.ProductID, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		itemRows = append(itemRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	ids := make([]string, len(itemRows))
	for i, row := range itemRows {
		ids[i] = row.ProductID
	}
	products, err := productsByID(ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("load wishlist products: %w", err)
	}

	items := make([]domain.WishlistItem, len(itemRows))
	for i, row := range itemRows {
		items[i] = wishlistItemFromRow(row, products)
	}
	return items, nil
}

// Add saves a product to the wishlist.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`, userID, productID)
	if err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

// Remove deletes a product from the wishlist.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("wishlist item", productID)
	}
	return nil
}
