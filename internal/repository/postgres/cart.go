package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	db database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(db database.DBTX) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreate returns the user's cart, creating an empty one on first access.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO carts (id, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + cartColumns

	var row cartRow
	err := r.db.QueryRow(ctx, query, uuid.New().String(), userID).
		Scan(&row.ID, &row.UserID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return nil, apperrors.NotFound("user", userID)
		}
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	cart := cartFromRow(row)
	return &cart, nil
}

// ListItems returns the cart's items, oldest first, with products attached.
func (r *CartRepository) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY created_at ASC, id ASC`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var itemRows []cartItemRow
	for rows.Next() {
		var row cartItemRow
		if err := rows.Scan(&row.ID, &row.CartID, &row.ProductID, &row.Quantity, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		itemRows = append(itemRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart item rows: %w", err)
	}

	ids := make([]string, len(itemRows))
	for i, row := range itemRows {
		ids[i] = row.ProductID
	}
	products, err := productsByID(ctx, r.db, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	items := make([]domain.CartItem, len(itemRows))
	for i, row := range itemRows {
		items[i] = cartItemFromRow(row, products)
	}
	return items, nil
}

// AddItem inserts the product with quantity delta, or atomically increments
// the existing row's quantity, capped at maxQty.
func (r *CartRepository) AddItem(ctx context.Context, cartID, productID string, delta, maxQty int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, LEAST($4::int, $5::int))
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, $5::int)`

	if _, err := r.db.Exec(ctx, query, uuid.New().String(), cartID, productID, delta, maxQty); err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// SetQuantity overwrites the quantity of an item already in the cart.
func (r *CartRepository) SetQuantity(ctx context.Context, cartID, productID string, qty int) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3`, qty, cartID, productID)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", productID)
	}
	return nil
}

// RemoveItem deletes the product's row from the cart.
func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", productID)
	}
	return nil
}

// Clear deletes every item in the cart.
func (r *CartRepository) Clear(ctx context.Context, cartID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
