package repository

import (
	"context"
	"time"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// ProductRepository defines the catalog persistence operations. Single-row
// lookups return apperrors.ErrNotFound when nothing matches.
type ProductRepository interface {
	// Query returns the requested page of products matching q and the exact
	// number of matching products.
	Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)

	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// FindByName matches the whole name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Product, error)

	// FindByNameContaining returns the first product by name whose name
	// contains fragment case-insensitively.
	FindByNameContaining(ctx context.Context, fragment string) (*domain.Product, error)

	// First returns an arbitrary product.
	First(ctx context.Context) (*domain.Product, error)

	// ListRelated returns up to limit products in category other than excludeID.
	ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.Product, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)

	// UpdateRating stores a recomputed aggregate rating.
	UpdateRating(ctx context.Context, id string, rating float64) error

	// UpsertByName inserts p or updates the product with the same name. The
	// rating is never written. It reports whether a new row was inserted.
	UpsertByName(ctx context.Context, p *domain.Product) (bool, error)
}

// CartRepository defines cart persistence operations.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it if needed. Items are
	// not loaded.
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)

	// ListItems returns the cart's items with their products attached.
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)

	// AddItem adds delta to the product's quantity, inserting the row when
	// absent. The resulting quantity is capped at maxQty.
	AddItem(ctx context.Context, cartID, productID string, delta, maxQty int) error

	SetQuantity(ctx context.Context, cartID, productID string, qty int) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
	ListByProduct(ctx context.Context, productID string, params pagination.Params) ([]domain.Review, int, error)
	Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error)

	// RatingAverage evaluates the product_rating_average aggregate. It is 0
	// for a product without reviews.
	RatingAverage(ctx context.Context, productID string) (float64, error)
}

// UserRepository defines account persistence operations.
type UserRepository interface {
	// Create inserts the user and their profile in one transaction.
	Create(ctx context.Context, u *domain.User, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, params pagination.Params) ([]domain.User, int, error)
}

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

// WishlistRepository defines wishlist persistence operations.
type WishlistRepository interface {
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	// Add is a no-op when the product is already saved.
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

// DashboardRepository provides admin dashboard aggregates.
type DashboardRepository interface {
	Counts(ctx context.Context) (*domain.DashboardCounts, error)
}

// RecentlyViewedStore persists each visitor's recently viewed list.
type RecentlyViewedStore interface {
	// Load returns the stored list, newest first. A corrupt value is
	// discarded and reported as an empty list.
	Load(ctx context.Context, visitorID string) ([]domain.RecentlyViewedProduct, error)
	Save(ctx context.Context, visitorID string, list []domain.RecentlyViewedProduct) error
	Clear(ctx context.Context, visitorID string) error
}

// TokenDenylist records revoked token IDs until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
