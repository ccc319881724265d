package postgres

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
)

// Every conversion from a storage row to a domain entity lives in this file.

const productColumns = `id, name, slug, description, price, original_price, image_url, category,
	badge, rating, is_new, in_stock, stock_quantity, origin, weight, shelf_life, ingredients,
	nutrition, created_at, updated_at`

// productRow mirrors the products table.
type productRow struct {
	ID            string
	Name          string
	Slug          *string
	Description   string
	Price         int64
	OriginalPrice *int64
	ImageURL      string
	Category      string
	Badge         *string
	Rating        float64
	IsNew         bool
	InStock       bool
	StockQuantity *int
	Origin        *string
	Weight        *string
	ShelfLife     *string
	Ingredients   *string
	Nutrition     []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *productRow) targets() []any {
	return []any{
		&r.ID, &r.Name, &r.Slug, &r.Description, &r.Price, &r.OriginalPrice, &r.ImageURL, &r.Category,
		&r.Badge, &r.Rating, &r.IsNew, &r.InStock, &r.StockQuantity, &r.Origin, &r.Weight, &r.ShelfLife,
		&r.Ingredients, &r.Nutrition, &r.CreatedAt, &r.UpdatedAt,
	}
}

// scanProduct scans productColumns, followed by any extra columns, from row.
func scanProduct(row pgx.Row, extra ...any) (domain.Product, error) {
	var r productRow
	if err := row.Scan(append(r.targets(), extra...)...); err != nil {
		return domain.Product{}, err
	}
	return productFromRow(r), nil
}

func productFromRow(r productRow) domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Slug:          r.Slug,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		Badge:         r.Badge,
		Rating:        r.Rating,
		IsNew:         r.IsNew,
		InStock:       r.InStock,
		StockQuantity: r.StockQuantity,
		Origin:        r.Origin,
		Weight:        r.Weight,
		ShelfLife:     r.ShelfLife,
		Ingredients:   r.Ingredients,
		Nutrition:     nutritionFromJSON(r.Nutrition),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// nutritionFromJSON decodes the nutrition document. Absent, null, empty and
// undecodable documents all map to nil.
func nutritionFromJSON(b []byte) *domain.Nutrition {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n domain.Nutrition
	if err := json.Unmarshal(b, &n); err != nil {
		return nil
	}
	if n == (domain.Nutrition{}) {
		return nil
	}
	return &n
}

// nutritionToJSON encodes n for the nutrition column; nil stays SQL NULL.
func nutritionToJSON(n *domain.Nutrition) ([]byte, error) {
	if n == nil {
		return nil, nil
	}
	return json.Marshal(n)
}

const cartColumns = `id, user_id, created_at, updated_at`

type cartRow struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func cartFromRow(r cartRow) domain.Cart {
	return domain.Cart{
		ID:        r.ID,
		UserID:    r.UserID,
		Items:     []domain.CartItem{},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const cartItemColumns = `id, cart_id, product_id, quantity, created_at`

type cartItemRow struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
}

// cartItemFromRow attaches the item's product from products, leaving it nil
// when the product was not loaded.
func cartItemFromRow(r cartItemRow, products map[string]*domain.Product) domain.CartItem {
	return domain.CartItem{
		ID:        r.ID,
		CartID:    r.CartID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Product:   products[r.ProductID],
		CreatedAt: r.CreatedAt,
	}
}

const reviewColumns = `id, product_id, user_id, rating, comment, created_at, updated_at`

type reviewRow struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *reviewRow) targets() []any {
	return []any{&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt}
}

func reviewFromRow(r reviewRow) domain.Review {
	rv := domain.Review{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Comment != nil {
		rv.Comment = *r.Comment
	}
	return rv
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

type userRow struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *userRow) targets() []any {
	return []any{&r.ID, &r.Email, &r.PasswordHash, &r.Role, &r.CreatedAt, &r.UpdatedAt}
}

func userFromRow(r userRow) domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const profileColumns = `user_id, full_name, phone, address_line1, address_line2, city, state,
	postal_code, country, created_at, updated_at`

type profileRow struct {
	UserID       string
	FullName     *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *profileRow) targets() []any {
	return []any{
		&r.UserID, &r.FullName, &r.Phone, &r.AddressLine1, &r.AddressLine2, &r.City, &r.State,
		&r.PostalCode, &r.Country, &r.CreatedAt, &r.UpdatedAt,
	}
}

func profileFromRow(r profileRow) domain.Profile {
	return domain.Profile{
		UserID:       r.UserID,
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const wishlistItemColumns = `user_id, product_id, created_at`

type wishlistItemRow struct {
	UserID    string
	ProductID string
	CreatedAt time.Time
}

func wishlistItemFromRow(r wishlistItemRow, products map[string]*domain.Product) domain.WishlistItem {
	return domain.WishlistItem{
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Product:   products[r.ProductID],
		CreatedAt: r.CreatedAt,
	}
}
