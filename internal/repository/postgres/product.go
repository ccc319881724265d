package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

var sortClauses = map[string]string{
	domain.SortPriceAsc:   "price ASC, id ASC",
	domain.SortPriceDesc:  "price DESC, id ASC",
	domain.SortRatingDesc: "rating DESC, id ASC",
	domain.SortNewest:     "created_at DESC, id ASC",
	domain.SortPopularity: "rating DESC, id ASC",
}

func orderBy(sort string) string {
	if clause, ok := sortClauses[sort]; ok {
		return clause
	}
	return sortClauses[domain.SortPopularity]
}

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// whereClause builds the conjunctive filter for q. Categories must already
// be normalized.
func whereClause(q domain.ProductQuery) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	add := func(format string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if len(q.Categories) > 0 {
		add("lower(category) = ANY($%d)", q.Categories)
	}
	if q.PriceMin != nil {
		add("price >= $%d", *q.PriceMin)
	}
	if q.PriceMax != nil {
		add("price <= $%d", *q.PriceMax)
	}
	if q.MinRating != nil {
		add("rating >= $%d", *q.MinRating)
	}
	if q.InStock != nil {
		add("in_stock = $%d", *q.InStock)
	}
	if q.IsNew != nil {
		add("is_new = $%d", *q.IsNew)
	}
	if q.Origin != "" {
		add("origin ILIKE $%d", containsPattern(q.Origin))
	}
	if q.Search != "" {
		args = append(args, containsPattern(q.Search))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Query returns one page of matching products and the exact match count.
func (r *ProductRepository) Query(ctx context.Context, q domain.ProductQuery) (_ []domain.Product, _ int, err error) {
	where, args := whereClause(q)
	params := pagination.New(q.Page, q.PageSize)

	countQuery := "SELECT COUNT(*) FROM products " + where
	ctx, end := database.TraceQuery(ctx, "QueryProducts", countQuery)
	defer func() { end(err) }()

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	pageQuery := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy(q.Sort), len(args)+1, len(args)+2)
	products, err := r.list(ctx, pageQuery, append(args, params.Limit(), params.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySlug retrieves a product by its slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

// FindByName retrieves the product whose name equals name, ignoring case.
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE lower(name) = lower($1) ORDER BY name, id LIMIT 1`, name)
}

// FindByNameContaining retrieves the first product, ordered by name, whose
// name contains fragment.
func (r *ProductRepository) FindByNameContaining(ctx context.Context, fragment string) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE name ILIKE $1 ORDER BY name, id LIMIT 1`, containsPattern(fragment))
}

// First retrieves an arbitrary product.
func (r *ProductRepository) First(ctx context.Context) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products LIMIT 1`)
}

// ListRelated returns up to limit other products in the same category,
// best rated first.
func (r *ProductRepository) ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE lower(category) = lower($1) AND id <> $2
		ORDER BY rating DESC, id ASC
		LIMIT $3`
	return r.list(ctx, query, category, excludeID, limit)
}

// ListCategories returns every distinct category with its product count.
func (r *ProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT lower(category) AS name, COUNT(*)
		FROM products
		GROUP BY lower(category)
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		c.Slug = domain.CategorySlug(c.Name)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	return categories, nil
}

// UpdateRating stores the product's aggregate rating.
func (r *ProductRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	ct, err := r.db.Exec(ctx, `UPDATE products SET rating = $1, updated_at = $2 WHERE id = $3`,
		rating, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

// UpsertByName inserts p, or updates every authored field of the product
// with the same name. p.ID is set to the stored row's ID.
func (r *ProductRepository) UpsertByName(ctx context.Context, p *domain.Product) (bool, error) {
	nutrition, err := nutritionToJSON(p.Nutrition)
	if err != nil {
		return false, fmt.Errorf("marshal nutrition: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO products (id, name, slug, description, price, original_price, image_url, category,
			badge, is_new, in_stock, stock_quantity, origin, weight, shelf_life, ingredients, nutrition,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
		ON CONFLICT (name) DO UPDATE SET
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			image_url = EXCLUDED.image_url,
			category = EXCLUDED.category,
			badge = EXCLUDED.badge,
			is_new = EXCLUDED.is_new,
			in_stock = EXCLUDED.in_stock,
			stock_quantity = EXCLUDED.stock_quantity,
			origin = EXCLUDED.origin,
			weight = EXCLUDED.weight,
			shelf_life = EXCLUDED.shelf_life,
			ingredients = EXCLUDED.ingredients,
			nutrition = EXCLUDED.nutrition,
			updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS inserted`

	var inserted bool
	err = r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.OriginalPrice, p.ImageURL, p.Category,
		p.Badge, p.IsNew, p.InStock, p.StockQuantity, p.Origin, p.Weight, p.ShelfLife, p.Ingredients,
		nutrition, now,
	).Scan(&p.ID, &inserted)
	if err != nil {
		if database.PgErrorCode(err) == database.CodeUniqueViolation {
			slug := ""
			if p.Slug != nil {
				slug = *p.Slug
			}
			return false, apperrors.AlreadyExists("product", "slug", slug)
		}
		return false, fmt.Errorf("upsert product %q: %w", p.Name, err)
	}
	return inserted, nil
}

func (r *ProductRepository) get(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	return listProducts(ctx, r.db, query, args...)
}

func listProducts(ctx context.Context, db database.DBTX, query string, args ...any) ([]domain.Product, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// productsByID loads the given products keyed by ID. Missing IDs are absent
// from the result.
func productsByID(ctx context.Context, db database.DBTX, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	products, err := listProducts(ctx, db, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}
