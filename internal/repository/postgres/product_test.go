package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

func TestWhereClause_NoFilters(t *testing.T) {
	where, args := whereClause(domain.ProductQuery{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestWhereClause_AllFilters(t *testing.T) {
	minRating := 4.0
	inStock, isNew := true, false
	q := domain.ProductQuery{
		Categories: []string{"dry fruits", "nuts"},
		PriceMin:   int64Ptr(1000),
		PriceMax:   int64Ptr(5000),
		MinRating:  &minRating,
		InStock:    &inStock,
		IsNew:      &isNew,
		Origin:     "iran",
		Search:     "100%_pure",
	}

	where, args := whereClause(q)

	assert.Equal(t, "WHERE lower(category) = ANY($1) AND price >= $2 AND price <= $3 AND rating >= $4"+
		" AND in_stock = $5 AND is_new = $6 AND origin ILIKE $7 AND (name ILIKE $8 OR description ILIKE $8)", where)
	assert.Equal(t, []any{
		[]string{"dry fruits", "nuts"}, int64(1000), int64(5000), 4.0, true, false, "%iran%", `%100\%\_pure%`,
	}, args)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "price ASC, id ASC", orderBy(domain.SortPriceAsc))
	assert.Equal(t, "price DESC, id ASC", orderBy(domain.SortPriceDesc))
	assert.Equal(t, "created_at DESC, id ASC", orderBy(domain.SortNewest))
	assert.Equal(t, "rating DESC, id ASC", orderBy(domain.SortPopularity))
	assert.Equal(t, "rating DESC, id ASC", orderBy(""))
	assert.Equal(t, "rating DESC, id ASC", orderBy("bogus"))
}

// Five spices and three dry fruits; page 2 of spices at two per page.
func TestProductRepository_Query_SecondPageOfCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE lower\(category\) = ANY\(\$1\)`).
		WithArgs([]string{"spices"}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT .+ FROM products WHERE lower\(category\) = ANY\(\$1\) ORDER BY rating DESC, id ASC LIMIT \$2 OFFSET \$3`).
		WithArgs([]string{"spices"}, 2, 2).
		WillReturnRows(productRows(
			sampleProduct("s3", "Cumin Seeds", "spices", 9900),
			sampleProduct("s4", "Black Pepper", "spices", 12900),
		))

	items, total, err := repo.Query(context.Background(), domain.ProductQuery{
		Categories: []string{"spices"}, Page: 2, PageSize: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, "s3", items[0].ID)
	assert.Equal(t, "spices", items[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Query_PastLastPageKeepsTotal(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY price ASC, id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(12, 36).
		WillReturnRows(productRows())

	items, total, err := repo.Query(context.Background(), domain.ProductQuery{Sort: domain.SortPriceAsc, Page: 4})

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 8, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Query_CountError(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("connection reset"))

	items, total, err := repo.Query(context.Background(), domain.ProductQuery{})

	assert.Error(t, err)
	assert.Nil(t, items)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	p := sampleProduct("p-1", "California Almonds", "dry fruits", 45000)
	p.Slug = strPtr("california-almonds")
	mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(productRows(p))

	got, err := repo.GetByID(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "California Almonds", got.Name)
	assert.Equal(t, "california-almonds", *got.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE slug = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetBySlug(context.Background(), "missing")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByName(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("kashmiri saffron").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByName(context.Background(), "kashmiri saffron")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByNameContaining(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE name ILIKE \$1 ORDER BY name, id LIMIT 1`).
		WithArgs("%kashmiri saffron%").
		WillReturnRows(productRows(sampleProduct("sf", "Kashmiri Saffron (Premium Grade)", "premium spices", 149900)))

	got, err := repo.FindByNameContaining(context.Background(), "kashmiri saffron")

	require.NoError(t, err)
	assert.Equal(t, "sf", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListRelated(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM products WHERE lower\(category\) = lower\(\$1\) AND id <> \$2`).
		WithArgs("dry fruits", "p-1", 4).
		WillReturnRows(productRows(sampleProduct("p-2", "Cashews W240", "dry fruits", 52000)))

	got, err := repo.ListRelated(context.Background(), "dry fruits", "p-1", 4)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-2", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListCategories(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT lower\(category\) AS name, COUNT\(\*\) FROM products GROUP BY`).
		WillReturnRows(pgxmock.NewRows([]string{"name", "count"}).
			AddRow("dry fruits", 3).
			AddRow("spices", 5))

	got, err := repo.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Name: "dry fruits", Slug: "dry-fruits", ProductCount: 3},
		{Name: "spices", Slug: "spices", ProductCount: 5},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateRating(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(`UPDATE products SET rating = \$1`).
		WithArgs(4.5, pgxmock.AnyArg(), "p-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE products SET rating = \$1`).
		WithArgs(0.0, pgxmock.AnyArg(), "gone").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateRating(context.Background(), "p-1", 4.5))
	assert.ErrorIs(t, repo.UpdateRating(context.Background(), "gone", 0), apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpsertByName(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	p := sampleProduct("", "Medjool Dates", "dry fruits", 89900)
	p.Slug = strPtr("medjool-dates")
	p.Nutrition = &domain.Nutrition{Fiber: strPtr("7g")}

	mock.ExpectQuery(`INSERT INTO products .+ ON CONFLICT \(name\) DO UPDATE SET .+ RETURNING id, \(xmax = 0\) AS inserted`).
		WithArgs(
			pgxmock.AnyArg(), "Medjool Dates", p.Slug, "", int64(89900), p.OriginalPrice, p.ImageURL, "dry fruits",
			p.Badge, false, true, p.StockQuantity, p.Origin, p.Weight, p.ShelfLife, p.Ingredients,
			[]byte(`{"fiber":"7g"}`), pgxmock.AnyArg(),
		).
		WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow("existing-id", false))

	inserted, err := repo.UpsertByName(context.Background(), &p)

	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, "existing-id", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpsertByName_SlugTaken(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	p := sampleProduct("p-9", "Green Cardamom", "spices", 30000)
	p.Slug = strPtr("green-cardamom")
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(anyArgs(18)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.UpsertByName(context.Background(), &p)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}
