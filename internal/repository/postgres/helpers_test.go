package postgres

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
)

// Repositories run against a pgxmock pool through the DBTX interface.
var _ database.DBTX = pgxmock.PgxPoolIface(nil)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

var productCols = []string{
	"id", "name", "slug", "description", "price", "original_price", "image_url", "category",
	"badge", "rating", "is_new", "in_stock", "stock_quantity", "origin", "weight", "shelf_life",
	"ingredients", "nutrition", "created_at", "updated_at",
}

func sampleProduct(id, name, category string, price int64) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		ImageURL:  "/img/" + id + ".jpg",
		Category:  category,
		Rating:    4.2,
		InStock:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// productValues renders p as a products row in productCols order.
func productValues(p domain.Product) []any {
	return []any{
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.OriginalPrice, p.ImageURL, p.Category,
		p.Badge, p.Rating, p.IsNew, p.InStock, p.StockQuantity, p.Origin, p.Weight, p.ShelfLife,
		p.Ingredients, nil, p.CreatedAt, p.UpdatedAt,
	}
}

func productRows(ps ...domain.Product) *pgxmock.Rows {
	rows := pgxmock.NewRows(productCols)
	for _, p := range ps {
		rows.AddRow(productValues(p)...)
	}
	return rows
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
