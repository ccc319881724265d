package postgres

import (
	"context"
	"fmt"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/database"
)

// DashboardRepository implements repository.DashboardRepository using PostgreSQL.
type DashboardRepository struct {
	db database.DBTX
}

// NewDashboardRepository creates a new PostgreSQL-backed dashboard repository.
func NewDashboardRepository(db database.DBTX) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns row counts for the admin dashboard. Orders are always zero
// until checkout is implemented.
func (r *DashboardRepository) Counts(ctx context.Context) (*domain.DashboardCounts, error) {
	var c domain.DashboardCounts
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM carts)`,
	).Scan(&c.Products, &c.Users, &c.Reviews, &c.Carts)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}
