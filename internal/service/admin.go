package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/seed"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// SeedResult reports what a bulk load did.
type SeedResult struct {
	Set      string `json:"set"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
}

// AdminService backs the admin shell.
type AdminService struct {
	dashboard repository.DashboardRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	logger    *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	dashboard repository.DashboardRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		dashboard: dashboard,
		users:     users,
		products:  products,
		logger:    logger,
	}
}

// Dashboard returns the row counts shown on the dashboard.
func (s *AdminService) Dashboard(ctx context.Context) (*domain.DashboardCounts, error) {
	counts, err := s.dashboard.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return counts, nil
}

// Users returns one page of accounts, newest first.
func (s *AdminService) Users(ctx context.Context, params pagination.Params) (pagination.Result[domain.User], error) {
	users, total, err := s.users.List(ctx, params)
	if err != nil {
		return pagination.Result[domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return pagination.NewResult(users, total, params), nil
}

// Seed upserts every product of the named set by name. Existing ratings are
// kept. It stops at the first failing product.
func (s *AdminService) Seed(ctx context.Context, set string) (*SeedResult, error) {
	products, ok := seed.Products(set)
	if !ok {
		return nil, apperrors.NotFound("seed set", set)
	}

	result := &SeedResult{Set: set}
	for i := range products {
		inserted, err := s.products.UpsertByName(ctx, &products[i])
		if err != nil {
			return nil, fmt.Errorf("seed %s product %q: %w", set, products[i].Name, err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	s.logger.InfoContext(ctx, "product set loaded",
		slog.String("set", set),
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
	)
	return result, nil
}
