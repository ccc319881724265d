package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// DefaultRelatedLimit is the number of related products shown on a detail page.
const DefaultRelatedLimit = 4

// CatalogService implements catalog listing and filtering.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Query returns one page of products matching q. Categories are normalized to
// their stored form, page bounds are clamped and unknown sorts fall back to
// the default order.
//
// On a storage failure Query returns an empty page together with an error
// wrapping apperrors.ErrServiceUnavail; callers that only need the items can
// ignore the error.
func (s *CatalogService) Query(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	q = normalizeQuery(q)
	params := pagination.New(q.Page, q.PageSize)
	q.Page, q.PageSize = params.Page, params.PerPage

	products, total, err := s.repo.Query(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog query failed",
			slog.Any("categories", q.Categories),
			slog.String("search", q.Search),
			slog.String("sort", q.Sort),
			slog.Int("page", q.Page),
			slog.String("error", err.Error()),
		)
		return pagination.NewResult[domain.Product](nil, 0, params),
			apperrors.Unavailable("catalog is temporarily unavailable", err)
	}

	return pagination.NewResult(products, total, params), nil
}

// ListByCategory lists one category. "all" and the empty string list every
// product; other filters in q still apply.
func (s *CatalogService) ListByCategory(ctx context.Context, category string, q domain.ProductQuery) (domain.ProductPage, error) {
	q.Categories = nil
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, domain.CategoryAll) {
		q.Categories = []string{c}
	}
	return s.Query(ctx, q)
}

// Related returns up to limit other products in p's category, best rated first.
func (s *CatalogService) Related(ctx context.Context, p *domain.Product, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	related, err := s.repo.ListRelated(ctx, p.Category, p.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	return related, nil
}

// Categories lists the distinct categories with product counts.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func normalizeQuery(q domain.ProductQuery) domain.ProductQuery {
	cats := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		if strings.EqualFold(strings.TrimSpace(c), domain.CategoryAll) {
			continue
		}
		cats = append(cats, c)
	}
	q.Categories = domain.NormalizeCategories(cats)
	if len(q.Categories) == 0 {
		q.Categories = nil
	}

	q.Search = strings.TrimSpace(q.Search)
	q.Origin = strings.TrimSpace(q.Origin)
	if !domain.IsValidSort(q.Sort) {
		q.Sort = ""
	}
	return q
}
