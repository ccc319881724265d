package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

const maxRelatedLimit = 12

// CatalogHandler serves product listing, category and product detail endpoints.
type CatalogHandler struct {
	catalog  *service.CatalogService
	resolver *service.Resolver
	recent   *service.RecentlyViewedService
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(
	catalog *service.CatalogService,
	resolver *service.Resolver,
	recent *service.RecentlyViewedService,
	logger *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		resolver: resolver,
		recent:   recent,
		logger:   logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, msg := parseProductQuery(r.URL.Query())
	if msg != "" {
		httputil.WriteBadParameter(w, msg)
		return
	}

	page, err := h.catalog.Query(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, page)
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, categories)
}

// ListCategoryProducts handles GET /api/v1/categories/{slug}/products
func (h *CatalogHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	values.Del("category")
	q, msg := parseProductQuery(values)
	if msg != "" {
		httputil.WriteBadParameter(w, msg)
		return
	}

	page, err := h.catalog.ListByCategory(r.Context(), chi.URLParam(r, "slug"), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, page)
}

// GetProduct handles GET /api/v1/products/{idOrSlug}. The viewed product is
// pushed onto the visitor's recently-viewed list; a failure there never
// fails the page.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.resolver.Resolve(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if visitor := middleware.VisitorIDFromContext(r.Context()); visitor != "" {
		if err := h.recent.Record(r.Context(), visitor, product); err != nil {
			h.logger.WarnContext(r.Context(), "failed to record recently viewed product",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// RelatedProducts handles GET /api/v1/products/{idOrSlug}/related
func (h *CatalogHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultRelatedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRelatedLimit {
			httputil.WriteBadParameter(w, "limit must be an integer between 1 and "+strconv.Itoa(maxRelatedLimit))
			return
		}
		limit = n
	}

	product, err := h.resolver.Resolve(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	related, err := h.catalog.Related(r.Context(), product, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, related)
}

// parseProductQuery reads catalog filters from the query string. A non-empty
// message means a parameter was malformed.
func parseProductQuery(values url.Values) (domain.ProductQuery, string) {
	q := domain.ProductQuery{
		Search: strings.TrimSpace(values.Get("search")),
		Origin: strings.TrimSpace(values.Get("origin")),
	}

	for _, raw := range values["category"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}

	if v := values.Get("sort"); v != "" {
		if !domain.IsValidSort(v) {
			return q, "sort must be one of: " + strings.Join(domain.ValidSorts(), ", ")
		}
		q.Sort = v
	}

	for _, p := range []struct {
		name string
		dst  **int64
	}{{"price_min", &q.PriceMin}, {"price_max", &q.PriceMax}} {
		v := values.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return q, p.name + " must be a non-negative integer"
		}
		*p.dst = &n
	}
	if q.PriceMin != nil && q.PriceMax != nil && *q.PriceMin > *q.PriceMax {
		return q, "price_min must not exceed price_max"
	}

	if v := values.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || f < 0 || f > domain.MaxRating {
			return q, "min_rating must be a number between 0 and 5"
		}
		q.MinRating = &f
	}

	for _, p := range []struct {
		name string
		dst  **bool
	}{{"in_stock", &q.InStock}, {"is_new", &q.IsNew}} {
		v := values.Get(p.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, p.name + " must be true or false"
		}
		*p.dst = &b
	}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > pagination.MaxPage {
			return q, fmt.Sprintf("page must be a valid integer between 1 and %d", pagination.MaxPage)
		}
		q.Page = n
	}
	if v := values.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > pagination.MaxPerPage {
			return q, "per_page must be a valid integer between 1 and 100"
		}
		q.PageSize = n
	}

	return q, ""
}
