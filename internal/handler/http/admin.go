package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// AdminHandler serves the admin shell. Routes are mounted behind the admin
// role check.
type AdminHandler struct {
	admin   *service.AdminService
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(admin *service.AdminService, catalog *service.CatalogService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog, logger: logger}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.admin.Dashboard(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, counts)
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, users)
}

// ListProducts handles GET /api/v1/admin/products. It accepts the same
// filters as the public catalog.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
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

// Seed handles POST /api/v1/admin/seed/{set}
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.admin.Seed(r.Context(), chi.URLParam(r, "set"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, result)
}
