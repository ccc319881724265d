package http

import (
	"log/slog"
	"net/http"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
)

// RecentlyViewedHandler exposes the visitor's recently viewed products.
type RecentlyViewedHandler struct {
	service *service.RecentlyViewedService
	logger  *slog.Logger
}

// NewRecentlyViewedHandler creates a new recently-viewed HTTP handler.
func NewRecentlyViewedHandler(svc *service.RecentlyViewedService, logger *slog.Logger) *RecentlyViewedHandler {
	return &RecentlyViewedHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/recently-viewed
func (h *RecentlyViewedHandler) List(w http.ResponseWriter, r *http.Request) {
	visitor := middleware.VisitorIDFromContext(r.Context())
	if visitor == "" {
		httputil.WriteData(w, http.StatusOK, []domain.RecentlyViewedProduct{})
		return
	}
	httputil.WriteData(w, http.StatusOK, h.service.List(r.Context(), visitor))
}

// Clear handles DELETE /api/v1/recently-viewed
func (h *RecentlyViewedHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if visitor := middleware.VisitorIDFromContext(r.Context()); visitor != "" {
		if err := h.service.Clear(r.Context(), visitor); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
