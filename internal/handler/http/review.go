package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	reviews  *service.ReviewService
	resolver *service.Resolver
	logger   *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(reviews *service.ReviewService, resolver *service.Resolver, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		resolver: resolver,
		logger:   logger,
	}
}

// ReviewRequest is the JSON body for creating or editing a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (req ReviewRequest) input() service.ReviewInput {
	return service.ReviewInput{Rating: req.Rating, Comment: req.Comment}
}

// ListReviews handles GET /api/v1/products/{idOrSlug}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	product, ok := h.product(w, r)
	if !ok {
		return
	}

	result, err := h.reviews.List(r.Context(), product.ID, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, result)
}

// ReviewSummary handles GET /api/v1/products/{idOrSlug}/reviews/summary
func (h *ReviewHandler) ReviewSummary(w http.ResponseWriter, r *http.Request) {
	product, ok := h.product(w, r)
	if !ok {
		return
	}

	summary, err := h.reviews.Summary(r.Context(), product.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, summary)
}

// CreateReview handles POST /api/v1/products/{idOrSlug}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	product, ok := h.product(w, r)
	if !ok {
		return
	}

	review, err := h.reviews.Add(r.Context(), product.ID, userID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, review)
}

// UpdateReview handles PUT /api/v1/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req ReviewRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	review, err := h.reviews.Update(r.Context(), id.String(), userID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/reviews/{id}. Admins may delete any review.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	isAdmin := middleware.RoleFromContext(r.Context()) == domain.RoleAdmin
	if err := h.reviews.Delete(r.Context(), id.String(), userID, isAdmin); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) product(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	product, err := h.resolver.Resolve(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return product, true
}
