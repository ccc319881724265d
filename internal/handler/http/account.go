package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/validator"
)

// AccountHandler handles the signed-in user's profile, wishlist and orders.
type AccountHandler struct {
	service *service.AccountService
	logger  *slog.Logger
}

// NewAccountHandler creates a new account HTTP handler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{service: svc, logger: logger}
}

// UpdateProfileRequest is the JSON body for PUT /account/profile. Omitted
// fields are left alone and an empty string clears a field.
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,max=200"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
}

// AddWishlistRequest is the JSON body for POST /account/wishlist.
type AddWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// GetProfile handles GET /api/v1/account/profile
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/account/profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, profile)
}

// ListWishlist handles GET /api/v1/account/wishlist
func (h *AccountHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	items, err := h.service.Wishlist(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, items)
}

// AddToWishlist handles POST /api/v1/account/wishlist
func (h *AccountHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req AddWishlistRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	if err := h.service.AddToWishlist(r.Context(), userID, req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromWishlist handles DELETE /api/v1/account/wishlist/{productID}
func (h *AccountHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	if err := h.service.RemoveFromWishlist(r.Context(), userID, productID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/v1/account/orders. Orders are not stored yet,
// so the list is always empty.
func (h *AccountHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	httputil.WriteData(w, http.StatusOK, []struct{}{})
}
