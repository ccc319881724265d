package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/session"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/validator"
)

// CartHandler handles the signed-in user's cart and checkout summary.
type CartHandler struct {
	sessions *session.Factory
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(sessions *session.Factory, logger *slog.Logger) *CartHandler {
	return &CartHandler{sessions: sessions, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON body for POST /cart/items. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateItemRequest is the JSON body for PUT /cart/items/{productID}. A
// quantity of zero or less removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CheckoutSummary is the read-only order preview.
type CheckoutSummary struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
	Total     int64             `json:"total"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.open(w, r)
	if !ok {
		return
	}
	httputil.WriteData(w, http.StatusOK, sess.Snapshot())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	h.mutate(w, r, func(sess *session.Session) error {
		return sess.AddItem(r.Context(), req.ProductID, req.Quantity)
	})
}

// UpdateItem handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	h.mutate(w, r, func(sess *session.Session) error {
		return sess.UpdateQuantity(r.Context(), productID.String(), *req.Quantity)
	})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	h.mutate(w, r, func(sess *session.Session) error {
		return sess.RemoveItem(r.Context(), productID.String())
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *session.Session) error {
		return sess.Clear(r.Context())
	})
}

// CheckoutSummary handles GET /api/v1/checkout
func (h *CartHandler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.open(w, r)
	if !ok {
		return
	}
	snap := sess.Snapshot()
	httputil.WriteData(w, http.StatusOK, CheckoutSummary{
		Items:     snap.Items,
		ItemCount: snap.CartCount,
		Subtotal:  snap.CartTotal,
		Total:     snap.CartTotal,
	})
}

// PlaceOrder handles POST /api/v1/checkout. Orders are not taken yet.
func (h *CartHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, r, apperrors.NotImplemented("checkout is not available yet"), h.logger)
}

func (h *CartHandler) open(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return nil, false
	}
	sess, err := h.sessions.Open(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return sess, true
}

// mutate applies op to a freshly opened session and responds with the
// resulting cart.
func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, op func(*session.Session) error) {
	sess, ok := h.open(w, r)
	if !ok {
		return
	}
	defer sess.Teardown()

	if err := op(sess); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, sess.Snapshot())
}
