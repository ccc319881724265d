// Package session holds the signed-in shopper's cart state.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

// Status is the lifecycle state of a Session.
type Status string

// Session states.
const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusLoading         Status = "loading"
	StatusReady           Status = "ready"
)

// Snapshot is a copy of the session state with derived totals.
type Snapshot struct {
	Status    Status            `json:"status"`
	UserID    string            `json:"user_id,omitempty"`
	CartID    string            `json:"cart_id,omitempty"`
	Items     []domain.CartItem `json:"items"`
	CartTotal int64             `json:"cart_total"`
	CartCount int               `json:"cart_count"`
}

// Session is one user's cart. Every mutation writes through to the cart
// store and then reloads the whole cart. It is safe for concurrent use.
type Session struct {
	carts  repository.CartRepository
	maxQty int
	logger *slog.Logger

	mu     sync.Mutex
	status Status
	userID string
	cartID string
	items  []domain.CartItem
}

// New creates an unauthenticated session. maxQty caps the quantity of any
// single item.
func New(carts repository.CartRepository, maxQty int, logger *slog.Logger) *Session {
	return &Session{
		carts:  carts,
		maxQty: maxQty,
		logger: logger,
		status: StatusUnauthenticated,
	}
}

// Init loads userID's cart, creating it if needed, and makes the session
// ready. On failure the session stays unauthenticated.
func (s *Session) Init(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.Unauthorized("user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusLoading
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		s.resetLocked()
		return fmt.Errorf("load cart: %w", err)
	}
	s.userID = userID
	s.cartID = cart.ID

	if err := s.reloadLocked(ctx); err != nil {
		s.resetLocked()
		return err
	}
	s.status = StatusReady
	return nil
}

// AddItem adds delta units of the product. The resulting quantity is capped
// at the session's maximum.
func (s *Session) AddItem(ctx context.Context, productID string, delta int) error {
	if delta < 1 || delta > s.maxQty {
		return apperrors.InvalidInput(fmt.Sprintf("quantity must be between 1 and %d", s.maxQty))
	}
	return s.mutate(ctx, "add item", func(cartID string) error {
		return s.carts.AddItem(ctx, cartID, productID, delta, s.maxQty)
	})
}

// UpdateQuantity sets the product's quantity. A quantity of zero or less
// removes the item.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	if qty > s.maxQty {
		return apperrors.InvalidInput(fmt.Sprintf("quantity must be at most %d", s.maxQty))
	}
	return s.mutate(ctx, "update quantity", func(cartID string) error {
		return s.carts.SetQuantity(ctx, cartID, productID, qty)
	})
}

// RemoveItem deletes the product from the cart.
func (s *Session) RemoveItem(ctx context.Context, productID string) error {
	return s.mutate(ctx, "remove item", func(cartID string) error {
		return s.carts.RemoveItem(ctx, cartID, productID)
	})
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear cart", func(cartID string) error {
		return s.carts.Clear(ctx, cartID)
	})
}

// Reload re-reads the cart from the store.
func (s *Session) Reload(ctx context.Context) error {
	return s.mutate(ctx, "reload cart", func(string) error { return nil })
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Status:    s.status,
		UserID:    s.userID,
		CartID:    s.cartID,
		Items:     items,
		CartTotal: domain.CartTotal(items),
		CartCount: domain.CartCount(items),
	}
}

// Teardown forgets the user and cart, as on sign-out.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) mutate(ctx context.Context, op string, write func(cartID string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusReady {
		return apperrors.Unauthorized("sign in to use the cart")
	}
	if err := write(s.cartID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.reloadLocked(ctx)
}

func (s *Session) reloadLocked(ctx context.Context) error {
	items, err := s.carts.ListItems(ctx, s.cartID)
	if err != nil {
		s.logger.ErrorContext(ctx, "cart reload failed",
			slog.String("cart_id", s.cartID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("reload cart: %w", err)
	}
	s.items = items
	return nil
}

func (s *Session) resetLocked() {
	s.status = StatusUnauthenticated
	s.userID = ""
	s.cartID = ""
	s.items = nil
}

// Factory opens sessions against one cart store.
type Factory struct {
	carts  repository.CartRepository
	maxQty int
	logger *slog.Logger
}

// NewFactory creates a session factory.
func NewFactory(carts repository.CartRepository, maxQty int, logger *slog.Logger) *Factory {
	return &Factory{carts: carts, maxQty: maxQty, logger: logger}
}

// Open returns a ready session for userID.
func (f *Factory) Open(ctx context.Context, userID string) (*Session, error) {
	s := New(f.carts, f.maxQty, f.logger)
	if err := s.Init(ctx, userID); err != nil {
		return nil, err
	}
	return s, nil
}
