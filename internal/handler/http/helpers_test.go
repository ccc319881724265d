package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/auth"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/event"
	redisrepo "github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository/redis"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/session"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/health"
	pkgkafka "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/kafka"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// =============================================================================
// In-memory product store
// =============================================================================

type memProducts struct {
	mu       sync.Mutex
	products []*domain.Product
	lastQ    domain.ProductQuery
	queryErr error
}

func strPtr(s string) *string { return &s }

func (m *memProducts) add(p *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, p)
}

func (m *memProducts) Query(_ context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQ = q
	if m.queryErr != nil {
		return nil, 0, m.queryErr
	}
	var out []domain.Product
	for _, p := range m.products {
		if len(q.Categories) > 0 && !slices.Contains(q.Categories, p.Category) {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *memProducts) find(match func(*domain.Product) bool) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return p.ID == id })
}

func (m *memProducts) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return p.Slug != nil && *p.Slug == slug })
}

func (m *memProducts) FindByName(_ context.Context, name string) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return strings.EqualFold(p.Name, name) })
}

func (m *memProducts) FindByNameContaining(_ context.Context, fragment string) (*domain.Product, error) {
	fragment = strings.ToLower(fragment)
	return m.find(func(p *domain.Product) bool { return strings.Contains(strings.ToLower(p.Name), fragment) })
}

func (m *memProducts) First(_ context.Context) (*domain.Product, error) {
	return m.find(func(*domain.Product) bool { return true })
}

func (m *memProducts) ListRelated(_ context.Context, category, excludeID string, limit int) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Product{}
	for _, p := range m.products {
		if p.Category == category && p.ID != excludeID && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProducts) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, p := range m.products {
		counts[p.Category]++
	}
	out := make([]domain.Category, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.Category{Name: name, Slug: domain.CategorySlug(name), ProductCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memProducts) UpdateRating(_ context.Context, id string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			p.Rating = rating
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *memProducts) UpsertByName(_ context.Context, p *domain.Product) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.products {
		if existing.Name == p.Name {
			cp := *p
			cp.ID, cp.Rating = existing.ID, existing.Rating
			m.products[i] = &cp
			return false, nil
		}
	}
	cp := *p
	m.products = append(m.products, &cp)
	return true, nil
}

// =============================================================================
// In-memory cart store
// =============================================================================

type memCarts struct {
	mu       sync.Mutex
	products *memProducts
	items    map[string]map[string]int
	order    map[string][]string
}

func newMemCarts(products *memProducts) *memCarts {
	return &memCarts{
		products: products,
		items:    map[string]map[string]int{},
		order:    map[string][]string{},
	}
}

func (m *memCarts) GetOrCreate(_ context.Context, userID string) (*domain.Cart, error) {
	return &domain.Cart{ID: "cart-" + userID, UserID: userID}, nil
}

func (m *memCarts) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []domain.CartItem
	for _, pid := range m.order[cartID] {
		qty, ok := m.items[cartID][pid]
		if !ok {
			continue
		}
		p, _ := m.products.GetByID(ctx, pid)
		items = append(items, domain.CartItem{CartID: cartID, ProductID: pid, Quantity: qty, Product: p})
	}
	return items, nil
}

func (m *memCarts) AddItem(_ context.Context, cartID, productID string, delta, maxQty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[cartID] == nil {
		m.items[cartID] = map[string]int{}
	}
	if !slices.Contains(m.order[cartID], productID) {
		m.order[cartID] = append(m.order[cartID], productID)
	}
	m.items[cartID][productID] = min(m.items[cartID][productID]+delta, maxQty)
	return nil
}

func (m *memCarts) SetQuantity(_ context.Context, cartID, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[cartID][productID]; !ok {
		return apperrors.NotFound("cart item", productID)
	}
	m.items[cartID][productID] = qty
	return nil
}

func (m *memCarts) RemoveItem(_ context.Context, cartID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[cartID][productID]; !ok {
		return apperrors.NotFound("cart item", productID)
	}
	delete(m.items[cartID], productID)
	return nil
}

func (m *memCarts) Clear(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, cartID)
	delete(m.order, cartID)
	return nil
}

// =============================================================================
// Mock repositories
// =============================================================================

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) ListByProduct(ctx context.Context, productID string, params pagination.Params) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, params)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSummary), args.Error(1)
}

func (m *mockReviewRepo) RatingAverage(ctx context.Context, productID string) (float64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User, p *domain.Profile) error {
	return m.Called(ctx, u, p).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Int(1), args.Error(2)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]domain.WishlistItem)
	return items, args.Error(1)
}

func (m *mockWishlistRepo) Add(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockWishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

type mockDashboardRepo struct {
	mock.Mock
}

func (m *mockDashboardRepo) Counts(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ *pkgkafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

// =============================================================================
// Test environment
// =============================================================================

const (
	customerID = "0b6f7c52-5c3e-4f7a-9d55-2f1c9a7e1a01"
	adminID    = "7d1c3b2a-0e9f-4b8a-8c7d-6e5f4a3b2c1d"
	almondsID  = "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c"
	saffronID  = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
)

type testEnv struct {
	router    http.Handler
	products  *memProducts
	carts     *memCarts
	reviews   *mockReviewRepo
	users     *mockUserRepo
	profiles  *mockProfileRepo
	wishlist  *mockWishlistRepo
	dashboard *mockDashboardRepo
	jwt       *auth.JWTManager
	redis     *miniredis.Miniredis
	published *recordingPublisher
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testLogger()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		products:  &memProducts{},
		reviews:   &mockReviewRepo{},
		users:     &mockUserRepo{},
		profiles:  &mockProfileRepo{},
		wishlist:  &mockWishlistRepo{},
		dashboard: &mockDashboardRepo{},
		jwt:       auth.NewJWTManager("handler-test-secret", 15*time.Minute, time.Hour),
		redis:     mr,
		published: &recordingPublisher{},
	}
	env.carts = newMemCarts(env.products)
	env.products.add(&domain.Product{
		ID: almondsID, Name: "California Almonds", Slug: strPtr("california-almonds"),
		Price: 64900, Category: "dry fruits", InStock: true, ImageURL: "/images/products/california-almonds.jpg",
	})
	env.products.add(&domain.Product{
		ID: saffronID, Name: "Kashmiri Saffron", Slug: strPtr("kashmiri-saffron"),
		Price: 49900, Category: "premium spices", InStock: true,
	})

	denylist := redisrepo.NewTokenDenylist(client)
	producer := event.NewProducer(env.published, logger)
	resolver := service.NewResolver(env.products, false, logger)
	catalog := service.NewCatalogService(env.products, logger)

	svc := Services{
		Catalog:        catalog,
		Resolver:       resolver,
		Reviews:        service.NewReviewService(env.reviews, env.products, producer, logger),
		RecentlyViewed: service.NewRecentlyViewedService(redisrepo.NewRecentlyViewedStore(client, time.Hour, logger), logger),
		Auth:           service.NewAuthService(env.users, denylist, env.jwt, producer, logger),
		Account:        service.NewAccountService(env.profiles, env.wishlist, logger),
		Admin:          service.NewAdminService(env.dashboard, env.users, env.products, logger),
		Sessions:       session.NewFactory(env.carts, 10, logger),
	}

	env.router = NewRouter(
		svc,
		auth.NewTokenValidator(env.jwt, denylist),
		health.NewHandler(),
		RouterConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			VisitorCookieTTL:   time.Hour,
		},
		logger,
	)
	return env
}

// tokens issues a token pair for a user with the given role.
func (e *testEnv) tokens(t *testing.T, userID, role string) *auth.TokenPair {
	t.Helper()
	pair, err := e.jwt.IssuePair(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return pair
}

func (e *testEnv) token(t *testing.T, userID, role string) string {
	return e.tokens(t, userID, role).AccessToken
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(c *http.Cookie) requestOption {
	return func(r *http.Request) { r.AddCookie(c) }
}

func (e *testEnv) do(t *testing.T, method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data half of the response envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error.Code
}

func visitorCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "visitor_id" {
			return c
		}
	}
	t.Fatal("visitor cookie not set")
	return nil
}
