package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/event"
	pkgkafka "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/kafka"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

// --- Product repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Int(1), args.Error(2)
}

func (m *mockProductRepository) product(args mock.Arguments) (*domain.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return m.product(m.Called(ctx, slug))
}

func (m *mockProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return m.product(m.Called(ctx, name))
}

func (m *mockProductRepository) FindByNameContaining(ctx context.Context, fragment string) (*domain.Product, error) {
	return m.product(m.Called(ctx, fragment))
}

func (m *mockProductRepository) First(ctx context.Context) (*domain.Product, error) {
	return m.product(m.Called(ctx))
}

func (m *mockProductRepository) ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, category, excludeID, limit)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *mockProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *mockProductRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	return m.Called(ctx, id, rating).Error(0)
}

func (m *mockProductRepository) UpsertByName(ctx context.Context, p *domain.Product) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

// --- Review repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID string, params pagination.Params) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, params)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSummary), args.Error(1)
}

func (m *mockReviewRepository) RatingAverage(ctx context.Context, productID string) (float64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Error(1)
}

// --- User / profile repositories ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User, p *domain.Profile) error {
	return m.Called(ctx, u, p).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Int(1), args.Error(2)
}

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

// --- Wishlist / dashboard ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]domain.WishlistItem)
	return items, args.Error(1)
}

func (m *mockWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

type mockDashboardRepository struct {
	mock.Mock
}

func (m *mockDashboardRepository) Counts(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

// --- Redis-backed stores ---

type mockRecentlyViewedStore struct {
	mock.Mock
}

func (m *mockRecentlyViewedStore) Load(ctx context.Context, visitorID string) ([]domain.RecentlyViewedProduct, error) {
	args := m.Called(ctx, visitorID)
	list, _ := args.Get(0).([]domain.RecentlyViewedProduct)
	return list, args.Error(1)
}

func (m *mockRecentlyViewedStore) Save(ctx context.Context, visitorID string, list []domain.RecentlyViewedProduct) error {
	return m.Called(ctx, visitorID, list).Error(0)
}

func (m *mockRecentlyViewedStore) Clear(ctx context.Context, visitorID string) error {
	return m.Called(ctx, visitorID).Error(0)
}

// memDenylist is an in-memory TokenDenylist.
type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: map[string]time.Duration{}}
}

func (d *memDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// --- Events ---

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ *pkgkafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProducer() (*event.Producer, *recordingPublisher) {
	pub := &recordingPublisher{}
	return event.NewProducer(pub, newTestLogger()), pub
}
