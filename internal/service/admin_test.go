package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/seed"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/pagination"
)

func newTestAdmin() (*AdminService, *mockDashboardRepository, *mockUserRepository, *mockProductRepository) {
	dash := new(mockDashboardRepository)
	users := new(mockUserRepository)
	products := new(mockProductRepository)
	return NewAdminService(dash, users, products, newTestLogger()), dash, users, products
}

func TestAdminDashboard(t *testing.T) {
	svc, dash, _, _ := newTestAdmin()
	ctx := context.Background()

	dash.On("Counts", ctx).Return(&domain.DashboardCounts{Products: 26, Users: 3}, nil)

	counts, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, counts.Products)
}

func TestAdminUsers(t *testing.T) {
	svc, _, users, _ := newTestAdmin()
	ctx := context.Background()
	params := pagination.DefaultParams()

	users.On("List", ctx, params).Return([]domain.User{{ID: "u1"}}, 1, nil)

	page, err := svc.Users(ctx, params)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalPages)
}

func TestAdminSeed_CountsInsertsAndUpdates(t *testing.T) {
	svc, _, _, products := newTestAdmin()
	ctx := context.Background()

	sample, _ := seed.Products(seed.SetSample)
	products.On("UpsertByName", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "California Almonds"
	})).Return(false, nil)
	products.On("UpsertByName", ctx, mock.Anything).Return(true, nil)

	result, err := svc.Seed(ctx, seed.SetSample)
	require.NoError(t, err)
	assert.Equal(t, seed.SetSample, result.Set)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, len(sample)-1, result.Inserted)
	products.AssertNumberOfCalls(t, "UpsertByName", len(sample))
}

func TestAdminSeed_UnknownSet(t *testing.T) {
	svc, _, _, _ := newTestAdmin()
	_, err := svc.Seed(context.Background(), "everything")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdminSeed_StopsOnFailure(t *testing.T) {
	svc, _, _, products := newTestAdmin()
	ctx := context.Background()

	products.On("UpsertByName", ctx, mock.Anything).Return(false, errors.New("deadlock detected")).Once()

	_, err := svc.Seed(ctx, seed.SetCurated)
	assert.ErrorContains(t, err, "deadlock detected")
	products.AssertNumberOfCalls(t, "UpsertByName", 1)
}
