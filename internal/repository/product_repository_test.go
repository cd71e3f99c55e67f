package repository_test

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/nikolayk812/artisan-shop/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestProducts() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	repo, err := repository.NewProduct(suite.pool)
	require.NoError(t, err)

	category := suite.insertCategory()

	inCategory := randomProduct()
	inCategory.CategoryID = &category
	suite.insertProduct(inCategory)

	inactive := randomProduct()
	inactive.CategoryID = &category
	inactive.Active = false
	suite.insertProduct(inactive)

	other := suite.insertProduct(randomProduct())

	got, err := repo.GetProduct(ctx, inCategory.ID)
	require.NoError(t, err)
	assertCartItem(t, domain.CartItem{Product: inCategory}, domain.CartItem{Product: got})

	_, err = repo.GetProduct(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	related, err := repo.ListByCategory(ctx, category, 10)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, inCategory.ID, related[0].ID)

	_, err = repo.ListByCategory(ctx, category, 0)
	require.EqualError(t, err, "limit must be positive")

	price := decimal.RequireFromString("42.50")
	pct := decimal.NewFromInt(15)
	updated, err := repo.UpdatePricing(ctx, other.ID, port.PricingUpdate{
		DolarPrice:         &price,
		DiscountPercentage: &pct,
		Active:             false,
	})
	require.NoError(t, err)
	assert.True(t, price.Equal(*updated.DolarPrice))
	assert.True(t, pct.Equal(*updated.DiscountPercentage))
	assert.False(t, updated.Active)

	cleared, err := repo.UpdatePricing(ctx, other.ID, port.PricingUpdate{Active: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DolarPrice)
	assert.Nil(t, cleared.DiscountPercentage)

	_, err = repo.UpdatePricing(ctx, uuid.New(), port.PricingUpdate{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
