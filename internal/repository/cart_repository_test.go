package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestReplaceCart() {
	defer suite.deleteAll()

	repo, err := repository.NewCart(suite.pool)
	suite.Require().NoError(err)

	p1 := suite.insertProduct(randomProduct())
	p2 := suite.insertProduct(randomProduct())
	unpriced := randomProduct()
	unpriced.DolarPrice = nil
	unpriced.DiscountPercentage = nil
	unpriced.Media = nil
	p3 := suite.insertProduct(unpriced)

	tests := []struct {
		name      string
		ownerID   string
		first     []domain.CartItem
		second    []domain.CartItem
		wantError string
	}{
		{
			name:    "replace empty cart: ok",
			ownerID: gofakeit.UUID(),
			second: []domain.CartItem{
				{Product: p1, Quantity: 2},
				{Product: p2, Quantity: 1},
			},
		},
		{
			name:    "replace overwrites previous items: ok",
			ownerID: gofakeit.UUID(),
			first: []domain.CartItem{
				{Product: p1, Quantity: 2},
			},
			second: []domain.CartItem{
				{Product: p2, Quantity: 4},
				{Product: p3, Quantity: 1},
			},
		},
		{
			name:    "replace with empty cart clears it: ok",
			ownerID: gofakeit.UUID(),
			first: []domain.CartItem{
				{Product: p1, Quantity: 2},
			},
		},
		{
			name:      "replace with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.first != nil {
				require.NoError(t, repo.ReplaceCart(ctx, domain.Cart{OwnerID: tt.ownerID, Items: tt.first}))
			}

			err := repo.ReplaceCart(ctx, domain.Cart{OwnerID: tt.ownerID, Items: tt.second})
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			cart, err := repo.GetCart(ctx, tt.ownerID)
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			require.Len(t, cart.Items, len(tt.second))
			for i, expected := range tt.second {
				assertCartItem(t, expected, cart.Items[i])
			}
		})
	}
}

func (suite *repositorySuite) TestGetCart() {
	defer suite.deleteAll()

	repo, err := repository.NewCart(suite.pool)
	suite.Require().NoError(err)

	t := suite.T()

	cart, err := repo.GetCart(t.Context(), gofakeit.UUID())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = repo.GetCart(t.Context(), "")
	require.EqualError(t, err, "ownerID is empty")
}

func assertCartItem(t *testing.T, expected, actual domain.CartItem) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	// timestamps are set by the database
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt", "UpdatedAt"),
		cmpopts.EquateEmpty(),
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.Product.CreatedAt.IsZero())
}
