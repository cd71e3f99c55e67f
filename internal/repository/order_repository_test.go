package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func (suite *repositorySuite) TestCreateOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	_, err := suite.pool.Exec(ctx, `
		INSERT INTO discount_codes (code, discount_type, discount_value, max_uses, current_uses)
		VALUES ('once', 'fixed', 5, 1, 0)`)
	require.NoError(t, err)

	repo, err := repository.NewOrder(suite.pool)
	require.NoError(t, err)

	p := suite.insertProduct(randomProduct())

	order := randomOrder(p)
	order.DiscountCode = "once"
	order.DiscountAmount = decimal.NewFromInt(5)
	require.NoError(t, repo.CreateOrder(ctx, order))

	var uses int
	require.NoError(t, suite.pool.QueryRow(ctx, "SELECT current_uses FROM discount_codes WHERE code = 'once'").Scan(&uses))
	assert.Equal(t, 1, uses)

	var items int
	require.NoError(t, suite.pool.QueryRow(ctx, "SELECT COUNT(*) FROM order_items WHERE order_id = $1", order.ID).Scan(&items))
	assert.Equal(t, 1, items)

	// the only use is taken, so the whole order is rolled back
	second := randomOrder(p)
	second.DiscountCode = "once"
	err = repo.CreateOrder(ctx, second)
	require.ErrorIs(t, err, domain.ErrDiscountUsedUp)

	var orders int
	require.NoError(t, suite.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE id = $1", second.ID).Scan(&orders))
	assert.Equal(t, 0, orders)

	require.NoError(t, repo.CreateOrder(ctx, randomOrder(p)))

	err = repo.CreateOrder(ctx, domain.Order{ID: uuid.New()})
	require.EqualError(t, err, "order has no items")
}

func randomOrder(p domain.Product) domain.Order {
	usd := func(d decimal.Decimal) domain.Money { return domain.NewMoney(d, currency.USD) }
	unit := *p.DolarPrice

	return domain.Order{
		ID:        uuid.New(),
		SessionID: gofakeit.UUID(),
		Status:    domain.OrderPendingPayment,
		Items: []domain.OrderItem{
			{ProductID: p.ID, Name: p.NameES, UnitPrice: usd(unit), Quantity: 2},
		},
		Address: domain.ShippingAddress{
			FullName: gofakeit.Name(),
			Email:    gofakeit.Email(),
			Phone:    gofakeit.Phone(),
			Street:   gofakeit.Street(),
			City:     gofakeit.City(),
			Province: gofakeit.State(),
			Country:  gofakeit.Country(),
		},
		Subtotal: usd(unit.Mul(decimal.NewFromInt(2))),
		Shipping: usd(decimal.NewFromInt(7)),
		Total:    usd(unit.Mul(decimal.NewFromInt(2)).Add(decimal.NewFromInt(7))),
	}
}
