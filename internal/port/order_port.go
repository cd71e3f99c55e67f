package port

import (
	"context"
	"github.com/nikolayk812/artisan-shop/internal/domain"
)

type OrderRepository interface {
	// CreateOrder stores the order with its items and, when the order carries a
	// discount code, counts one more use of it.
	CreateOrder(ctx context.Context, order domain.Order) error
}

type PaymentGateway interface {
	// StartSession returns the URL the shopper is redirected to for payment.
	StartSession(ctx context.Context, order domain.Order) (string, error)
}
