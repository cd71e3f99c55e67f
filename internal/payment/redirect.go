// Package payment hands a placed order over to the hosted payment page.
package payment

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"net/url"
)

type redirectGateway struct {
	base      *url.URL
	returnURL string
}

// NewRedirectGateway builds payment links on the hosted checkout at baseURL.
// The shopper comes back to returnURL after paying.
func NewRedirectGateway(baseURL, returnURL string) (port.PaymentGateway, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("payment url[%s] is not absolute", baseURL)
	}

	return &redirectGateway{base: base, returnURL: returnURL}, nil
}

func (g *redirectGateway) StartSession(_ context.Context, order domain.Order) (string, error) {
	if order.ID == uuid.Nil || order.Total.Amount.IsNegative() {
		return "", fmt.Errorf("order[%s] cannot be paid", order.ID)
	}

	u := *g.base
	q := u.Query()
	q.Set("order_id", order.ID.String())
	q.Set("amount", order.Total.Amount.StringFixed(2))
	q.Set("currency", order.Total.Currency.String())
	if order.Address.Email != "" {
		q.Set("email", order.Address.Email)
	}
	if g.returnURL != "" {
		q.Set("return_url", g.returnURL)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
