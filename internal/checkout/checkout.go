package checkout

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/nikolayk812/artisan-shop/internal/pricing"
	"go.uber.org/zap"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrStaleDiscount = errors.New("discount was computed for a different cart total")
)

// AddressError lists the shipping address fields that failed validation.
type AddressError struct {
	Fields []string
}

func (e *AddressError) Error() string {
	return "invalid shipping address: " + strings.Join(e.Fields, ", ")
}

type Service struct {
	orders  port.OrderRepository
	payment port.PaymentGateway
	calc    pricing.Calculator
	now     func() time.Time
}

func NewService(orders port.OrderRepository, payment port.PaymentGateway, calc pricing.Calculator) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order repository is nil")
	}
	if payment == nil {
		return nil, fmt.Errorf("payment gateway is nil")
	}

	return &Service{orders: orders, payment: payment, calc: calc, now: time.Now}, nil
}

func ValidateAddress(a domain.ShippingAddress) error {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"street", a.Street},
		{"city", a.City},
		{"province", a.Province},
		{"country", a.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if a.Email != "" {
		if _, err := mail.ParseAddress(a.Email); err != nil {
			missing = append(missing, "email")
		}
	}

	if len(missing) > 0 {
		return &AddressError{Fields: missing}
	}

	return nil
}

type Placement struct {
	Order       domain.Order
	RedirectURL string
}

// PlaceOrder starts payment for the session's cart and records it as an order.
// Item names are kept in the shopper's locale. Nothing is stored and the cart
// is left as is when payment cannot start; the cart is cleared once the order
// is stored.
func (s *Service) PlaceOrder(ctx context.Context, sess *cart.Session, address domain.ShippingAddress, l domain.Locale) (Placement, error) {
	if err := ValidateAddress(address); err != nil {
		return Placement{}, err
	}

	info, err := sess.StoredDiscount(ctx)
	if err != nil {
		return Placement{}, fmt.Errorf("sess.StoredDiscount: %w", err)
	}

	c := sess.Snapshot()
	if c.IsEmpty() {
		return Placement{}, ErrEmptyCart
	}

	totals := s.calc.Totals(c, info)
	if totals.DiscountStale {
		return Placement{}, ErrStaleDiscount
	}

	order := domain.Order{
		ID:        uuid.New(),
		OwnerID:   sess.UserID(),
		SessionID: sess.ID(),
		Status:    domain.OrderPendingPayment,
		Address:   address,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
		CreatedAt: s.now(),
	}
	if info != nil && info.Valid {
		order.DiscountCode = info.Code
		order.DiscountAmount = info.DiscountAmount
	}
	for _, item := range c.Items {
		price, _ := pricing.EffectivePrice(item.Product)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name(l),
			UnitPrice: domain.NewMoney(price, s.calc.Currency),
			Quantity:  item.Quantity,
		})
	}

	url, err := s.payment.StartSession(ctx, order)
	if err != nil {
		return Placement{}, fmt.Errorf("payment.StartSession: %w", err)
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return Placement{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	zap.L().Info("order placed",
		zap.String("order", order.ID.String()),
		zap.String("session", order.SessionID),
		zap.String("total", order.Total.Amount.StringFixed(2)),
		zap.String("discount_code", order.DiscountCode))

	if err := sess.RemoveDiscount(ctx); err != nil {
		zap.L().Warn("failed to drop discount after order", zap.String("order", order.ID.String()), zap.Error(err))
	}
	if err := sess.Clear(ctx); err != nil {
		zap.L().Warn("failed to clear cart after order", zap.String("order", order.ID.String()), zap.Error(err))
	}

	return Placement{Order: order, RedirectURL: url}, nil
}
