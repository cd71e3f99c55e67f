// Package checkout builds the order recap and turns a cart into an order.
package checkout

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/pricing"
)

type SummaryLine struct {
	ProductID      uuid.UUID
	Name           string
	Quantity       int
	UnitPrice      *domain.Money
	LineTotal      domain.Money
	FormattedPrice string
	FormattedTotal string
}

type Summary struct {
	Lines    []SummaryLine
	Totals   pricing.Totals
	Discount *domain.DiscountInfo

	Subtotal string
	Shipping string
	Savings  string
	Total    string
}

// Summary recaps the session's cart for the address step. The discount is read
// back from session storage as stored, so it can be stale against the current
// cart; Totals.DiscountStale tells.
func (s *Service) Summary(ctx context.Context, sess *cart.Session, l domain.Locale) (Summary, error) {
	info, err := sess.StoredDiscount(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("sess.StoredDiscount: %w", err)
	}

	c := sess.Snapshot()
	totals := s.calc.Totals(c, info)

	lines := make([]SummaryLine, 0, len(c.Items))
	for _, item := range c.Items {
		line := SummaryLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name(l),
			Quantity:  item.Quantity,
			LineTotal: domain.ZeroMoney(s.calc.Currency),
		}
		if price, ok := pricing.EffectivePrice(item.Product); ok {
			unit := domain.NewMoney(price, s.calc.Currency)
			total, _ := pricing.LineTotal(item)
			line.UnitPrice = &unit
			line.LineTotal = domain.NewMoney(total, s.calc.Currency)
			line.FormattedPrice = pricing.Format(unit, l)
		}
		line.FormattedTotal = pricing.Format(line.LineTotal, l)
		lines = append(lines, line)
	}

	return Summary{
		Lines:    lines,
		Totals:   totals,
		Discount: info,
		Subtotal: pricing.Format(totals.Subtotal, l),
		Shipping: pricing.Format(totals.Shipping, l),
		Savings:  pricing.Format(totals.Discount, l),
		Total:    pricing.Format(totals.Total, l),
	}, nil
}
