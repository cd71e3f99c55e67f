// Package pricing derives cart totals. Everything here is pure: no I/O, no clock.
package pricing

import (
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice is the unit price after the product's own markdown.
// ok is false when the product carries no price.
func EffectivePrice(p domain.Product) (decimal.Decimal, bool) {
	if p.DolarPrice == nil {
		return decimal.Zero, false
	}

	pct := decimal.Zero
	if p.DiscountPercentage != nil {
		pct = *p.DiscountPercentage
	}

	return p.DolarPrice.Mul(decimal.NewFromInt(1).Sub(pct.Div(hundred))), true
}

// LineTotal is the effective price times the line quantity.
func LineTotal(item domain.CartItem) (decimal.Decimal, bool) {
	price, ok := EffectivePrice(item.Product)
	if !ok {
		return decimal.Zero, false
	}

	return price.Mul(decimal.NewFromInt(int64(item.Quantity))), true
}

// Subtotal sums effective price times quantity over the cart.
// Unpriced lines contribute zero.
func Subtotal(cart domain.Cart, cur currency.Unit) domain.Money {
	total := decimal.Zero
	for _, item := range cart.Items {
		if line, ok := LineTotal(item); ok {
			total = total.Add(line)
		}
	}

	return domain.NewMoney(total, cur)
}

// Shipping charges the flat fee for any non-empty cart.
func Shipping(cart domain.Cart, fee domain.Money) domain.Money {
	if cart.IsEmpty() {
		return domain.ZeroMoney(fee.Currency)
	}

	return fee
}

type Totals struct {
	Subtotal         domain.Money
	Shipping         domain.Money
	PreDiscountTotal domain.Money
	Discount         domain.Money
	Total            domain.Money

	// DiscountStale is set when the applied discount was computed against a
	// different pre-discount total than the current one.
	DiscountStale bool
}

type Calculator struct {
	Currency    currency.Unit
	ShippingFee domain.Money
}

func NewCalculator(shippingFee domain.Money) Calculator {
	return Calculator{Currency: shippingFee.Currency, ShippingFee: shippingFee}
}

// Totals computes the figures shown on cart and checkout pages. With a discount
// applied, its FinalTotal is used as is; it is not re-derived here.
func (c Calculator) Totals(cart domain.Cart, discount *domain.DiscountInfo) Totals {
	subtotal := Subtotal(cart, c.Currency)
	shipping := Shipping(cart, c.ShippingFee)
	pre := subtotal.Add(shipping)

	t := Totals{
		Subtotal:         subtotal,
		Shipping:         shipping,
		PreDiscountTotal: pre,
		Discount:         domain.ZeroMoney(c.Currency),
		Total:            pre,
	}

	if discount == nil || !discount.Valid {
		return t
	}

	t.Discount = domain.NewMoney(discount.DiscountAmount, c.Currency)
	t.Total = domain.NewMoney(discount.FinalTotal, c.Currency)
	t.DiscountStale = !discount.BaseTotal.Equal(pre.Amount)

	return t
}
