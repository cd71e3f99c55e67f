package discount

import (
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Compute returns the discount amount and final total a code yields on cartTotal.
//
// A fixed discount floors the final total at zero. Unless legacyFixed is set the
// reported amount is capped at cartTotal as well, so it always equals the actual
// reduction. A total override sets the final total outright; its amount goes
// negative when the override exceeds cartTotal.
func Compute(code domain.DiscountCode, cartTotal decimal.Decimal, legacyFixed bool) (amount, final decimal.Decimal) {
	switch code.DiscountType {
	case domain.DiscountPercentage:
		amount = cartTotal.Mul(code.DiscountValue).Div(hundred)
		final = cartTotal.Sub(amount)
	case domain.DiscountFixed:
		amount = code.DiscountValue
		final = decimal.Max(decimal.Zero, cartTotal.Sub(amount))
		if !legacyFixed && amount.GreaterThan(cartTotal) {
			amount = decimal.Max(decimal.Zero, cartTotal)
		}
	case domain.DiscountTotalOverride:
		final = code.DiscountValue
		amount = cartTotal.Sub(final)
	default:
		final = cartTotal
		amount = decimal.Zero
	}

	return amount, final
}
