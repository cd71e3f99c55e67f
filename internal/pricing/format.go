package pricing

import (
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func localeTag(l domain.Locale) language.Tag {
	if l == domain.LocaleEN {
		return language.AmericanEnglish
	}

	return language.LatinAmericanSpanish
}

// Format renders an amount with its currency symbol and two decimals, using the
// locale's separators.
func Format(m domain.Money, l domain.Locale) string {
	p := message.NewPrinter(localeTag(l))

	return p.Sprintf("%v%.2f", currency.NarrowSymbol(m.Currency), m.Amount.Round(2).InexactFloat64())
}
