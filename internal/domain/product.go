package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// ParseLocale falls back to Spanish, the storefront default.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleEN {
		return LocaleEN
	}

	return LocaleES
}

type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type Product struct {
	ID            uuid.UUID
	NameES        string
	NameEN        string
	DescriptionES string
	DescriptionEN string

	// DolarPrice is the USD list price. Products without a price are still listed
	// but contribute nothing to a subtotal.
	DolarPrice *decimal.Decimal
	// DiscountPercentage is the product's own markdown in [0, 100].
	DiscountPercentage *decimal.Decimal

	CategoryID *uuid.UUID
	Media      []Media
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Name(l Locale) string {
	if l == LocaleEN && p.NameEN != "" {
		return p.NameEN
	}

	return p.NameES
}

func (p Product) Description(l Locale) string {
	if l == LocaleEN && p.DescriptionEN != "" {
		return p.DescriptionEN
	}

	return p.DescriptionES
}
