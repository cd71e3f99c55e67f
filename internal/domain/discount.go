package domain

import (
	"github.com/shopspring/decimal"
	"time"
)

type DiscountType string

const (
	DiscountPercentage    DiscountType = "percentage"
	DiscountFixed         DiscountType = "fixed"
	DiscountTotalOverride DiscountType = "total_override"
)

func (t DiscountType) Valid() bool {
	switch t {
	case DiscountPercentage, DiscountFixed, DiscountTotalOverride:
		return true
	}

	return false
}

// DiscountCode is a redeemable coupon as stored in the discount_codes table.
type DiscountCode struct {
	Code              string
	Description       string
	IsActive          bool
	DiscountType      DiscountType
	DiscountValue     decimal.Decimal
	MinPurchaseAmount decimal.Decimal
	MaxUses           *int
	CurrentUses       int
	ValidUntil        *time.Time
}

// UsesExhausted reports whether a usage cap is set and has been reached.
func (d DiscountCode) UsesExhausted() bool {
	return d.MaxUses != nil && d.CurrentUses >= *d.MaxUses
}

func (d DiscountCode) ExpiredAt(now time.Time) bool {
	return d.ValidUntil != nil && d.ValidUntil.Before(now)
}

// DiscountInfo is the outcome of a successful code validation, held by the
// shopper's session until removed. BaseTotal is the pre-discount total the
// amounts were computed against.
type DiscountInfo struct {
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalTotal     decimal.Decimal `json:"finalTotal"`
	Code           string          `json:"code"`
	Description    string          `json:"description,omitempty"`
	DiscountType   DiscountType    `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	BaseTotal      decimal.Decimal `json:"base_total"`
	AppliedAt      time.Time       `json:"applied_at"`
}
