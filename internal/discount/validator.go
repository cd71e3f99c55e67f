// Package discount checks coupon codes against the store and works out their effect.
package discount

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"go.uber.org/zap"
	"strings"
	"time"
)

type Validator struct {
	repo        port.DiscountRepository
	now         func() time.Time
	legacyFixed bool
}

type Option func(*Validator)

func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// WithLegacyFixedAmount reports a fixed discount's full value even when it
// exceeds the cart total.
func WithLegacyFixedAmount() Option {
	return func(v *Validator) {
		v.legacyFixed = true
	}
}

func NewValidator(repo port.DiscountRepository, opts ...Option) (*Validator, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository is nil")
	}

	v := &Validator{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Validate looks the code up and, when it is redeemable against cartTotal
// (subtotal plus shipping), returns the resulting DiscountInfo.
func (v *Validator) Validate(ctx context.Context, code string, cartTotal domain.Money) (domain.DiscountInfo, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return domain.DiscountInfo{}, ErrEmptyCode
	}

	dc, err := v.repo.FindActiveByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DiscountInfo{}, ErrInvalidCode
		}
		zap.L().Error("discount lookup failed", zap.String("code", normalized), zap.Error(err))
		return domain.DiscountInfo{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	if !dc.IsActive {
		return domain.DiscountInfo{}, ErrInvalidCode
	}
	if dc.UsesExhausted() {
		return domain.DiscountInfo{}, ErrMaxUsesReached
	}
	if dc.ExpiredAt(v.now()) {
		return domain.DiscountInfo{}, ErrExpired
	}
	if cartTotal.Amount.LessThan(dc.MinPurchaseAmount) {
		return domain.DiscountInfo{}, &MinimumNotMetError{
			Minimum: domain.NewMoney(dc.MinPurchaseAmount, cartTotal.Currency),
		}
	}

	amount, final := Compute(dc, cartTotal.Amount, v.legacyFixed)

	return domain.DiscountInfo{
		Valid:          true,
		DiscountAmount: amount,
		FinalTotal:     final,
		Code:           dc.Code,
		Description:    dc.Description,
		DiscountType:   dc.DiscountType,
		DiscountValue:  dc.DiscountValue,
		BaseTotal:      cartTotal.Amount,
		AppliedAt:      v.now(),
	}, nil
}
