package port

import (
	"context"
	"github.com/nikolayk812/artisan-shop/internal/domain"
)

type DiscountRepository interface {
	// FindActiveByCode returns domain.ErrNotFound when no active row matches code exactly.
	FindActiveByCode(ctx context.Context, code string) (domain.DiscountCode, error)
}
