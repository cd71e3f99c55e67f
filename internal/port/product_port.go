package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/shopspring/decimal"
)

type PricingUpdate struct {
	DolarPrice         *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	Active             bool
}

type ProductRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.Product, error)
	UpdatePricing(ctx context.Context, id uuid.UUID, update PricingUpdate) (domain.Product, error)
}
