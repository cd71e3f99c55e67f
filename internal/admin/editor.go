// Package admin backs the product price editor.
package admin

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"sync"
)

var ErrInvalidPricing = errors.New("invalid pricing")

type PricingInput struct {
	DolarPrice         *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	Active             bool
}

func (in PricingInput) Validate() error {
	if in.DolarPrice != nil && in.DolarPrice.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidPricing)
	}
	if in.DiscountPercentage != nil {
		if in.DiscountPercentage.IsNegative() || in.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrInvalidPricing)
		}
	}

	return nil
}

// Editor keeps the product list the admin works on. Edits show up in the list
// at once and are rolled back if the store rejects them.
type Editor struct {
	repo port.ProductRepository

	mu       sync.Mutex
	products []domain.Product
}

func NewEditor(repo port.ProductRepository) (*Editor, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is nil")
	}

	return &Editor{repo: repo}, nil
}

func (e *Editor) Load(ctx context.Context) error {
	products, err := e.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("repo.ListProducts: %w", err)
	}

	e.mu.Lock()
	e.products = products
	e.mu.Unlock()

	return nil
}

func (e *Editor) Products() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Product, len(e.products))
	copy(out, e.products)

	return out
}

func (e *Editor) UpdatePricing(ctx context.Context, id uuid.UUID, in PricingInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	e.mu.Lock()
	i := e.indexOf(id)
	if i < 0 {
		e.mu.Unlock()
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
	}
	previous := e.products[i]
	optimistic := previous
	optimistic.DolarPrice = in.DolarPrice
	optimistic.DiscountPercentage = in.DiscountPercentage
	optimistic.Active = in.Active
	e.products[i] = optimistic
	e.mu.Unlock()

	saved, err := e.repo.UpdatePricing(ctx, id, port.PricingUpdate{
		DolarPrice:         in.DolarPrice,
		DiscountPercentage: in.DiscountPercentage,
		Active:             in.Active,
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	// the list may have been reloaded meanwhile
	if i = e.indexOf(id); i < 0 {
		if err != nil {
			return domain.Product{}, fmt.Errorf("repo.UpdatePricing: %w", err)
		}
		return saved, nil
	}

	if err != nil {
		e.products[i] = previous
		zap.L().Warn("product pricing update rolled back", zap.String("product", id.String()), zap.Error(err))
		return domain.Product{}, fmt.Errorf("repo.UpdatePricing: %w", err)
	}
	e.products[i] = saved

	return saved, nil
}

func (e *Editor) indexOf(id uuid.UUID) int {
	for i, p := range e.products {
		if p.ID == id {
			return i
		}
	}

	return -1
}
