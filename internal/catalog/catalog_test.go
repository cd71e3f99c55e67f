package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/catalog"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	byCategory []domain.Product
	err        error
}

func (f fakeProducts) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	for _, p := range f.byCategory {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f fakeProducts) ListProducts(context.Context) ([]domain.Product, error) {
	return f.byCategory, f.err
}

func (f fakeProducts) ListByCategory(_ context.Context, _ uuid.UUID, limit int) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCategory[:min(limit, len(f.byCategory))], nil
}

func (f fakeProducts) UpdatePricing(context.Context, uuid.UUID, port.PricingUpdate) (domain.Product, error) {
	return domain.Product{}, errors.New("not supported")
}

func TestRelated(t *testing.T) {
	category := uuid.New()
	products := make([]domain.Product, 4)
	for i := range products {
		products[i] = domain.Product{ID: uuid.New(), CategoryID: &category, Active: true}
	}

	svc, err := catalog.NewService(fakeProducts{byCategory: products})
	require.NoError(t, err)

	related := svc.Related(t.Context(), products[0], 2)
	require.Len(t, related, 2)
	assert.Equal(t, products[1].ID, related[0].ID)
	assert.Equal(t, products[2].ID, related[1].ID)

	assert.Empty(t, svc.Related(t.Context(), domain.Product{ID: uuid.New()}, 2))

	got, err := svc.Product(t.Context(), products[3].ID)
	require.NoError(t, err)
	assert.Equal(t, products[3].ID, got.ID)

	_, err = svc.Product(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelated_FailureYieldsEmpty(t *testing.T) {
	category := uuid.New()
	svc, err := catalog.NewService(fakeProducts{err: errors.New("timeout")})
	require.NoError(t, err)

	related := svc.Related(t.Context(), domain.Product{ID: uuid.New(), CategoryID: &category}, 4)
	assert.NotNil(t, related)
	assert.Empty(t, related)
}
