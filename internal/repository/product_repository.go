package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/artisan-shop/internal/db"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) (port.ProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &productRepository{q: db.New(pool)}, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	return mapProductsToDomain(rows)
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	rows, err := r.q.ListActiveProductsByCategory(ctx, db.ListActiveProductsByCategoryParams{
		CategoryID: categoryID,
		Limit:      int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListActiveProductsByCategory: %w", err)
	}

	return mapProductsToDomain(rows)
}

func (r *productRepository) UpdatePricing(ctx context.Context, id uuid.UUID, update port.PricingUpdate) (domain.Product, error) {
	row, err := r.q.UpdateProductPricing(ctx, db.UpdateProductPricingParams{
		ID:                 id,
		DolarPrice:         ptrToNullDecimal(update.DolarPrice),
		DiscountPercentage: ptrToNullDecimal(update.DiscountPercentage),
		Active:             update.Active,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.UpdateProductPricing: %w", err)
	}

	return mapProductToDomain(row)
}

// InsertProduct adds a catalog entry. Catalog management lives in the hosted
// admin, so this serves seeding and tests.
func InsertProduct(ctx context.Context, pool *pgxpool.Pool, p domain.Product) error {
	media, err := json.Marshal(p.Media)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	if p.Media == nil {
		media = []byte(`[]`)
	}

	err = db.New(pool).InsertProduct(ctx, db.InsertProductParams{
		ID:                 p.ID,
		NameEs:             p.NameES,
		NameEn:             p.NameEN,
		DescriptionEs:      p.DescriptionES,
		DescriptionEn:      p.DescriptionEN,
		DolarPrice:         ptrToNullDecimal(p.DolarPrice),
		DiscountPercentage: ptrToNullDecimal(p.DiscountPercentage),
		CategoryID:         ptrToNullUUID(p.CategoryID),
		Media:              media,
		Active:             p.Active,
	})
	if err != nil {
		return fmt.Errorf("q.InsertProduct: %w", err)
	}

	return nil
}
