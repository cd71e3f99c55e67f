package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/artisan-shop/internal/db"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
)

type discountRepository struct {
	q *db.Queries
}

func NewDiscount(pool *pgxpool.Pool) (port.DiscountRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &discountRepository{q: db.New(pool)}, nil
}

func (r *discountRepository) FindActiveByCode(ctx context.Context, code string) (domain.DiscountCode, error) {
	if code == "" {
		return domain.DiscountCode{}, fmt.Errorf("code is empty")
	}

	row, err := r.q.GetActiveDiscountByCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DiscountCode{}, fmt.Errorf("code[%s]: %w", code, domain.ErrNotFound)
	}
	if err != nil {
		return domain.DiscountCode{}, fmt.Errorf("q.GetActiveDiscountByCode: %w", err)
	}

	return mapDiscountToDomain(row)
}

func mapDiscountToDomain(row db.DiscountCode) (domain.DiscountCode, error) {
	typ := domain.DiscountType(row.DiscountType)
	if !typ.Valid() {
		return domain.DiscountCode{}, fmt.Errorf("discount_type[%s] is not valid", row.DiscountType)
	}

	dc := domain.DiscountCode{
		Code:              row.Code,
		Description:       row.Description,
		IsActive:          row.IsActive,
		DiscountType:      typ,
		DiscountValue:     row.DiscountValue,
		MinPurchaseAmount: row.MinPurchaseAmount,
		CurrentUses:       int(row.CurrentUses),
		ValidUntil:        row.ValidUntil,
	}
	if row.MaxUses != nil {
		maxUses := int(*row.MaxUses)
		dc.MaxUses = &maxUses
	}

	return dc, nil
}
