package repository

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/db"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/shopspring/decimal"
)

func mapProductToDomain(row db.Product) (domain.Product, error) {
	var media []domain.Media
	if len(row.Media) > 0 {
		if err := json.Unmarshal(row.Media, &media); err != nil {
			return domain.Product{}, fmt.Errorf("media of product[%s] is not valid: %w", row.ID, err)
		}
	}

	p := domain.Product{
		ID:                 row.ID,
		NameES:             row.NameEs,
		NameEN:             row.NameEn,
		DescriptionES:      row.DescriptionEs,
		DescriptionEN:      row.DescriptionEn,
		DolarPrice:         nullDecimalToPtr(row.DolarPrice),
		DiscountPercentage: nullDecimalToPtr(row.DiscountPercentage),
		Media:              media,
		Active:             row.Active,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
	if row.CategoryID.Valid {
		id := row.CategoryID.UUID
		p.CategoryID = &id
	}

	return p, nil
}

func mapProductsToDomain(rows []db.Product) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(rows))

	for _, row := range rows {
		p, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}

		products = append(products, p)
	}

	return products, nil
}

func nullDecimalToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal

	return &v
}

func ptrToNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func ptrToNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}
