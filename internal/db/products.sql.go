package db

import (
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name_es, name_en, description_es, description_en, dolar_price,
       discount_percentage, category_id, media, active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.NameEs,
		&i.NameEn,
		&i.DescriptionEs,
		&i.DescriptionEn,
		&i.DolarPrice,
		&i.DiscountPercentage,
		&i.CategoryID,
		&i.Media,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProduct = `-- name: GetProduct :one
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	return scanProduct(row)
}

const listProducts = `-- name: ListProducts :many
SELECT ` + productColumns + `
FROM products
ORDER BY created_at, id
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listActiveProductsByCategory = `-- name: ListActiveProductsByCategory :many
SELECT ` + productColumns + `
FROM products
WHERE category_id = $1 AND active
ORDER BY created_at DESC, id
LIMIT $2
`

type ListActiveProductsByCategoryParams struct {
	CategoryID uuid.UUID
	Limit      int32
}

func (q *Queries) ListActiveProductsByCategory(ctx context.Context, arg ListActiveProductsByCategoryParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, listActiveProductsByCategory, arg.CategoryID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertProduct = `-- name: InsertProduct :exec
INSERT INTO products (id, name_es, name_en, description_es, description_en, dolar_price,
                      discount_percentage, category_id, media, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type InsertProductParams struct {
	ID                 uuid.UUID
	NameEs             string
	NameEn             string
	DescriptionEs      string
	DescriptionEn      string
	DolarPrice         decimal.NullDecimal
	DiscountPercentage decimal.NullDecimal
	CategoryID         uuid.NullUUID
	Media              []byte
	Active             bool
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) error {
	_, err := q.db.Exec(ctx, insertProduct,
		arg.ID,
		arg.NameEs,
		arg.NameEn,
		arg.DescriptionEs,
		arg.DescriptionEn,
		arg.DolarPrice,
		arg.DiscountPercentage,
		arg.CategoryID,
		arg.Media,
		arg.Active,
	)
	return err
}

const updateProductPricing = `-- name: UpdateProductPricing :one
UPDATE products
SET dolar_price = $2, discount_percentage = $3, active = $4, updated_at = NOW()
WHERE id = $1
RETURNING ` + productColumns + `
`

type UpdateProductPricingParams struct {
	ID                 uuid.UUID
	DolarPrice         decimal.NullDecimal
	DiscountPercentage decimal.NullDecimal
	Active             bool
}

func (q *Queries) UpdateProductPricing(ctx context.Context, arg UpdateProductPricingParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProductPricing, arg.ID, arg.DolarPrice, arg.DiscountPercentage, arg.Active)
	return scanProduct(row)
}
