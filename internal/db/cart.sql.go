package db

import (
	"context"
	"github.com/google/uuid"
	"time"
)

const getCart = `-- name: GetCart :many
SELECT ci.quantity, ci.created_at,
       p.id, p.name_es, p.name_en, p.description_es, p.description_en, p.dolar_price,
       p.discount_percentage, p.category_id, p.media, p.active, p.created_at, p.updated_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.owner_id = $1
ORDER BY ci.created_at, p.id
`

type GetCartRow struct {
	Quantity  int32
	CreatedAt time.Time
	Product   Product
}

func (q *Queries) GetCart(ctx context.Context, ownerID string) ([]GetCartRow, error) {
	rows, err := q.db.Query(ctx, getCart, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetCartRow
	for rows.Next() {
		var i GetCartRow
		if err := rows.Scan(
			&i.Quantity,
			&i.CreatedAt,
			&i.Product.ID,
			&i.Product.NameEs,
			&i.Product.NameEn,
			&i.Product.DescriptionEs,
			&i.Product.DescriptionEn,
			&i.Product.DolarPrice,
			&i.Product.DiscountPercentage,
			&i.Product.CategoryID,
			&i.Product.Media,
			&i.Product.Active,
			&i.Product.CreatedAt,
			&i.Product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const addItem = `-- name: AddItem :exec
INSERT INTO cart_items (owner_id, product_id, quantity, created_at)
VALUES ($1, $2, $3, $4)
`

type AddItemParams struct {
	OwnerID   string
	ProductID uuid.UUID
	Quantity  int32
	CreatedAt time.Time
}

func (q *Queries) AddItem(ctx context.Context, arg AddItemParams) error {
	_, err := q.db.Exec(ctx, addItem, arg.OwnerID, arg.ProductID, arg.Quantity, arg.CreatedAt)
	return err
}

const deleteCart = `-- name: DeleteCart :exec
DELETE FROM cart_items
WHERE owner_id = $1
`

func (q *Queries) DeleteCart(ctx context.Context, ownerID string) error {
	_, err := q.db.Exec(ctx, deleteCart, ownerID)
	return err
}
