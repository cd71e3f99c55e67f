package db

import (
	"context"
)

const getActiveDiscountByCode = `-- name: GetActiveDiscountByCode :one
SELECT code, description, is_active, discount_type, discount_value, min_purchase_amount,
       max_uses, current_uses, valid_until, created_at
FROM discount_codes
WHERE code = $1 AND is_active
`

func (q *Queries) GetActiveDiscountByCode(ctx context.Context, code string) (DiscountCode, error) {
	row := q.db.QueryRow(ctx, getActiveDiscountByCode, code)
	var i DiscountCode
	err := row.Scan(
		&i.Code,
		&i.Description,
		&i.IsActive,
		&i.DiscountType,
		&i.DiscountValue,
		&i.MinPurchaseAmount,
		&i.MaxUses,
		&i.CurrentUses,
		&i.ValidUntil,
		&i.CreatedAt,
	)
	return i, err
}

const incrementDiscountUses = `-- name: IncrementDiscountUses :execrows
UPDATE discount_codes
SET current_uses = current_uses + 1
WHERE code = $1 AND (max_uses IS NULL OR current_uses < max_uses)
`

func (q *Queries) IncrementDiscountUses(ctx context.Context, code string) (int64, error) {
	result, err := q.db.Exec(ctx, incrementDiscountUses, code)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
