package db

import (
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const createOrder = `-- name: CreateOrder :exec
INSERT INTO orders (id, owner_id, session_id, status, address, currency, subtotal, shipping,
                    discount_code, discount_amount, total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateOrderParams struct {
	ID             uuid.UUID
	OwnerID        string
	SessionID      string
	Status         string
	Address        []byte
	Currency       string
	Subtotal       decimal.Decimal
	Shipping       decimal.Decimal
	DiscountCode   *string
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) error {
	_, err := q.db.Exec(ctx, createOrder,
		arg.ID,
		arg.OwnerID,
		arg.SessionID,
		arg.Status,
		arg.Address,
		arg.Currency,
		arg.Subtotal,
		arg.Shipping,
		arg.DiscountCode,
		arg.DiscountAmount,
		arg.Total,
	)
	return err
}

const createOrderItem = `-- name: CreateOrderItem :exec
INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5)
`

type CreateOrderItemParams struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error {
	_, err := q.db.Exec(ctx, createOrderItem, arg.OrderID, arg.ProductID, arg.Name, arg.UnitPrice, arg.Quantity)
	return err
}
