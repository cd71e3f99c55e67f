package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/artisan-shop/internal/db"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items")
	}

	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	var code *string
	if order.DiscountCode != "" {
		code = &order.DiscountCode
	}

	_, err = withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if code != nil {
			rows, err := q.IncrementDiscountUses(ctx, *code)
			if err != nil {
				return struct{}{}, fmt.Errorf("q.IncrementDiscountUses: %w", err)
			}
			if rows == 0 {
				return struct{}{}, fmt.Errorf("code[%s]: %w", *code, domain.ErrDiscountUsedUp)
			}
		}

		err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:             order.ID,
			OwnerID:        order.OwnerID,
			SessionID:      order.SessionID,
			Status:         string(order.Status),
			Address:        address,
			Currency:       order.Total.Currency.String(),
			Subtotal:       order.Subtotal.Amount,
			Shipping:       order.Shipping.Amount,
			DiscountCode:   code,
			DiscountAmount: order.DiscountAmount,
			Total:          order.Total.Amount,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		for _, item := range order.Items {
			err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				UnitPrice: item.UnitPrice.Amount,
				Quantity:  int32(item.Quantity),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.CreateOrderItem[%s]: %w", item.ProductID, err)
			}
		}

		return struct{}{}, nil
	})

	return err
}
