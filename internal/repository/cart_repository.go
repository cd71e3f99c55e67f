package repository

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/artisan-shop/internal/db"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"time"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

// ReplaceCart overwrites the stored cart of cart.OwnerID with its items.
func (r *cartRepository) ReplaceCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.DeleteCart(ctx, cart.OwnerID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCart: %w", err)
		}

		now := time.Now()
		for i, item := range cart.Items {
			err := q.AddItem(ctx, db.AddItemParams{
				OwnerID:   cart.OwnerID,
				ProductID: item.Product.ID,
				Quantity:  int32(item.Quantity),
				// keeps cart order stable on read
				CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.AddItem[%s]: %w", item.Product.ID, err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartItem, error) {
	product, err := mapProductToDomain(row.Product)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return domain.CartItem{
		Product:  product,
		Quantity: int(row.Quantity),
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
