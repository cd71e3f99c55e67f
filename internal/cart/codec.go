package cart

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/shopspring/decimal"
	"time"
)

// Keys under which session state is stored.
const (
	KeyCart     = "cart"
	KeyDiscount = "discountInfo"
)

type storedProduct struct {
	ID                 uuid.UUID        `json:"id"`
	NameES             string           `json:"name_es"`
	NameEN             string           `json:"name_en"`
	DolarPrice         *decimal.Decimal `json:"dolar_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	CategoryID         *uuid.UUID       `json:"category_id,omitempty"`
	Media              []domain.Media   `json:"media,omitempty"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type storedItem struct {
	Product  storedProduct `json:"product"`
	Quantity int           `json:"quantity"`
}

func encodeCart(c domain.Cart) ([]byte, error) {
	items := make([]storedItem, 0, len(c.Items))
	for _, item := range c.Items {
		p := item.Product
		items = append(items, storedItem{
			Product: storedProduct{
				ID:                 p.ID,
				NameES:             p.NameES,
				NameEN:             p.NameEN,
				DolarPrice:         p.DolarPrice,
				DiscountPercentage: p.DiscountPercentage,
				CategoryID:         p.CategoryID,
				Media:              p.Media,
				UpdatedAt:          p.UpdatedAt,
			},
			Quantity: item.Quantity,
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

func decodeCart(data []byte) ([]domain.CartItem, error) {
	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.CartItem, 0, len(stored))
	for _, s := range stored {
		items = append(items, domain.CartItem{
			Product: domain.Product{
				ID:                 s.Product.ID,
				NameES:             s.Product.NameES,
				NameEN:             s.Product.NameEN,
				DolarPrice:         s.Product.DolarPrice,
				DiscountPercentage: s.Product.DiscountPercentage,
				CategoryID:         s.Product.CategoryID,
				Media:              s.Product.Media,
				Active:             true,
				UpdatedAt:          s.Product.UpdatedAt,
			},
			Quantity: s.Quantity,
		})
	}

	return items, nil
}

func encodeDiscount(info domain.DiscountInfo) ([]byte, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

func decodeDiscount(data []byte) (*domain.DiscountInfo, error) {
	var info domain.DiscountInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return &info, nil
}
