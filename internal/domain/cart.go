package domain

import (
	"github.com/google/uuid"
)

// MinQuantity and MaxQuantity bound the quantity a shopper can pick for a single line.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	Product  Product
	Quantity int
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the index of the line holding productID, or -1.
func (c Cart) Find(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}

	return -1
}

func (c Cart) TotalQuantity() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}

	return n
}

// Clone returns a deep enough copy for handing out snapshots: the item slice is copied.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)

	return Cart{OwnerID: c.OwnerID, Items: items}
}
