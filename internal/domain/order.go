package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
	OrderCancelled      OrderStatus = "cancelled"
)

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID             uuid.UUID
	OwnerID        string
	SessionID      string
	Status         OrderStatus
	Items          []OrderItem
	Address        ShippingAddress
	Subtotal       Money
	Shipping       Money
	DiscountCode   string
	DiscountAmount decimal.Decimal
	Total          Money

	CreatedAt time.Time
}

type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice Money
	Quantity  int
}
