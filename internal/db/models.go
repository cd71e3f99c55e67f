package db

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Product struct {
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
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type DiscountCode struct {
	Code              string
	Description       string
	IsActive          bool
	DiscountType      string
	DiscountValue     decimal.Decimal
	MinPurchaseAmount decimal.Decimal
	MaxUses           *int32
	CurrentUses       int32
	ValidUntil        *time.Time
	CreatedAt         time.Time
}

type SessionState struct {
	SessionID string
	Key       string
	Value     []byte
	Version   int64
	UpdatedAt time.Time
}
