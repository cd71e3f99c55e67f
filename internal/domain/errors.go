package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10")
	ErrVersionConflict = errors.New("version conflict")
	ErrDiscountUsedUp  = errors.New("discount code reached its maximum uses")
)
