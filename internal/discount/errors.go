package discount

import (
	"errors"
	"fmt"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/pricing"
)

var (
	ErrEmptyCode      = errors.New("discount code is empty")
	ErrInvalidCode    = errors.New("discount code is invalid or expired")
	ErrMaxUsesReached = domain.ErrDiscountUsedUp
	ErrExpired        = errors.New("discount code has expired")
	ErrLookupFailed   = errors.New("discount code lookup failed")
)

type MinimumNotMetError struct {
	Minimum domain.Money
}

func (e *MinimumNotMetError) Error() string {
	return fmt.Sprintf("minimum purchase amount not met: %s", e.Minimum.Amount.StringFixed(2))
}

// Message is the text shown to the shopper for a validation failure.
func Message(err error, l domain.Locale) string {
	var minErr *MinimumNotMetError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyCode):
		return pick(l, "Ingresa un código de descuento.", "Enter a discount code.")
	case errors.Is(err, ErrInvalidCode):
		return pick(l, "Código inválido o expirado.", "Invalid or expired code.")
	case errors.Is(err, ErrMaxUsesReached):
		return pick(l, "Este código alcanzó el máximo de usos.", "This code has reached its maximum uses.")
	case errors.Is(err, ErrExpired):
		return pick(l, "Este código ha expirado.", "This code has expired.")
	case errors.As(err, &minErr):
		amount := pricing.Format(minErr.Minimum, l)
		return pick(l,
			"No se alcanza el monto mínimo de compra de "+amount+".",
			"Minimum purchase amount of "+amount+" not met.")
	default:
		return pick(l, "Error al validar el código, intenta de nuevo.", "Error validating code, try again.")
	}
}

func pick(l domain.Locale, es, en string) string {
	if l == domain.LocaleEN {
		return en
	}

	return es
}
