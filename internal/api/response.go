package api

import (
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/nikolayk812/artisan-shop/internal/admin"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"github.com/nikolayk812/artisan-shop/internal/checkout"
	"github.com/nikolayk812/artisan-shop/internal/discount"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"net/http"
)

var localeMatcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// locale picks the response language from ?lang= or Accept-Language, Spanish by default.
func locale(c echo.Context) domain.Locale {
	tag, _ := language.MatchStrings(localeMatcher, c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))
	base, _ := tag.Base()

	return domain.ParseLocale(base.String())
}

// apiError is a request-level failure carrying its own status and messages.
type apiError struct {
	status int
	code   string
	es, en string
}

func (e *apiError) Error() string {
	return e.code
}

var (
	errMissingSession     = &apiError{http.StatusBadRequest, "MISSING_SESSION", "Falta el identificador de sesión.", "Missing session id."}
	errInvalidID          = &apiError{http.StatusBadRequest, "INVALID_ID", "Identificador inválido.", "Invalid id."}
	errInvalidBody        = &apiError{http.StatusBadRequest, "INVALID_REQUEST", "Solicitud inválida.", "Invalid request."}
	errProductUnavailable = &apiError{http.StatusUnprocessableEntity, "PRODUCT_UNAVAILABLE", "Este producto no está disponible.", "This product is unavailable."}
)

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// fail writes err as a localized error response.
func fail(c echo.Context, err error) error {
	l := locale(c)
	resp := errorResponse{}
	status := http.StatusInternalServerError

	var (
		apiErr  *apiError
		minErr  *discount.MinimumNotMetError
		addrErr *checkout.AddressError
	)

	switch {
	case errors.As(err, &apiErr):
		status, resp.Code, resp.Message = apiErr.status, apiErr.code, pick(l, apiErr.es, apiErr.en)
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, resp.Code = http.StatusBadRequest, "INVALID_QUANTITY"
		resp.Message = pick(l, "La cantidad debe estar entre 1 y 10.", "Quantity must be between 1 and 10.")
	case errors.Is(err, cart.ErrItemNotFound):
		status, resp.Code = http.StatusNotFound, "ITEM_NOT_FOUND"
		resp.Message = pick(l, "El producto no está en el carrito.", "The product is not in the cart.")
	case errors.Is(err, domain.ErrNotFound):
		status, resp.Code = http.StatusNotFound, "NOT_FOUND"
		resp.Message = pick(l, "Producto no encontrado.", "Product not found.")
	case errors.Is(err, cart.ErrValidationInProgress):
		status, resp.Code = http.StatusConflict, "VALIDATION_IN_PROGRESS"
		resp.Message = pick(l, "Validando el código, espera un momento.", "Validating the code, please wait.")
	case errors.Is(err, domain.ErrVersionConflict):
		status, resp.Code = http.StatusConflict, "CONFLICT"
		resp.Message = pick(l, "El carrito cambió en otra pestaña; recarga la página.", "The cart changed in another tab; reload the page.")
	case errors.Is(err, checkout.ErrStaleDiscount):
		status, resp.Code = http.StatusConflict, "STALE_DISCOUNT"
		resp.Message = pick(l, "El carrito cambió; vuelve a aplicar el código de descuento.", "The cart changed; apply the discount code again.")
	case errors.Is(err, discount.ErrEmptyCode), errors.Is(err, discount.ErrInvalidCode),
		errors.Is(err, discount.ErrMaxUsesReached), errors.Is(err, discount.ErrExpired), errors.As(err, &minErr):
		status, resp.Code, resp.Message = http.StatusUnprocessableEntity, "INVALID_DISCOUNT", discount.Message(err, l)
	case errors.Is(err, discount.ErrLookupFailed):
		resp.Code, resp.Message = "DISCOUNT_LOOKUP_FAILED", discount.Message(err, l)
	case errors.Is(err, checkout.ErrEmptyCart):
		status, resp.Code = http.StatusUnprocessableEntity, "EMPTY_CART"
		resp.Message = pick(l, "Tu carrito está vacío.", "Your cart is empty.")
	case errors.As(err, &addrErr):
		status, resp.Code, resp.Fields = http.StatusUnprocessableEntity, "INVALID_ADDRESS", addrErr.Fields
		resp.Message = pick(l, "Revisa los datos de envío.", "Check the shipping details.")
	case errors.Is(err, admin.ErrInvalidPricing):
		status, resp.Code = http.StatusUnprocessableEntity, "INVALID_PRICING"
		resp.Message = pick(l, "Precio o descuento inválido.", "Invalid price or discount.")
	case errors.Is(err, cart.ErrSyncFailed):
		resp.Code = "SYNC_FAILED"
		resp.Message = pick(l, "No se pudo guardar el carrito, intenta de nuevo.", "The cart could not be saved, try again.")
	default:
		resp.Code = "INTERNAL_ERROR"
		resp.Message = pick(l, "Ocurrió un error, intenta de nuevo.", "Something went wrong, try again.")
	}

	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.JSON(status, resp)
}

func pick(l domain.Locale, es, en string) string {
	if l == domain.LocaleEN {
		return en
	}

	return es
}
