package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"net/http"
)

func (h *Handler) getSummary(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	l := locale(c)
	summary, err := h.checkout.Summary(c.Request().Context(), sess, l)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, newSummaryView(summary, l))
}

type placeOrderResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	Status      string    `json:"status"`
	Total       moneyView `json:"total"`
	RedirectURL string    `json:"redirect_url"`
}

func (h *Handler) placeOrder(c echo.Context) error {
	var address domain.ShippingAddress
	if err := c.Bind(&address); err != nil {
		return fail(c, errInvalidBody)
	}

	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	l := locale(c)
	placement, err := h.checkout.PlaceOrder(c.Request().Context(), sess, address, l)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, placeOrderResponse{
		OrderID:     placement.Order.ID,
		Status:      string(placement.Order.Status),
		Total:       newMoneyView(placement.Order.Total, l),
		RedirectURL: placement.RedirectURL,
	})
}
