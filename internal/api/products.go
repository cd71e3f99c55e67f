package api

import (
	"errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nikolayk812/artisan-shop/internal/admin"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/shopspring/decimal"
	"strconv"
)

const (
	defaultRelatedLimit = 4
	maxRelatedLimit     = 20
)

func (h *Handler) relatedProducts(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, errInvalidID)
	}

	limit := defaultRelatedLimit
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxRelatedLimit {
			limit = n
		}
	}

	ctx := c.Request().Context()
	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		return fail(c, err)
	}

	l := locale(c)
	calc := h.carts.Calculator()
	related := h.catalog.Related(ctx, product, limit)

	views := make([]productView, 0, len(related))
	for _, p := range related {
		views = append(views, newProductView(p, calc, l))
	}

	return ok(c, views)
}

type pricingRequest struct {
	DolarPrice         *decimal.Decimal `json:"dolar_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	Active             bool             `json:"active"`
}

func (h *Handler) updatePricing(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, errInvalidID)
	}

	var req pricingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	ctx := c.Request().Context()
	in := admin.PricingInput{
		DolarPrice:         req.DolarPrice,
		DiscountPercentage: req.DiscountPercentage,
		Active:             req.Active,
	}

	saved, err := h.editor.UpdatePricing(ctx, id, in)
	if errors.Is(err, domain.ErrNotFound) {
		// the product may have been created after the editor list was loaded
		if loadErr := h.editor.Load(ctx); loadErr != nil {
			return fail(c, loadErr)
		}
		saved, err = h.editor.UpdatePricing(ctx, id, in)
	}
	if err != nil {
		return fail(c, err)
	}

	return ok(c, newProductView(saved, h.carts.Calculator(), locale(c)))
}
