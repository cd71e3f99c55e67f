package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"net/http"
)

func (h *Handler) session(c echo.Context) (*cart.Session, error) {
	req := c.Request()

	sessionID := req.Header.Get(HeaderSessionID)
	if sessionID == "" {
		return nil, errMissingSession
	}

	return h.carts.Open(req.Context(), sessionID, req.Header.Get(HeaderUserID))
}

func (h *Handler) cartResponse(c echo.Context, sess *cart.Session) error {
	return ok(c, newCartView(sess.Snapshot(), sess.Totals(), sess.Discount(), locale(c)))
}

// endSession drops the live session, e.g. on logout. Stored state is kept and
// picked up again by the next request carrying the same session id.
func (h *Handler) endSession(c echo.Context) error {
	sessionID := c.Request().Header.Get(HeaderSessionID)
	if sessionID == "" {
		return fail(c, errMissingSession)
	}

	h.carts.Close(sessionID)

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) getCart(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (h *Handler) addItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID == uuid.Nil {
		return fail(c, errInvalidBody)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	product, err := h.catalog.Product(c.Request().Context(), req.ProductID)
	if err != nil {
		return fail(c, err)
	}
	if !product.Active {
		return fail(c, errProductUnavailable)
	}

	if err := sess.Add(c.Request().Context(), product, req.Quantity); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return fail(c, errInvalidID)
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if err := sess.UpdateQuantity(c.Request().Context(), productID, req.Quantity); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

func (h *Handler) removeItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return fail(c, errInvalidID)
	}

	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if err := sess.Remove(c.Request().Context(), productID); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

func (h *Handler) clearCart(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if err := sess.Clear(c.Request().Context()); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

type applyDiscountRequest struct {
	Code string `json:"code"`
}

func (h *Handler) applyDiscount(c echo.Context) error {
	var req applyDiscountRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if _, err := sess.ApplyDiscount(c.Request().Context(), req.Code); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

func (h *Handler) removeDiscount(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if err := sess.RemoveDiscount(c.Request().Context()); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}

// revalidateDiscount checks the applied code against the current cart. A code
// that no longer holds is dropped and reported as INVALID_DISCOUNT.
func (h *Handler) revalidateDiscount(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if _, err := sess.RevalidateDiscount(c.Request().Context()); err != nil {
		return fail(c, err)
	}

	return h.cartResponse(c, sess)
}
