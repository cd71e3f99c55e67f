// Package api exposes the storefront cart, checkout and price editor over JSON HTTP.
package api

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nikolayk812/artisan-shop/internal/admin"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"github.com/nikolayk812/artisan-shop/internal/catalog"
	"github.com/nikolayk812/artisan-shop/internal/checkout"
	"go.uber.org/zap"
)

const (
	HeaderSessionID = "X-Session-ID"
	HeaderUserID    = "X-User-ID"
)

type Handler struct {
	carts    *cart.Manager
	catalog  *catalog.Service
	checkout *checkout.Service
	editor   *admin.Editor
}

func NewHandler(carts *cart.Manager, catalog *catalog.Service, checkout *checkout.Service, editor *admin.Editor) (*Handler, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart manager is nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog service is nil")
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout service is nil")
	}
	if editor == nil {
		return nil, fmt.Errorf("price editor is nil")
	}

	return &Handler{carts: carts, catalog: catalog, checkout: checkout, editor: editor}, nil
}

// NewServer returns an echo instance with all storefront routes registered.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error))
			return nil
		},
	}))

	h.Register(e.Group("/api/v1"))

	return e
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/cart", h.getCart)
	g.POST("/cart/items", h.addItem)
	g.PUT("/cart/items/:product_id", h.updateItem)
	g.DELETE("/cart/items/:product_id", h.removeItem)
	g.DELETE("/cart", h.clearCart)
	g.POST("/cart/discount", h.applyDiscount)
	g.DELETE("/cart/discount", h.removeDiscount)
	g.POST("/cart/discount/revalidate", h.revalidateDiscount)
	g.DELETE("/session", h.endSession)

	g.GET("/checkout/summary", h.getSummary)
	g.POST("/checkout", h.placeOrder)

	g.GET("/products/:id/related", h.relatedProducts)
	g.PUT("/admin/products/:id/pricing", h.updatePricing)
}
