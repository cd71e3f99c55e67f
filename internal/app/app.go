// Package app assembles the storefront from configuration and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/nikolayk812/artisan-shop/internal/admin"
	"github.com/nikolayk812/artisan-shop/internal/api"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"github.com/nikolayk812/artisan-shop/internal/catalog"
	"github.com/nikolayk812/artisan-shop/internal/checkout"
	"github.com/nikolayk812/artisan-shop/internal/config"
	"github.com/nikolayk812/artisan-shop/internal/discount"
	"github.com/nikolayk812/artisan-shop/internal/payment"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/nikolayk812/artisan-shop/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"net/http"
	"time"
	_ "time/tzdata"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	cfg   *config.AppConfig
	pool  *pgxpool.Pool
	echo  *echo.Echo
	sched *cron.Cron
	carts *cart.Manager
}

func NewApplication(cfg *config.AppConfig) *Application {
	return &Application{cfg: cfg}
}

// Init sets up logging, connects to the database and wires the HTTP handlers.
func (a *Application) Init(ctx context.Context) error {
	cfg := a.cfg

	logger, err := NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("NewLogger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	if loc, err := time.LoadLocation(cfg.System.Location); err != nil {
		zap.L().Warn("timezone config error", zap.String("location", cfg.System.Location), zap.Error(err))
	} else {
		time.Local = loc
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	a.pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}
	if err := a.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	sessions, err := repository.NewSession(a.pool)
	if err != nil {
		return fmt.Errorf("repository.NewSession: %w", err)
	}

	handler, err := a.wire(ctx, sessions)
	if err != nil {
		return fmt.Errorf("wire: %w", err)
	}

	if err := a.initJobs(sessions, a.carts); err != nil {
		return fmt.Errorf("initJobs: %w", err)
	}
	a.echo = api.NewServer(handler)
	a.echo.Debug = cfg.System.Debug

	return nil
}

func (a *Application) wire(ctx context.Context, sessions port.SessionStore) (*api.Handler, error) {
	cfg := a.cfg

	shippingFee, err := cfg.ShippingFee()
	if err != nil {
		return nil, err
	}

	carts, err := repository.NewCart(a.pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewCart: %w", err)
	}
	discounts, err := repository.NewDiscount(a.pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewDiscount: %w", err)
	}
	products, err := repository.NewProduct(a.pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewProduct: %w", err)
	}
	orders, err := repository.NewOrder(a.pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewOrder: %w", err)
	}

	var validatorOpts []discount.Option
	if cfg.Shop.LegacyFixedDiscount {
		validatorOpts = append(validatorOpts, discount.WithLegacyFixedAmount())
	}
	validator, err := discount.NewValidator(discounts, validatorOpts...)
	if err != nil {
		return nil, fmt.Errorf("discount.NewValidator: %w", err)
	}

	manager, err := cart.NewManager(cart.Config{
		ShippingFee:    shippingFee,
		SyncMaxElapsed: cfg.Shop.SyncMaxElapsed,
	}, sessions, carts, validator)
	if err != nil {
		return nil, fmt.Errorf("cart.NewManager: %w", err)
	}
	a.carts = manager

	gateway, err := payment.NewRedirectGateway(cfg.Payment.URL, cfg.Payment.ReturnURL)
	if err != nil {
		return nil, fmt.Errorf("payment.NewRedirectGateway: %w", err)
	}

	checkoutService, err := checkout.NewService(orders, gateway, manager.Calculator())
	if err != nil {
		return nil, fmt.Errorf("checkout.NewService: %w", err)
	}

	catalogService, err := catalog.NewService(products)
	if err != nil {
		return nil, fmt.Errorf("catalog.NewService: %w", err)
	}

	editor, err := admin.NewEditor(products)
	if err != nil {
		return nil, fmt.Errorf("admin.NewEditor: %w", err)
	}
	if err := editor.Load(ctx); err != nil {
		// the handler reloads on demand
		zap.L().Warn("price editor initial load failed", zap.Error(err))
	}

	return api.NewHandler(manager, catalogService, checkoutService, editor)
}

// Handler is the HTTP surface, available after Init.
func (a *Application) Handler() http.Handler {
	return a.echo
}

// Run serves HTTP and runs scheduled jobs until ctx is cancelled, then shuts
// both down.
func (a *Application) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("storefront listening", zap.String("addr", a.cfg.Web.Addr))
		err := a.echo.Start(a.cfg.Web.Addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("echo.Start: %w", err)
	})

	a.sched.Start()

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		select {
		case <-a.sched.Stop().Done():
		case <-shutdownCtx.Done():
		}

		if err := a.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("echo.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *Application) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	_ = zap.L().Sync()
}
