package app

import (
	"context"
	"fmt"
	"github.com/nikolayk812/artisan-shop/internal/cart"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"time"
)

const purgeTimeout = time.Minute

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJobs(store port.SessionStore, carts *cart.Manager) error {
	a.sched = cron.New(cron.WithLocation(time.Local), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc(a.cfg.Shop.SessionEvictSpec, func() {
		EvictIdleSessions(carts, a.cfg.Shop.SessionCacheIdle)
	})
	if err != nil {
		return fmt.Errorf("sched.AddFunc[%s]: %w", a.cfg.Shop.SessionEvictSpec, err)
	}

	_, err = a.sched.AddFunc(a.cfg.Shop.SessionPurgeSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()

		if _, err := PurgeSessions(ctx, store, a.cfg.Shop.SessionTTL); err != nil {
			zap.L().Error("session purge failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("sched.AddFunc[%s]: %w", a.cfg.Shop.SessionPurgeSpec, err)
	}

	return nil
}

// PurgeSessions drops session state nobody touched within ttl, e.g. carts of
// shoppers who never came back.
func PurgeSessions(ctx context.Context, store port.SessionStore, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("ttl must be positive")
	}

	purged, err := store.Purge(ctx, time.Now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("store.Purge: %w", err)
	}

	zap.L().Info("session state purged", zap.Int64("keys", purged), zap.Duration("ttl", ttl))

	return purged, nil
}

// EvictIdleSessions drops live sessions not opened within idle from memory.
// Their stored state stays and is loaded again on the next request.
func EvictIdleSessions(carts *cart.Manager, idle time.Duration) int {
	if idle <= 0 {
		return 0
	}

	evicted := carts.EvictIdle(idle)
	if evicted > 0 {
		zap.L().Debug("idle cart sessions evicted", zap.Int("sessions", evicted), zap.Duration("idle", idle))
	}

	return evicted
}
