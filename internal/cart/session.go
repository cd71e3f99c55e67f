// Package cart keeps a shopper's cart and applied discount for one session and
// keeps them synchronised with session storage and the server-held cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/discount"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/nikolayk812/artisan-shop/internal/pricing"
	"go.uber.org/zap"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrItemNotFound         = errors.New("item not in cart")
	ErrValidationInProgress = errors.New("discount validation already in progress")
	ErrSyncFailed           = errors.New("cart synchronisation failed")
)

type Session struct {
	id     string
	userID string

	store      port.SessionStore
	remote     port.CartRepository
	validator  *discount.Validator
	calc       pricing.Calculator
	newBackOff func() backoff.BackOff

	// guarded by the owning Manager's mu
	lastUsed time.Time

	mu              sync.Mutex
	loaded          bool
	cart            domain.Cart
	discount        *domain.DiscountInfo
	cartVersion     int64
	discountVersion int64

	subMu   sync.Mutex
	subs    map[int]func(domain.Cart)
	nextSub int

	validating atomic.Bool
}

// Sync persists the cart to session storage and, for an authenticated shopper,
// to the server-held cart. Transient failures are retried with backoff; the
// last error is returned wrapped in ErrSyncFailed. The in-memory cart is kept
// either way so a later Sync can catch up.
func (s *Session) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.syncLocked(ctx)
}

func (s *Session) syncLocked(ctx context.Context) error {
	data, err := encodeCart(s.cart)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	err = s.saveLocked(ctx, KeyCart, data, &s.cartVersion)
	if errors.Is(err, domain.ErrVersionConflict) {
		if reloadErr := s.reloadLocked(ctx); reloadErr != nil {
			return errors.Join(err, fmt.Errorf("reload: %w", reloadErr))
		}
		return err
	}
	if err != nil {
		zap.L().Warn("cart session sync failed", zap.String("session", s.id), zap.Error(err))
		return fmt.Errorf("%w: store.Save: %w", ErrSyncFailed, err)
	}

	if s.remote == nil || s.userID == "" {
		return nil
	}

	owned := s.cart.Clone()
	owned.OwnerID = s.userID
	err = s.retry(ctx, func() error {
		return s.remote.ReplaceCart(ctx, owned)
	})
	if err != nil {
		zap.L().Warn("cart remote sync failed", zap.String("session", s.id), zap.String("user", s.userID), zap.Error(err))
		return fmt.Errorf("%w: remote.ReplaceCart: %w", ErrSyncFailed, err)
	}

	return nil
}

// saveLocked writes value under key at *version and records the new version.
// A key that is gone from the store, e.g. purged, is written afresh; a key
// rewritten by someone else yields domain.ErrVersionConflict.
func (s *Session) saveLocked(ctx context.Context, key string, value []byte, version *int64) error {
	return s.retry(ctx, func() error {
		next, err := s.store.Save(ctx, s.id, key, value, *version)
		if errors.Is(err, domain.ErrVersionConflict) && *version != 0 {
			_, _, loadErr := s.store.Load(ctx, s.id, key)
			if errors.Is(loadErr, domain.ErrNotFound) {
				next, err = s.store.Save(ctx, s.id, key, value, 0)
			}
		}
		if err != nil {
			return err
		}
		*version = next
		return nil
	})
}

func (s *Session) retry(ctx context.Context, op func() error) error {
	b := backoff.WithContext(s.newBackOff(), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// reloadLocked replaces the in-memory state with what is in session storage,
// used when another writer got there first.
func (s *Session) reloadLocked(ctx context.Context) error {
	if err := s.reloadCartLocked(ctx); err != nil {
		return err
	}

	return s.reloadDiscountLocked(ctx)
}

func (s *Session) reloadCartLocked(ctx context.Context) error {
	data, version, err := s.store.Load(ctx, s.id, KeyCart)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.cart = domain.Cart{OwnerID: s.userID}
		s.cartVersion = 0
	case err != nil:
		return fmt.Errorf("store.Load[%s]: %w", KeyCart, err)
	default:
		items, err := decodeCart(data)
		if err != nil {
			return fmt.Errorf("decodeCart: %w", err)
		}
		s.cart = domain.Cart{OwnerID: s.userID, Items: items}
		s.cartVersion = version
	}

	return nil
}

func (s *Session) reloadDiscountLocked(ctx context.Context) error {
	data, version, err := s.store.Load(ctx, s.id, KeyDiscount)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.discount = nil
		s.discountVersion = 0
	case err != nil:
		return fmt.Errorf("store.Load[%s]: %w", KeyDiscount, err)
	default:
		info, err := decodeDiscount(data)
		if err != nil {
			return fmt.Errorf("decodeDiscount: %w", err)
		}
		s.discount = info
		s.discountVersion = version
	}

	return nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userID
}

func (s *Session) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Clone()
}

// Add puts product in the cart, or adds quantity to its existing line. The line
// quantity never exceeds domain.MaxQuantity.
func (s *Session) Add(ctx context.Context, product domain.Product, quantity int) error {
	if quantity < domain.MinQuantity {
		return domain.ErrInvalidQuantity
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		if i := c.Find(product.ID); i >= 0 {
			c.Items[i].Quantity = min(c.Items[i].Quantity+quantity, domain.MaxQuantity)
			return nil
		}
		c.Items = append(c.Items, domain.CartItem{Product: product, Quantity: min(quantity, domain.MaxQuantity)})
		return nil
	})
}

func (s *Session) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < domain.MinQuantity || quantity > domain.MaxQuantity {
		return domain.ErrInvalidQuantity
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		i := c.Find(productID)
		if i < 0 {
			return ErrItemNotFound
		}
		c.Items[i].Quantity = quantity
		return nil
	})
}

func (s *Session) Remove(ctx context.Context, productID uuid.UUID) error {
	return s.mutate(ctx, func(c *domain.Cart) error {
		i := c.Find(productID)
		if i < 0 {
			return ErrItemNotFound
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	})
}

func (s *Session) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(c *domain.Cart) error {
		c.Items = nil
		return nil
	})
}

func (s *Session) mutate(ctx context.Context, fn func(c *domain.Cart) error) error {
	s.mu.Lock()

	next := s.cart.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cart = next

	err := s.syncLocked(ctx)
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.notify(snapshot)

	return err
}

// Subscribe registers fn to be called with a snapshot after every cart change.
func (s *Session) Subscribe(fn func(domain.Cart)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) notify(c domain.Cart) {
	s.subMu.Lock()
	fns := make([]func(domain.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c.Clone())
	}
}

func (s *Session) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calc.Totals(s.cart, s.discount)
}

// Discount returns the applied discount, or nil.
func (s *Session) Discount() *domain.DiscountInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discount == nil {
		return nil
	}
	info := *s.discount

	return &info
}

// StoredDiscount reads the applied discount back from session storage.
func (s *Session) StoredDiscount(ctx context.Context) (*domain.DiscountInfo, error) {
	data, _, err := s.store.Load(ctx, s.id, KeyDiscount)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Load[%s]: %w", KeyDiscount, err)
	}

	return decodeDiscount(data)
}

// ApplyDiscount validates code against the current pre-discount total and, on
// success, stores the result for the session. Only one validation per session
// runs at a time. A failed validation leaves any previous discount in place.
func (s *Session) ApplyDiscount(ctx context.Context, code string) (domain.DiscountInfo, error) {
	if !s.validating.CompareAndSwap(false, true) {
		return domain.DiscountInfo{}, ErrValidationInProgress
	}
	defer s.validating.Store(false)

	total := s.Totals().PreDiscountTotal

	info, err := s.validator.Validate(ctx, code, total)
	if err != nil {
		return domain.DiscountInfo{}, err
	}

	data, err := encodeDiscount(info)
	if err != nil {
		return domain.DiscountInfo{}, fmt.Errorf("encodeDiscount: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.saveLocked(ctx, KeyDiscount, data, &s.discountVersion)
	if errors.Is(err, domain.ErrVersionConflict) {
		// another writer replaced the stored discount; the code just applied wins
		if reloadErr := s.reloadDiscountLocked(ctx); reloadErr != nil {
			err = errors.Join(err, reloadErr)
		} else {
			err = s.saveLocked(ctx, KeyDiscount, data, &s.discountVersion)
		}
	}
	if err != nil {
		// keep memory in line with what checkout will read
		if reloadErr := s.reloadDiscountLocked(ctx); reloadErr != nil {
			zap.L().Warn("discount reload failed", zap.String("session", s.id), zap.Error(reloadErr))
		}
		return domain.DiscountInfo{}, fmt.Errorf("%w: store.Save[%s]: %w", ErrSyncFailed, KeyDiscount, err)
	}
	s.discount = &info

	return info, nil
}

// RemoveDiscount drops the applied discount from memory and from session storage.
func (s *Session) RemoveDiscount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discount = nil
	s.discountVersion = 0

	if err := s.store.Delete(ctx, s.id, KeyDiscount); err != nil {
		return fmt.Errorf("store.Delete[%s]: %w", KeyDiscount, err)
	}

	return nil
}

// RevalidateDiscount re-applies the current code against the live cart total.
// If the code no longer validates it is removed and the validation error returned.
func (s *Session) RevalidateDiscount(ctx context.Context) (*domain.DiscountInfo, error) {
	current := s.Discount()
	if current == nil {
		return nil, nil
	}

	info, err := s.ApplyDiscount(ctx, current.Code)
	if err != nil {
		if errors.Is(err, ErrValidationInProgress) || errors.Is(err, ErrSyncFailed) || errors.Is(err, discount.ErrLookupFailed) {
			return nil, err
		}
		if removeErr := s.RemoveDiscount(ctx); removeErr != nil {
			return nil, errors.Join(err, removeErr)
		}
		return nil, err
	}

	return &info, nil
}
