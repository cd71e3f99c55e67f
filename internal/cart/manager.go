package cart

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/nikolayk812/artisan-shop/internal/discount"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"github.com/nikolayk812/artisan-shop/internal/pricing"
	"go.uber.org/zap"
	"sync"
	"time"
)

type Config struct {
	ShippingFee domain.Money
	// SyncMaxElapsed bounds how long a single sync keeps retrying.
	SyncMaxElapsed time.Duration
}

// Manager opens and tears down cart sessions.
type Manager struct {
	store      port.SessionStore
	remote     port.CartRepository
	validator  *discount.Validator
	calc       pricing.Calculator
	newBackOff func() backoff.BackOff
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

type ManagerOption func(*Manager)

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// WithBackOff overrides the retry policy used for synchronisation.
func WithBackOff(newBackOff func() backoff.BackOff) ManagerOption {
	return func(m *Manager) {
		m.newBackOff = newBackOff
	}
}

// NewManager wires the session machinery. remote may be nil, in which case
// carts live in session storage only.
func NewManager(cfg Config, store port.SessionStore, remote port.CartRepository, validator *discount.Validator, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	if validator == nil {
		return nil, fmt.Errorf("discount validator is nil")
	}

	maxElapsed := cfg.SyncMaxElapsed
	if maxElapsed <= 0 {
		maxElapsed = 5 * time.Second
	}

	m := &Manager{
		store:     store,
		remote:    remote,
		validator: validator,
		calc:      pricing.NewCalculator(cfg.ShippingFee),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = maxElapsed
			return b
		},
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func (m *Manager) Calculator() pricing.Calculator {
	return m.calc
}

// Open returns the live session for sessionID, loading it from session storage
// on first use. A guest session with an empty cart picks up the server-held
// cart once userID is known. Loading one session does not hold up others.
func (m *Manager) Open(ctx context.Context, sessionID, userID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is empty")
	}

	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &Session{
			id:         sessionID,
			store:      m.store,
			remote:     m.remote,
			validator:  m.validator,
			calc:       m.calc,
			newBackOff: m.newBackOff,
			subs:       make(map[int]func(domain.Cart)),
		}
		m.sessions[sessionID] = s
	}
	s.lastUsed = m.now()
	m.mu.Unlock()

	loaded, err := m.load(ctx, s, userID)
	if err != nil {
		if !loaded {
			m.mu.Lock()
			if m.sessions[sessionID] == s {
				delete(m.sessions, sessionID)
			}
			m.mu.Unlock()
		}
		return nil, err
	}

	return s, nil
}

// load reads s from session storage on first use and attaches userID. loaded
// reports whether s holds stored state, even when attaching failed.
func (m *Manager) load(ctx context.Context, s *Session, userID string) (loaded bool, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.reloadLocked(ctx); err != nil {
			return false, fmt.Errorf("reloadLocked: %w", err)
		}
		s.loaded = true
		zap.L().Debug("cart session opened", zap.String("session", s.id), zap.Int("items", len(s.cart.Items)))
	}

	if err := m.attachUserLocked(ctx, s, userID); err != nil {
		return true, fmt.Errorf("attachUser: %w", err)
	}

	return true, nil
}

func (m *Manager) attachUserLocked(ctx context.Context, s *Session, userID string) error {
	if userID == "" || s.userID == userID {
		return nil
	}
	s.userID = userID
	s.cart.OwnerID = userID

	if m.remote == nil {
		return nil
	}

	if !s.cart.IsEmpty() {
		return s.syncLocked(ctx)
	}

	remote, err := m.remote.GetCart(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("remote.GetCart: %w", err)
	}
	if len(remote.Items) == 0 {
		return nil
	}
	s.cart = domain.Cart{OwnerID: userID, Items: remote.Items}

	return s.syncLocked(ctx)
}

// Close forgets the session, e.g. on logout. Stored state is left in place.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
}

// EvictIdle forgets sessions not opened for longer than idle and reports how
// many were dropped. Their stored state is left in place and is loaded again
// on the next Open.
func (m *Manager) EvictIdle(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idle)
	evicted := 0
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}

	return evicted
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
