package port

import (
	"context"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"time"
)

// CartRepository is the server-held copy of an authenticated shopper's cart.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	ReplaceCart(ctx context.Context, cart domain.Cart) error
}

// SessionStore is durable per-session key/value state, the server-side
// counterpart of browser local storage. Save succeeds only when version matches
// the stored version (0 for a key never written) and returns the new version.
type SessionStore interface {
	Load(ctx context.Context, sessionID, key string) ([]byte, int64, error)
	Save(ctx context.Context, sessionID, key string, value []byte, version int64) (int64, error)
	Delete(ctx context.Context, sessionID, key string) error
	// Purge drops every key last written before the given time and reports how many went.
	Purge(ctx context.Context, before time.Time) (int64, error)
}
