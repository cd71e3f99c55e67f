package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/artisan-shop/internal/db"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"time"
)

type sessionRepository struct {
	q *db.Queries
}

// NewSession returns a Postgres backed port.SessionStore.
func NewSession(pool *pgxpool.Pool) (port.SessionStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &sessionRepository{q: db.New(pool)}, nil
}

func (r *sessionRepository) Load(ctx context.Context, sessionID, key string) ([]byte, int64, error) {
	if sessionID == "" {
		return nil, 0, fmt.Errorf("sessionID is empty")
	}

	row, err := r.q.GetSessionValue(ctx, db.GetSessionValueParams{SessionID: sessionID, Key: key})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, domain.ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("q.GetSessionValue: %w", err)
	}

	return row.Value, row.Version, nil
}

func (r *sessionRepository) Save(ctx context.Context, sessionID, key string, value []byte, version int64) (int64, error) {
	if sessionID == "" {
		return 0, fmt.Errorf("sessionID is empty")
	}

	var (
		rows int64
		err  error
	)
	if version == 0 {
		rows, err = r.q.InsertSessionValue(ctx, db.InsertSessionValueParams{SessionID: sessionID, Key: key, Value: value})
	} else {
		rows, err = r.q.UpdateSessionValue(ctx, db.UpdateSessionValueParams{SessionID: sessionID, Key: key, Value: value, Version: version})
	}
	if err != nil {
		return 0, fmt.Errorf("save key[%s]: %w", key, err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("key[%s] at version %d: %w", key, version, domain.ErrVersionConflict)
	}

	return version + 1, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID, key string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	if err := r.q.DeleteSessionValue(ctx, db.DeleteSessionValueParams{SessionID: sessionID, Key: key}); err != nil {
		return fmt.Errorf("q.DeleteSessionValue: %w", err)
	}

	return nil
}

func (r *sessionRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	rows, err := r.q.DeleteSessionsBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteSessionsBefore: %w", err)
	}

	return rows, nil
}
