package repository_test

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestSessionStore() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	store, err := repository.NewSession(suite.pool)
	require.NoError(t, err)

	sessionID := gofakeit.UUID()

	_, _, err = store.Load(ctx, sessionID, "cart")
	require.ErrorIs(t, err, domain.ErrNotFound)

	v1, err := store.Save(ctx, sessionID, "cart", []byte(`[]`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	_, err = store.Save(ctx, sessionID, "cart", []byte(`[{"quantity":1}]`), 0)
	require.ErrorIs(t, err, domain.ErrVersionConflict)

	v2, err := store.Save(ctx, sessionID, "cart", []byte(`[{"quantity":2}]`), v1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	_, err = store.Save(ctx, sessionID, "cart", []byte(`[]`), v1)
	require.ErrorIs(t, err, domain.ErrVersionConflict)

	value, version, err := store.Load(ctx, sessionID, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"quantity":2}]`, string(value))
	assert.Equal(t, v2, version)

	require.NoError(t, store.Delete(ctx, sessionID, "cart"))
	_, _, err = store.Load(ctx, sessionID, "cart")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Save(ctx, "", "cart", nil, 0)
	require.EqualError(t, err, "sessionID is empty")
}

func (suite *repositorySuite) TestSessionStorePurge() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	store, err := repository.NewSession(suite.pool)
	require.NoError(t, err)

	old, fresh := gofakeit.UUID(), gofakeit.UUID()
	_, err = store.Save(ctx, old, "cart", []byte(`[]`), 0)
	require.NoError(t, err)
	_, err = store.Save(ctx, fresh, "cart", []byte(`[]`), 0)
	require.NoError(t, err)

	_, err = suite.pool.Exec(ctx, "UPDATE session_state SET updated_at = NOW() - INTERVAL '40 days' WHERE session_id = $1", old)
	require.NoError(t, err)

	purged, err := store.Purge(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, _, err = store.Load(ctx, old, "cart")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = store.Load(ctx, fresh, "cart")
	require.NoError(t, err)
}
