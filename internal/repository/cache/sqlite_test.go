package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	pkgerrors "github.com/street-orientation/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "cache.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteCache_SetGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteCacheRepository(newTestSQLite(t))

	val, err := repo.Get(ctx, "geocode:missing")
	require.NoError(t, err)
	assert.Nil(t, val, "miss is (nil, nil)")

	require.NoError(t, repo.Set(ctx, "geocode:abc", []byte(`[{"place_id":1}]`), time.Hour))

	val, err = repo.Get(ctx, "geocode:abc")
	require.NoError(t, err)
	assert.Equal(t, `[{"place_id":1}]`, string(val))

	exists, err := repo.Exists(ctx, "geocode:abc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSQLiteCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteCacheRepository(newTestSQLite(t))

	require.NoError(t, repo.Set(ctx, "k", []byte("one"), 0))
	require.NoError(t, repo.Set(ctx, "k", []byte("two"), 0))

	val, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(val))
}

func TestSQLiteCache_Expiry(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	repo := NewSQLiteCacheRepository(store)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, repo.Set(ctx, "network:pbf:x", []byte("payload"), time.Minute))
	require.NoError(t, repo.Set(ctx, "forever", []byte("payload"), 0))

	now = now.Add(2 * time.Minute)

	val, err := repo.Get(ctx, "network:pbf:x")
	require.NoError(t, err)
	assert.Nil(t, val)

	exists, err := repo.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSQLiteCache_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteCacheRepository(newTestSQLite(t))

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, repo.Delete(ctx, "k"))

	exists, err := repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteCache_BackendFailure(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	repo := NewSQLiteCacheRepository(store)
	require.NoError(t, store.Close())

	_, err := repo.Get(ctx, "geocode:abc")
	assert.ErrorIs(t, err, pkgerrors.ErrCacheError)

	err = repo.Set(ctx, "geocode:abc", []byte("x"), time.Hour)
	assert.ErrorIs(t, err, pkgerrors.ErrCacheError)

	err = repo.Delete(ctx, "geocode:abc")
	assert.ErrorIs(t, err, pkgerrors.ErrCacheError)

	_, err = repo.Exists(ctx, "geocode:abc")
	assert.ErrorIs(t, err, pkgerrors.ErrCacheError)
}
