package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/street-orientation/internal/domain/repository"
	pkgerrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const createCacheTable = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

// SQLite - файловый кеш; expires_at = 0 означает "без срока"
type SQLite struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewSQLite открывает (и при необходимости создает) файл кеша
func NewSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite cache: %w", err)
	}

	// один писатель, без гонок за файл
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	logger.Info("SQLite cache opened", zap.String("path", path))

	return &SQLite{db: db, logger: logger, now: time.Now}, nil
}

func (s *SQLite) Close() error {
	s.logger.Info("Closing SQLite cache")
	return s.db.Close()
}

type sqliteCacheRepository struct {
	store *SQLite
}

func NewSQLiteCacheRepository(store *SQLite) repository.CacheRepository {
	return &sqliteCacheRepository{store: store}
}

type cacheEntry struct {
	Value     []byte `db:"value"`
	ExpiresAt int64  `db:"expires_at"`
}

func (r *sqliteCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var entry cacheEntry
	err := r.store.db.GetContext(ctx, &entry,
		`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.store.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, pkgerrors.Wrap(pkgerrors.ErrCacheError, fmt.Errorf("get %s: %w", key, err))
	}

	if entry.ExpiresAt > 0 && entry.ExpiresAt <= r.store.now().UnixNano() {
		r.store.logger.Debug("Cache entry expired", zap.String("key", key))
		if err := r.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}

	r.store.logger.Debug("Cache hit", zap.String("key", key))
	return entry.Value, nil
}

func (r *sqliteCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = r.store.now().Add(ttl).UnixNano()
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt)
	if err != nil {
		r.store.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return pkgerrors.Wrap(pkgerrors.ErrCacheError, fmt.Errorf("set %s: %w", key, err))
	}

	r.store.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *sqliteCacheRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		r.store.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return pkgerrors.Wrap(pkgerrors.ErrCacheError, fmt.Errorf("delete %s: %w", key, err))
	}

	r.store.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *sqliteCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.Get(ctx, key)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.ErrCacheError, fmt.Errorf("exists %s: %w", key, err))
	}
	return val != nil, nil
}
