package cache

import (
	"fmt"

	"github.com/street-orientation/internal/config"
	"github.com/street-orientation/internal/domain/repository"
	"go.uber.org/zap"
)

// Open выбирает backend по CACHE_DRIVER. Возвращаемая функция закрывает соединение.
func Open(cfg *config.Config, logger *zap.Logger) (repository.CacheRepository, func() error, error) {
	switch cfg.Cache.Driver {
	case "redis":
		r, err := NewRedis(&cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewCacheRepository(r), r.Close, nil
	case "sqlite":
		s, err := NewSQLite(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteCacheRepository(s), s.Close, nil
	case "", "none":
		return NewNoopCacheRepository(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver: %s", cfg.Cache.Driver)
	}
}
