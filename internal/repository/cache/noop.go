package cache

import (
	"context"
	"time"

	"github.com/street-orientation/internal/domain/repository"
)

type noopCacheRepository struct{}

// NewNoopCacheRepository - кеш, который ничего не хранит (CACHE_DRIVER=none)
func NewNoopCacheRepository() repository.CacheRepository {
	return noopCacheRepository{}
}

func (noopCacheRepository) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (noopCacheRepository) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopCacheRepository) Delete(context.Context, string) error { return nil }

func (noopCacheRepository) Exists(context.Context, string) (bool, error) { return false, nil }
