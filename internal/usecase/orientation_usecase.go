package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	"github.com/street-orientation/internal/orientation"
	apperrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
)

// OrientationCollector собирает азимуты улиц по списку мест
type OrientationCollector interface {
	Collect(ctx context.Context, places []domain.Place) map[string]*domain.PlaceOrientation
}

type OrientationUseCase struct {
	geocoder  repository.GeocodingRepository
	networks  repository.NetworkRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	provider  string
	options   domain.BearingOptions
	cacheTTL  time.Duration
}

func NewOrientationUseCase(
	geocoder repository.GeocodingRepository,
	networks repository.NetworkRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	provider string,
	options domain.BearingOptions,
	cacheTTL time.Duration,
) *OrientationUseCase {
	return &OrientationUseCase{
		geocoder:  geocoder,
		networks:  networks,
		cacheRepo: cacheRepo,
		logger:    logger,
		provider:  provider,
		options:   options,
		cacheTTL:  cacheTTL,
	}
}

// Collect обрабатывает места последовательно. Место, для которого не удалось
// получить сеть, пропускается с предупреждением; результат содержит только удачные.
func (uc *OrientationUseCase) Collect(ctx context.Context, places []domain.Place) map[string]*domain.PlaceOrientation {
	result := make(map[string]*domain.PlaceOrientation, len(places))
	for _, place := range places {
		if ctx.Err() != nil {
			uc.logger.Warn("Collection interrupted", zap.Error(ctx.Err()))
			break
		}

		po, err := uc.Orientation(ctx, place)
		if err != nil {
			uc.logger.Warn("Failed to extract a street network",
				zap.String("place", place.Name),
				zap.String("query", place.Query.String()),
				zap.Error(err))
			continue
		}
		result[place.Name] = po
	}
	return result
}

// Orientation: геокодинг -> регион -> сеть -> азимуты
func (uc *OrientationUseCase) Orientation(ctx context.Context, place domain.Place) (*domain.PlaceOrientation, error) {
	region, err := uc.region(ctx, place)
	if err != nil {
		return nil, err
	}

	network, err := uc.network(ctx, place, region)
	if err != nil {
		return nil, err
	}

	bearings := orientation.ExtractBearings(network, uc.options)

	uc.logger.Info("Street network extracted",
		zap.String("place", place.Name),
		zap.Int("nodes", len(network.Nodes)),
		zap.Int("edges", len(network.Edges)),
		zap.Int("bearings", len(bearings)))

	return &domain.PlaceOrientation{
		Place:    place.Name,
		Network:  network,
		Bearings: bearings,
	}, nil
}

func (uc *OrientationUseCase) region(ctx context.Context, place domain.Place) (orb.MultiPolygon, error) {
	results, err := uc.geocode(ctx, place.Query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrPlaceNotFound, fmt.Errorf("no result for %q", place.Query.String()))
	}

	if status, geometryType := ClassifyGeometry(results[0]); status != domain.CheckStatusOK {
		return nil, apperrors.Wrap(apperrors.ErrPlaceNotRegion,
			fmt.Errorf("%s (geometry %q)", status, geometryType))
	}

	return uc.geocoder.Boundary(results[0])
}

func (uc *OrientationUseCase) geocode(ctx context.Context, query domain.PlaceQuery) ([]domain.GeocodeResult, error) {
	cacheKey := GeocodeCacheKey(query)

	cached, err := uc.cacheRepo.Get(ctx, cacheKey)
	if err != nil {
		uc.logger.Warn("Failed to read geocode cache", zap.String("key", cacheKey), zap.Error(err))
	}
	if err == nil && cached != nil {
		var results []domain.GeocodeResult
		if err := json.Unmarshal(cached, &results); err == nil {
			return results, nil
		}
		uc.logger.Warn("Discarding corrupt geocode cache entry", zap.String("key", cacheKey))
	}

	results, err := uc.geocoder.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	uc.store(ctx, cacheKey, results)
	return results, nil
}

func (uc *OrientationUseCase) network(ctx context.Context, place domain.Place, region orb.MultiPolygon) (*domain.StreetNetwork, error) {
	cacheKey := NetworkCacheKey(uc.provider, place.Query)

	cached, err := uc.cacheRepo.Get(ctx, cacheKey)
	if err != nil {
		uc.logger.Warn("Failed to read network cache", zap.String("key", cacheKey), zap.Error(err))
	}
	if err == nil && cached != nil {
		var network domain.StreetNetwork
		if err := json.Unmarshal(cached, &network); err == nil {
			network.Place = place.Name
			return &network, nil
		}
		uc.logger.Warn("Discarding corrupt network cache entry", zap.String("key", cacheKey))
	}

	network, err := uc.networks.FetchNetwork(ctx, place, region)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, cacheKey, network)
	return network, nil
}

// store пишет значение в кеш; ошибки кеша не влияют на результат
func (uc *OrientationUseCase) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		uc.logger.Warn("Failed to encode cache value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache value", zap.String("key", key), zap.Error(err))
	}
}

func GeocodeCacheKey(query domain.PlaceQuery) string {
	return "geocode:" + hashQuery(query)
}

func NetworkCacheKey(provider string, query domain.PlaceQuery) string {
	return fmt.Sprintf("network:%s:%s", provider, hashQuery(query))
}

func hashQuery(query domain.PlaceQuery) string {
	sum := sha1.Sum([]byte(query.String()))
	return hex.EncodeToString(sum[:])
}
