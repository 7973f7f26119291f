package usecase_test

import (
	"context"
	"image"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"

	"github.com/street-orientation/internal/domain"
)

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Search(ctx context.Context, query domain.PlaceQuery) ([]domain.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodeResult), args.Error(1)
}

func (m *MockGeocodingRepository) Boundary(result domain.GeocodeResult) (orb.MultiPolygon, error) {
	args := m.Called(result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(orb.MultiPolygon), args.Error(1)
}

// MockNetworkRepository is a mock of NetworkRepository
type MockNetworkRepository struct {
	mock.Mock
}

func (m *MockNetworkRepository) FetchNetwork(ctx context.Context, place domain.Place, region orb.MultiPolygon) (*domain.StreetNetwork, error) {
	args := m.Called(ctx, place, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreetNetwork), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockChartRenderer is a mock of ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) Polar(panel domain.PolarPanel) image.Image {
	args := m.Called(panel)
	return args.Get(0).(image.Image)
}

func (m *MockChartRenderer) Grid(panels []domain.PolarPanel, suptitle string) image.Image {
	args := m.Called(panels, suptitle)
	return args.Get(0).(image.Image)
}

func (m *MockChartRenderer) StreetMap(network *domain.StreetNetwork) image.Image {
	args := m.Called(network)
	return args.Get(0).(image.Image)
}

// MockImageRepository is a mock of ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) NextPath(base, ext string) (string, error) {
	args := m.Called(base, ext)
	return args.String(0), args.Error(1)
}

func (m *MockImageRepository) SavePNG(base string, img image.Image) (string, error) {
	args := m.Called(base, img)
	return args.String(0), args.Error(1)
}

func (m *MockImageRepository) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// MockImageCompositor is a mock of ImageCompositor
type MockImageCompositor struct {
	mock.Mock
}

func (m *MockImageCompositor) Compose(ctx context.Context, polarPath, mapPath, goalPath string) domain.PostProcessResult {
	args := m.Called(ctx, polarPath, mapPath, goalPath)
	return args.Get(0).(domain.PostProcessResult)
}

// MockOrientationCollector is a mock of OrientationCollector
type MockOrientationCollector struct {
	mock.Mock
}

func (m *MockOrientationCollector) Collect(ctx context.Context, places []domain.Place) map[string]*domain.PlaceOrientation {
	args := m.Called(ctx, places)
	return args.Get(0).(map[string]*domain.PlaceOrientation)
}
