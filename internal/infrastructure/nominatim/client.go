package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/street-orientation/internal/config"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	apperrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
)

const serviceName = "nominatim"

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	email      string
	logger     *zap.Logger
}

// NewClient создает новый клиент для Nominatim API
func NewClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		email:     cfg.Email,
		logger:    logger,
	}
}

// SearchParams собирает параметры запроса /search.
// Структурированные параметры места перекрывают значения по умолчанию.
func SearchParams(query domain.PlaceQuery, email string) url.Values {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("dedupe", "0")
	params.Set("polygon_geojson", "1")
	if email != "" {
		params.Set("email", email)
	}

	if query.IsStructured() {
		for k, v := range query.Params {
			params.Set(k, v)
		}
	} else {
		params.Set("q", query.Text)
	}
	return params
}

// Search ищет место и возвращает результаты как есть
func (c *client) Search(ctx context.Context, query domain.PlaceQuery) ([]domain.GeocodeResult, error) {
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, SearchParams(query, c.email).Encode())

	c.logger.Debug("Calling Nominatim search API",
		zap.String("url", endpoint),
		zap.String("query", query.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Nominatim API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &apperrors.UpstreamError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var results []domain.GeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Nominatim search API call successful",
		zap.String("query", query.String()),
		zap.Int("results", len(results)))

	return results, nil
}

// Boundary извлекает регион (Polygon или MultiPolygon) из результата поиска
func (c *client) Boundary(result domain.GeocodeResult) (orb.MultiPolygon, error) {
	return Boundary(result)
}

// Boundary разбирает geojson результата в orb.MultiPolygon
func Boundary(result domain.GeocodeResult) (orb.MultiPolygon, error) {
	if !result.HasGeometry() {
		return nil, apperrors.Wrap(apperrors.ErrPlaceNotRegion, fmt.Errorf("result has no geometry"))
	}

	geometry, err := geojson.UnmarshalGeometry(result.GeoJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	switch g := geometry.Geometry().(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}, nil
	case orb.MultiPolygon:
		return g, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrPlaceNotRegion,
			fmt.Errorf("geometry type %s is not a region", geometry.Geometry().GeoJSONType()))
	}
}
