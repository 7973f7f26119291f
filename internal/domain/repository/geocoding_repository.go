package repository

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/street-orientation/internal/domain"
)

// GeocodingRepository определяет методы для работы с геокодером (Nominatim)
type GeocodingRepository interface {
	// Search выполняет поиск места и возвращает сырые результаты
	Search(ctx context.Context, query domain.PlaceQuery) ([]domain.GeocodeResult, error)

	// Boundary извлекает полигон региона из результата поиска
	Boundary(result domain.GeocodeResult) (orb.MultiPolygon, error)
}
