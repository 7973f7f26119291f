package repository

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/street-orientation/internal/domain"
)

// NetworkRepository возвращает улично-дорожную сеть для автомобилей внутри региона
type NetworkRepository interface {
	FetchNetwork(ctx context.Context, place domain.Place, region orb.MultiPolygon) (*domain.StreetNetwork, error)
}
