package postgresosm

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	"github.com/street-orientation/internal/network"
	pkgerrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
)

type networkRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	clip   bool
}

// NewNetworkRepository создает провайдер уличной сети поверх osm2pgsql базы.
// clip=true оставляет только ребра, оба конца которых лежат внутри региона.
func NewNetworkRepository(db *DB, clip bool) repository.NetworkRepository {
	return &networkRepository{
		db:     db.DB,
		logger: db.logger,
		clip:   clip,
	}
}

var drivableWaysQuery = fmt.Sprintf(`
	SELECT
		osm_id,
		COALESCE(highway, '') AS highway,
		COALESCE(oneway, '') AS oneway,
		COALESCE(service, '') AS service,
		COALESCE(access, '') AS access,
		COALESCE(area, '') AS area,
		COALESCE(construction, '') AS construction,
		COALESCE(hstore_to_json(tags), '{}'::json)::text AS tags_json,
		ST_AsGeoJSON(ST_Transform(way, %d), %d) AS geometry
	FROM %s
	WHERE osm_id > 0
	  AND highway IN (%s)
	  AND ST_Intersects(way, ST_Transform(ST_SetSRID(ST_GeomFromGeoJSON($1), %d), %d))
	ORDER BY osm_id
`, SRID4326, geoJSONPrecision, planetLineTable, sqlStringList(network.DrivableHighways()), SRID4326, SRID3857)

// FetchNetwork выбирает проезжие пути, пересекающие регион, и строит граф
func (r *networkRepository) FetchNetwork(ctx context.Context, place domain.Place, region orb.MultiPolygon) (*domain.StreetNetwork, error) {
	if len(region) == 0 {
		return nil, pkgerrors.Wrap(pkgerrors.ErrPlaceNotRegion, fmt.Errorf("empty region for %s", place.Name))
	}

	regionJSON, err := geojson.NewGeometry(region).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, drivableWaysQuery, string(regionJSON))
	if err != nil {
		r.logger.Error("failed to query drivable ways", zap.String("place", place.Name), zap.Error(err))
		return nil, pkgerrors.Wrap(pkgerrors.ErrDatabaseError, err)
	}
	defer rows.Close()

	var clipRegion orb.MultiPolygon
	if r.clip {
		clipRegion = region
	}
	builder := network.NewBuilder(clipRegion)

	var scanned int
	for rows.Next() {
		var row wayRow
		if err := rows.StructScan(&row); err != nil {
			r.logger.Error("failed to scan way row", zap.Error(err))
			return nil, pkgerrors.Wrap(pkgerrors.ErrDatabaseError, err)
		}
		scanned++

		ways, err := row.toWays()
		if err != nil {
			r.logger.Warn("skipping way", zap.Int64("osm_id", row.OSMID), zap.Error(err))
			continue
		}
		for _, way := range ways {
			builder.AddWay(way)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrDatabaseError, err)
	}

	result := builder.Build(place.Name)
	if len(result.Edges) == 0 {
		return nil, pkgerrors.Wrap(pkgerrors.ErrNetworkUnavailable, fmt.Errorf("no drivable edges for %s", place.Name))
	}

	r.logger.Debug("street network loaded from osm database",
		zap.String("place", place.Name),
		zap.Int("rows", scanned),
		zap.Int("ways", builder.Ways()),
		zap.Int("edges", len(result.Edges)),
		zap.Int("nodes", len(result.Nodes)))

	return result, nil
}
