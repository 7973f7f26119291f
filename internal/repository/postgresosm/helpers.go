package postgresosm

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/street-orientation/internal/network"
)

// nodeID выводит стабильный ID узла из округленных координат.
// osm2pgsql не хранит ID узлов линий, а общие узлы дают одинаковые координаты.
func nodeID(lat, lon float64) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%.*f,%.*f", geoJSONPrecision, lat, geoJSONPrecision, lon)
	return int64(h.Sum64())
}

func parseTags(raw []byte) map[string]string {
	if len(raw) == 0 {
		return map[string]string{}
	}

	var tmp map[string]string
	if err := json.Unmarshal(raw, &tmp); err != nil {
		return map[string]string{}
	}

	return tmp
}

// sqlStringList превращает константный список в SQL-литерал 'a','b',...
func sqlStringList(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)

	quoted := make([]string, len(sorted))
	for i, v := range sorted {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ",")
}

// wayRow - строка planet_osm_line
type wayRow struct {
	OSMID        int64  `db:"osm_id"`
	Highway      string `db:"highway"`
	Oneway       string `db:"oneway"`
	Service      string `db:"service"`
	Access       string `db:"access"`
	Area         string `db:"area"`
	Construction string `db:"construction"`
	TagsJSON     []byte `db:"tags_json"`
	Geometry     string `db:"geometry"`
}

// toWays превращает строку в пути для network.Builder.
// MultiLineString дает несколько путей с одним OSM ID.
func (row *wayRow) toWays() ([]network.Way, error) {
	tags := parseTags(row.TagsJSON)
	for key, val := range map[string]string{
		"highway":      row.Highway,
		"oneway":       row.Oneway,
		"service":      row.Service,
		"access":       row.Access,
		"area":         row.Area,
		"construction": row.Construction,
	} {
		if val != "" {
			tags[key] = val
		}
	}

	geometry, err := geojson.UnmarshalGeometry([]byte(row.Geometry))
	if err != nil {
		return nil, fmt.Errorf("failed to parse way %d geometry: %w", row.OSMID, err)
	}

	var lines []orb.LineString
	switch g := geometry.Geometry().(type) {
	case orb.LineString:
		lines = append(lines, g)
	case orb.MultiLineString:
		lines = append(lines, g...)
	default:
		return nil, fmt.Errorf("way %d has unsupported geometry %s", row.OSMID, geometry.Geometry().GeoJSONType())
	}

	ways := make([]network.Way, 0, len(lines))
	for _, line := range lines {
		nodes := make([]network.WayNode, 0, len(line))
		for _, p := range line {
			nodes = append(nodes, network.WayNode{
				ID:  nodeID(p.Lat(), p.Lon()),
				Lat: p.Lat(),
				Lon: p.Lon(),
			})
		}
		ways = append(ways, network.Way{ID: row.OSMID, Nodes: nodes, Tags: tags})
	}
	return ways, nil
}
