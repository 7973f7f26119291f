package domain

import "encoding/json"

// Допустимые типы геометрии региона
const (
	GeometryPolygon      = "Polygon"
	GeometryMultiPolygon = "MultiPolygon"
)

// GeocodeResult - один результат поиска геокодера (формат Nominatim)
type GeocodeResult struct {
	PlaceID     int64           `json:"place_id"`
	OSMType     string          `json:"osm_type"`
	OSMID       int64           `json:"osm_id"`
	DisplayName string          `json:"display_name"`
	Class       string          `json:"class"`
	Type        string          `json:"type"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	Importance  float64         `json:"importance"`
	BoundingBox []string        `json:"boundingbox,omitempty"`
	GeoJSON     json.RawMessage `json:"geojson,omitempty"`
}

// HasGeometry сообщает, вернул ли геокодер геометрию
func (r *GeocodeResult) HasGeometry() bool {
	return len(r.GeoJSON) > 0 && string(r.GeoJSON) != "null"
}

// GeometryType возвращает поле "type" из geojson (пустая строка, если его нет)
func (r *GeocodeResult) GeometryType() string {
	if !r.HasGeometry() {
		return ""
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(r.GeoJSON, &head); err != nil {
		return ""
	}
	return head.Type
}

// IsRegionGeometry - true для Polygon и MultiPolygon
func IsRegionGeometry(geometryType string) bool {
	return geometryType == GeometryPolygon || geometryType == GeometryMultiPolygon
}
