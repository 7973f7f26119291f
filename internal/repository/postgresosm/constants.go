package postgresosm

const (
	SRID4326 = 4326
	SRID3857 = 3857

	// geoJSONPrecision - знаков после запятой в ST_AsGeoJSON (~1 см)
	geoJSONPrecision = 7
)

const (
	planetLineTable = "planet_osm_line"
)
