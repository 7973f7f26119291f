package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceQuery_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    PlaceQuery
		expectError bool
	}{
		{
			name:     "free text query",
			input:    `"Augsburg, Germany"`,
			expected: PlaceQuery{Text: "Augsburg, Germany"},
		},
		{
			name:     "structured query",
			input:    `{"state": "Berlin", "country": "Germany"}`,
			expected: PlaceQuery{Params: map[string]string{"state": "Berlin", "country": "Germany"}},
		},
		{
			name:     "structured query with non-string values",
			input:    `{"city": "Paris", "admin_level": 8, "skip": null}`,
			expected: PlaceQuery{Params: map[string]string{"city": "Paris", "admin_level": "8"}},
		},
		{
			name:     "structured query with long numbers",
			input:    `{"postalcode": 1234567, "osm_id": 62422, "ratio": 0.5}`,
			expected: PlaceQuery{Params: map[string]string{"postalcode": "1234567", "osm_id": "62422", "ratio": "0.5"}},
		},
		{
			name:        "null query",
			input:       `null`,
			expectError: true,
		},
		{
			name:        "array query",
			input:       `["Berlin"]`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q PlaceQuery
			err := json.Unmarshal([]byte(tt.input), &q)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestPlaceQuery_String(t *testing.T) {
	text := PlaceQuery{Text: "Bremen, Germany"}
	assert.Equal(t, "Bremen, Germany", text.String())
	assert.False(t, text.IsStructured())

	structured := PlaceQuery{Params: map[string]string{"state": "Berlin", "country": "Germany"}}
	assert.True(t, structured.IsStructured())
	assert.Equal(t, "country=Germany&state=Berlin", structured.String())
}

func TestPlaceQuery_MarshalRoundTrip(t *testing.T) {
	structured := PlaceQuery{Params: map[string]string{"state": "Berlin"}}
	data, err := json.Marshal(structured)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"Berlin"}`, string(data))

	data, err = json.Marshal(PlaceQuery{Text: "Essen, Germany"})
	require.NoError(t, err)
	assert.Equal(t, `"Essen, Germany"`, string(data))
}

func TestGeocodeResult_GeometryType(t *testing.T) {
	tests := []struct {
		name     string
		geojson  string
		expected string
		region   bool
	}{
		{"polygon", `{"type":"Polygon","coordinates":[]}`, GeometryPolygon, true},
		{"multipolygon", `{"type":"MultiPolygon","coordinates":[]}`, GeometryMultiPolygon, true},
		{"point", `{"type":"Point","coordinates":[1,2]}`, "Point", false},
		{"line", `{"type":"LineString","coordinates":[]}`, "LineString", false},
		{"missing", ``, "", false},
		{"null", `null`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := GeocodeResult{GeoJSON: json.RawMessage(tt.geojson)}
			assert.Equal(t, tt.expected, r.GeometryType())
			assert.Equal(t, tt.region, IsRegionGeometry(r.GeometryType()))
		})
	}
}

func TestBoundingBox_Extend(t *testing.T) {
	b := EmptyBoundingBox()
	assert.True(t, b.IsEmpty())

	b.Extend(48.1, 11.5)
	b.Extend(48.2, 11.4)

	assert.False(t, b.IsEmpty())
	assert.Equal(t, 48.1, b.MinLat)
	assert.Equal(t, 48.2, b.MaxLat)
	assert.Equal(t, 11.4, b.MinLon)
	assert.Equal(t, 11.5, b.MaxLon)
}

func TestHistogram_Centers(t *testing.T) {
	h := &Histogram{Slices: 4, Frequencies: []float64{0.1, 0.4, 0.2, 0.3}}
	assert.Equal(t, []float64{0, 90, 180, 270}, h.Centers())
	assert.Equal(t, 0.4, h.Max())
}
