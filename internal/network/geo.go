package network

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters - средний радиус Земли, которым считаются длины ребер
const EarthRadiusMeters = 6371009.0

// Distance - длина дуги большого круга между точками в метрах
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing - начальный азимут от точки 1 к точке 2 в градусах [0, 360)
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	lat1Rad := p1.Lat.Radians()
	lat2Rad := p2.Lat.Radians()
	lonDiff := p2.Lng.Radians() - p1.Lng.Radians()

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)

	bearing := math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
	if bearing >= 360 {
		bearing = 0
	}
	return bearing
}
