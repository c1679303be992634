// Package geo вычисляет расстояния между координатами и проверяет попадание в геозону.
package geo

import (
	"math"

	"github.com/shenikar/geoface_attendance/internal/models"
)

// EarthRadiusMeters - средний радиус Земли
const EarthRadiusMeters = 6371000.0

// Haversine возвращает расстояние по большому кругу в метрах между двумя точками в градусах.
// NaN во входных данных переходит в результат.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δφ := (lat2 - lat1) * math.Pi / 180
	Δλ := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceMeters - расстояние между двумя координатами
func DistanceMeters(a, b models.Coordinate) float64 {
	return Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// FromOrigin - расстояние от точки школы до координаты
func FromOrigin(g models.GeofenceConfig, c models.Coordinate) float64 {
	return Haversine(g.OriginLat, g.OriginLng, c.Latitude, c.Longitude)
}

// IsInRange - граница включительная
func IsInRange(distance, radiusMeters float64) bool {
	return distance <= radiusMeters
}
