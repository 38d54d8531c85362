package utils

import (
	"math"

	"github.com/heritage-catalog-service/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// NearestLocationDistance возвращает минимальное расстояние от точки до локаций
// объекта. Для объекта без локаций возвращает +Inf - такой объект в каталог
// попасть не должен, но значение-сентинел безопасно для сравнения.
func NearestLocationDistance(site *domain.Site, lat, lon float64) float64 {
	best := math.Inf(1)
	for _, loc := range site.Locations {
		d := HaversineDistance(lat, lon, loc.Latitude, loc.Longitude)
		if d < best {
			best = d
		}
	}
	return best
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
