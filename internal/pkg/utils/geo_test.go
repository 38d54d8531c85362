package utils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/pkg/utils"
)

// TestHaversineDistance tests distances between known points
func TestHaversineDistance(t *testing.T) {
	// Париж - Лондон, около 344 км
	d := utils.HaversineDistance(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 344, d, 5)

	// Париж - Берлин, около 878 км
	d = utils.HaversineDistance(48.8566, 2.3522, 52.52, 13.405)
	assert.InDelta(t, 878, d, 10)

	// одна и та же точка
	assert.Zero(t, utils.HaversineDistance(48.8566, 2.3522, 48.8566, 2.3522))
}

// TestHaversineDistance_Symmetry tests that the distance is direction independent
func TestHaversineDistance_Symmetry(t *testing.T) {
	a := utils.HaversineDistance(48.8566, 2.3522, 41.9028, 12.4964)
	b := utils.HaversineDistance(41.9028, 12.4964, 48.8566, 2.3522)
	assert.InDelta(t, a, b, 1e-9)
}

// TestNearestLocationDistance tests picking the closest of several locations
func TestNearestLocationDistance(t *testing.T) {
	site := &domain.Site{
		Locations: []domain.SiteLocation{
			{Latitude: 52.52, Longitude: 13.405}, // Берлин
			{Latitude: 48.86, Longitude: 2.35},   // Париж
			{Latitude: 41.90, Longitude: 12.50},  // Рим
		},
	}

	// пользователь в Париже: ближайшая локация почти в нуле
	d := utils.NearestLocationDistance(site, 48.8566, 2.3522)
	assert.Less(t, d, 5.0)
}

// TestNearestLocationDistance_NoLocations tests the sentinel for an empty location list
func TestNearestLocationDistance_NoLocations(t *testing.T) {
	site := &domain.Site{}
	d := utils.NearestLocationDistance(site, 0, 0)
	assert.True(t, math.IsInf(d, 1))
}

// TestValidateCoordinates tests coordinate range checks
func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(0, 0))
	assert.True(t, utils.ValidateCoordinates(-90, 180))
	assert.True(t, utils.ValidateCoordinates(90, -180))

	assert.False(t, utils.ValidateCoordinates(90.1, 0))
	assert.False(t, utils.ValidateCoordinates(-90.1, 0))
	assert.False(t, utils.ValidateCoordinates(0, 180.1))
	assert.False(t, utils.ValidateCoordinates(0, -180.1))
}
