package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyodt/railbooking/internal/domain"
)

func TestDistanceKm(t *testing.T) {
	// Gambir to Yogyakarta is roughly 430 km as the crow flies.
	d := DistanceKm(-6.1767, 106.8306, -7.7892, 110.3639)
	assert.InDelta(t, 430, d, 15)

	assert.Zero(t, DistanceKm(-6.1767, 106.8306, -6.1767, 106.8306))
}

func TestStationDistanceKm(t *testing.T) {
	gambir := domain.Station{Code: "GMR", Latitude: "-6.1767", Longitude: "106.8306"}
	yogya := domain.Station{Code: "YK", Latitude: "-7.7892", Longitude: "110.3639"}

	d, err := StationDistanceKm(gambir, yogya)
	require.NoError(t, err)
	assert.InDelta(t, 430, d, 15)

	// Distance is symmetric.
	back, err := StationDistanceKm(yogya, gambir)
	require.NoError(t, err)
	assert.InDelta(t, d, back, 0.001)
}

func TestStationDistanceKm_BadCoordinates(t *testing.T) {
	gambir := domain.Station{Code: "GMR", Latitude: "-6.1767", Longitude: "106.8306"}
	broken := domain.Station{Code: "XX", Latitude: "not-a-number", Longitude: "0"}

	_, err := StationDistanceKm(gambir, broken)
	assert.Error(t, err)
}
