package geo

import (
	"fmt"
	"math"
	"strconv"

	"github.com/prasetyodt/railbooking/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates
// using the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// StationDistanceKm parses the string coordinates the backend sends and
// returns the distance between two stations.
func StationDistanceKm(a, b domain.Station) (float64, error) {
	lat1, lon1, err := coords(a)
	if err != nil {
		return 0, err
	}
	lat2, lon2, err := coords(b)
	if err != nil {
		return 0, err
	}
	return DistanceKm(lat1, lon1, lat2, lon2), nil
}

func coords(s domain.Station) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(s.Latitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geo: station %s has bad latitude %q", s.Code, s.Latitude)
	}
	lon, err = strconv.ParseFloat(s.Longitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geo: station %s has bad longitude %q", s.Code, s.Longitude)
	}
	return lat, lon, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
