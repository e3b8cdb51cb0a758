package geo

import (
	"errors"
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371

// ErrInvalidPosition is used when a coordinate pair is out of range
var ErrInvalidPosition = errors.New("invalid position")

// Position is a WGS-84 latitude/longitude pair in decimal degrees
type Position struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// New creates a position, validating coordinate ranges.
func New(lat, lon float64) (*Position, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %v outside [-90,90]", ErrInvalidPosition, lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %v outside [-180,180]", ErrInvalidPosition, lon)
	}
	return &Position{Latitude: lat, Longitude: lon}, nil
}

// Distance computes the haversine great-circle distance between two fixes in
// kilometers. Either fix being absent yields exactly 0, a defined default so
// downstream aggregation never handles nulls for this field.
func Distance(p1, p2 *Position) float64 {
	if p1 == nil || p2 == nil {
		return 0
	}
	lat1 := radians(p1.Latitude)
	lat2 := radians(p2.Latitude)
	dlat := lat2 - lat1
	dlon := radians(p2.Longitude) - radians(p1.Longitude)

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	// a is in [0,1] by construction, but floating rounding can push it just
	// past 1 for near-antipodal fixes.
	if a > 1 {
		a = 1
	} else if a < 0 {
		a = 0
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
