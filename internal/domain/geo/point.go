package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// pointPattern pulls the first two signed decimals out of "(lng,lat)" point text.
// Parentheses and whitespace are optional.
var pointPattern = regexp.MustCompile(`\(?\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)?`)

// ParsePoint reads the stored "(lng,lat)" representation.
// Returns false for empty, malformed or out-of-range input.
func ParsePoint(s string) (Point, bool) {
	m := pointPattern.FindStringSubmatch(s)
	if m == nil {
		return Point{}, false
	}
	lng, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Point{}, false
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Point{}, false
	}
	if !ValidateCoordinates(lat, lng) {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

// String formats the point in the same "(lng,lat)" layout ParsePoint accepts.
func (p Point) String() string {
	return fmt.Sprintf("(%s,%s)",
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
	)
}

// HaversineKm returns the great-circle distance in kilometers between two points.
func HaversineKm(a, b Point) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
