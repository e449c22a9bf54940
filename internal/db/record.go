package db

import (
	"errors"
	"math"
)

// Unit is the distance unit used by every geo query and hit.
const Unit = "m"

// GeoQuery is the input for a radius search around a point.
type GeoQuery struct {
	Longitude    float64
	Latitude     float64
	RadiusMeters float64
}

// Validate rejects non-finite or out-of-range origins and radii.
func (q *GeoQuery) Validate() error {
	for _, v := range []float64{q.Longitude, q.Latitude, q.RadiusMeters} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("geo query values must be finite")
		}
	}
	if q.Longitude < -180 || q.Longitude > 180 || q.Latitude < -90 || q.Latitude > 90 {
		return errors.New("geo query origin out of range")
	}
	if q.RadiusMeters <= 0 {
		return errors.New("geo query radius must be positive")
	}
	return nil
}

// GeoHit is a single member returned by a geo query.
type GeoHit struct {
	ID       string
	Distance float64
}

// Record is one document to seed: its fields, its coordinate for the geo
// index and its position in store-native order.
type Record struct {
	ID        string
	Longitude float64
	Latitude  float64
	Order     float64
	Fields    map[string]string
}
