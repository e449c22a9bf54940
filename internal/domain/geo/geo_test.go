package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestHaversine_SamePoint(t *testing.T) {
	if d := Haversine(12.97, 77.59, 12.97, 77.59); d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestHaversine_OneDegreeLatitude(t *testing.T) {
	// 1 degree of latitude on a 6371 km sphere is ~111.195 km.
	d := Haversine(0, 0, 1, 0)
	if !almost(d, 111_195, 10) {
		t.Fatalf("want ~111195m, got %f", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(12.9716, 77.5946, 13.0827, 80.2707)
	b := Haversine(13.0827, 80.2707, 12.9716, 77.5946)
	if !almost(a, b, 1e-6) {
		t.Fatalf("asymmetric: %f vs %f", a, b)
	}
}

func TestPoint_DistanceTo(t *testing.T) {
	p := NewPoint(12.97, 77.59)
	q := NewPoint(12.98, 77.59)
	if d := p.DistanceTo(q); !almost(d, 1112, 2) {
		t.Fatalf("want ~1112m, got %f", d)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"origin", 0, 0, true},
		{"bounds", 90, -180, true},
		{"lat too high", 90.1, 0, false},
		{"lon too low", 0, -180.5, false},
		{"nan", math.NaN(), 0, false},
		{"inf", 0, math.Inf(1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateCoordinates(tc.lat, tc.lon); got != tc.want {
				t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tc.lat, tc.lon, got, tc.want)
			}
			if got := NewPoint(tc.lat, tc.lon).Valid(); got != tc.want {
				t.Errorf("Point.Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
