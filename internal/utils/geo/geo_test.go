package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "Zero distance",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 40.7128, lng2: -74.0060,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "NYC city hall to midtown",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 40.73, lng2: -73.99,
			expected:  2338,
			tolerance: 20,
		},
		{
			name: "Paris to London",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 51.5074, lng2: -0.1278,
			expected:  343_500,
			tolerance: 1000,
		},
		{
			name: "Across the antimeridian",
			lat1: 0, lng1: 179.5,
			lat2: 0, lng2: -179.5,
			expected:  111_195,
			tolerance: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("DistanceMeters() = %f, want %f (±%f)", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	d1 := DistanceMeters(40.7128, -74.0060, 34.0522, -118.2437)
	d2 := DistanceMeters(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestWithinRadius(t *testing.T) {
	// One degree of latitude is about 111.19 km on the sphere.
	if !WithinRadius(0, 0, 1, 0, 112_000) {
		t.Error("expected point inside radius")
	}
	if WithinRadius(0, 0, 1, 0, 110_000) {
		t.Error("expected point outside radius")
	}
}
