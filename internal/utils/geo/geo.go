package geo

import "math"

// earthRadiusMeters is the mean Earth radius of the spherical approximation.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle (haversine) distance in meters
// between two points given in degrees.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether the two points are at most radiusMeters apart.
func WithinRadius(lat1, lng1, lat2, lng2, radiusMeters float64) bool {
	return DistanceMeters(lat1, lng1, lat2, lng2) <= radiusMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
