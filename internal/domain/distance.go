package domain

import "github.com/jftuga/geodist"

// DistanceMiles returns the ellipsoidal (Vincenty) distance between two points
// in statute miles. Vincenty's iteration does not converge for nearly
// antipodal points; those fall back to the haversine great-circle distance.
//
// Latitude must be in [-90, 90] and longitude in [-180, 180]; neither is checked.
func DistanceMiles(a, b GeoPoint) float64 {
	p := geodist.Coord{Lat: a.Lat, Lon: a.Lon}
	q := geodist.Coord{Lat: b.Lat, Lon: b.Lon}

	miles, _, err := geodist.VincentyDistance(p, q)
	if err != nil {
		miles, _ = geodist.HaversineDistance(p, q)
	}
	return miles
}

// WithinRadius reports whether destination lies strictly closer than radiusMiles to origin.
// A radius of zero or less excludes every point, including origin itself.
func WithinRadius(origin, destination GeoPoint, radiusMiles float64) bool {
	if radiusMiles <= 0 {
		return false
	}
	return DistanceMiles(origin, destination) < radiusMiles
}
