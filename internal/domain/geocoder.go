package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Point returns the result coordinates as a GeoPoint.
func (r GeocodingResult) Point() GeoPoint {
	return GeoPoint{Lat: r.Lat, Lon: r.Lon}
}

// Empty reports whether the provider returned no coordinates.
func (r GeocodingResult) Empty() bool {
	return r.Lat == 0 && r.Lon == 0
}

// Geocoder resolves free-text postal addresses to coordinates.
// A lookup with no match returns an empty result and a nil error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodingResult, error)
}
