package domain

import (
	"context"
	"log/slog"
)

// ResolveOrigin geocodes address and falls back to fallback when geocoding is
// disabled (nil geocoder), fails, or finds nothing. Failures are logged as
// warnings and never returned (graceful degradation).
func ResolveOrigin(ctx context.Context, address string, geocoder Geocoder, fallback GeoPoint, logger *slog.Logger) (GeoPoint, OriginSource) {
	if geocoder == nil || address == "" {
		return fallback, OriginDefault
	}

	result, err := geocoder.Geocode(ctx, address)
	if err != nil {
		logger.Warn("could not find geo coordinates for address, using default",
			"address", address,
			"default_lat", fallback.Lat,
			"default_lon", fallback.Lon,
			"error", err,
		)
		return fallback, OriginDefault
	}
	if result.Empty() {
		logger.Warn("no geocoding match for address, using default",
			"address", address,
			"default_lat", fallback.Lat,
			"default_lon", fallback.Lon,
		)
		return fallback, OriginDefault
	}

	logger.Debug("address geocoded",
		"address", address,
		"formatted_address", result.FormattedAddress,
		"lat", result.Lat,
		"lon", result.Lon,
		"confidence", result.Confidence,
	)
	return result.Point(), OriginGeocoded
}
