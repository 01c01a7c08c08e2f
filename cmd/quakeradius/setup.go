package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/quake-radius/internal/adapter/geocache"
	"github.com/couchcryptid/quake-radius/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-radius/internal/adapter/nominatim"
	"github.com/couchcryptid/quake-radius/internal/config"
	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/couchcryptid/quake-radius/internal/observability"
)

// cliOptions holds flags that only affect presentation.
type cliOptions struct {
	json bool
}

// applyFlags overrides cfg with command-line flags and re-validates it.
// Flag defaults are the values already loaded from the environment.
func applyFlags(cfg *config.Config, args []string) (cliOptions, error) {
	return parseFlags(cfg, args, os.Stderr)
}

func parseFlags(cfg *config.Config, args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("quakeradius", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: quakeradius [flags]")
		fmt.Fprintln(fs.Output(), "Reports the strongest recent earthquake within a radius of an address.")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Address, "address", cfg.Address, "street address to search around")
	fs.Float64Var(&cfg.RadiusMiles, "radius", cfg.RadiusMiles, "search radius in miles")
	fs.Float64Var(&cfg.WindowDays, "days", cfg.WindowDays, "trailing window in days")
	fs.StringVar(&cfg.FeedURL, "feed", cfg.FeedURL, "USGS GeoJSON feed URL")
	fs.DurationVar(&cfg.WatchInterval, "watch", cfg.WatchInterval, "repeat the search on this interval and serve HTTP (0 runs once)")
	fs.BoolVar(&opts.json, "json", false, "print the full report as JSON")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := cfg.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// newGeocoder builds the configured provider behind the LRU cache, or nil when disabled.
func newGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) domain.Geocoder {
	var inner domain.Geocoder
	switch cfg.Geocoder {
	case config.GeocoderMapbox:
		inner = mapbox.NewClient(cfg.MapboxToken, cfg.GeocodeTimeout, metrics, logger)
	case config.GeocoderNominatim:
		inner = nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.GeocodeTimeout, metrics, logger)
	default:
		logger.Info("geocoding disabled, using default origin", "lat", cfg.DefaultLat, "lon", cfg.DefaultLon)
		return nil
	}

	logger.Info("geocoding enabled", "provider", cfg.Geocoder, "cache_size", cfg.GeocodeCacheSize, "timeout", cfg.GeocodeTimeout)
	return geocache.New(inner, cfg.GeocodeCacheSize, metrics)
}
