package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Geocoder providers.
const (
	GeocoderNominatim = "nominatim"
	GeocoderMapbox    = "mapbox"
	GeocoderNone      = "none"
)

// DefaultFeedURL is the USGS summary feed of all earthquakes in the past 30 days.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_month.geojson"

// Config holds all settings, populated from environment variables.
type Config struct {
	// Search parameters.
	Address     string
	DefaultLat  float64
	DefaultLon  float64
	RadiusMiles float64
	WindowDays  float64

	FeedURL     string
	FeedTimeout time.Duration

	// Geocoding configuration.
	Geocoder           string
	NominatimURL       string
	NominatimUserAgent string
	MapboxToken        string
	GeocodeTimeout     time.Duration
	GeocodeCacheSize   int

	LogLevel  string
	LogFormat string

	// Watch mode; zero interval means a single search.
	WatchInterval   time.Duration
	HTTPAddr        string
	ShutdownTimeout time.Duration
	KafkaBrokers    []string
	KafkaTopic      string
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory, if present, seeds variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Address:            sharedcfg.EnvOrDefault("ADDRESS", "68 Willow Rd, Menlo Park, CA, USA"),
		FeedURL:            sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		NominatimURL:       sharedcfg.EnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "quake-radius"),
		MapboxToken:        os.Getenv("MAPBOX_TOKEN"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:    shutdownTimeout,
		KafkaTopic:         sharedcfg.EnvOrDefault("KAFKA_TOPIC", "strongest-earthquakes"),
		GeocodeCacheSize:   parseCacheSize(),
	}

	if cfg.DefaultLat, err = parseFloat("DEFAULT_LAT", "37.45"); err != nil {
		return nil, err
	}
	if cfg.DefaultLon, err = parseFloat("DEFAULT_LON", "-122.16"); err != nil {
		return nil, err
	}
	if cfg.RadiusMiles, err = parseFloat("RADIUS_MILES", "100"); err != nil {
		return nil, err
	}
	if cfg.WindowDays, err = parseFloat("WINDOW_DAYS", "7"); err != nil {
		return nil, err
	}
	if cfg.FeedTimeout, err = parsePositiveDuration("FEED_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeTimeout, err = parsePositiveDuration("GEOCODE_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WatchInterval, err = time.ParseDuration(sharedcfg.EnvOrDefault("WATCH_INTERVAL", "0s")); err != nil || cfg.WatchInterval < 0 {
		return nil, errors.New("invalid WATCH_INTERVAL")
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	cfg.Geocoder = os.Getenv("GEOCODER")
	if cfg.Geocoder == "" {
		cfg.Geocoder = GeocoderNominatim
		if cfg.MapboxToken != "" {
			cfg.Geocoder = GeocoderMapbox
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints. It is re-run after CLI flag overrides.
func (c *Config) Validate() error {
	if c.DefaultLat < -90 || c.DefaultLat > 90 {
		return errors.New("DEFAULT_LAT must be within [-90, 90]")
	}
	if c.DefaultLon < -180 || c.DefaultLon > 180 {
		return errors.New("DEFAULT_LON must be within [-180, 180]")
	}
	if c.RadiusMiles <= 0 {
		return errors.New("RADIUS_MILES must be greater than 0")
	}
	if c.WindowDays <= 0 {
		return errors.New("WINDOW_DAYS must be greater than 0")
	}
	if c.FeedURL == "" {
		return errors.New("FEED_URL is required")
	}
	switch c.Geocoder {
	case GeocoderNominatim, GeocoderNone:
	case GeocoderMapbox:
		if c.MapboxToken == "" {
			return errors.New("GEOCODER is mapbox but MAPBOX_TOKEN is not set")
		}
	default:
		return fmt.Errorf("GEOCODER must be one of %s, %s, %s", GeocoderNominatim, GeocoderMapbox, GeocoderNone)
	}
	if c.WatchInterval < 0 {
		return errors.New("WATCH_INTERVAL must not be negative")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// Watching reports whether searches repeat on WatchInterval.
func (c *Config) Watching() bool {
	return c.WatchInterval > 0
}

func parseFloat(key, def string) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, def), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("GEOCODE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
