package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quake_radius"

// Metrics holds the Prometheus counters, histograms, and gauges for earthquake searches.
type Metrics struct {
	// Feed metrics.
	FeedFetches       *prometheus.CounterVec // labels: outcome={success,http_error,unreachable,decode_error}
	FeedFetchDuration prometheus.Histogram
	FeedEvents        prometheus.Histogram
	FeedEventsSkipped prometheus.Counter

	// Search metrics.
	Searches           *prometheus.CounterVec // labels: result={found,none}
	StrongestMagnitude prometheus.Gauge
	WatchRunning       prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: provider={nominatim,mapbox}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all search metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetches_total",
			Help:      "Earthquake feed fetches by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of a complete feed download and decode.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeedEvents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_events",
			Help:      "Number of usable events per feed download.",
			Buckets:   []float64{10, 100, 500, 1000, 5000, 10000, 20000},
		}),
		FeedEventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_events_skipped_total",
			Help:      "Feed features dropped for missing magnitude, time, or coordinates.",
		}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Completed searches by result.",
		}, []string{"result"}),
		StrongestMagnitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "strongest_magnitude",
			Help:      "Magnitude of the most recent selected earthquake, 0 when none qualified.",
		}),
		WatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watch_running",
			Help:      "1 while the periodic search loop is active, 0 otherwise.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"provider"}),
	}

	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchDuration,
		m.FeedEvents,
		m.FeedEventsSkipped,
		m.Searches,
		m.StrongestMagnitude,
		m.WatchRunning,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FeedFetches:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "feed_fetches_total"}, []string{"outcome"}),
		FeedFetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "feed_fetch_duration_seconds"}),
		FeedEvents:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "feed_events"}),
		FeedEventsSkipped:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "feed_events_skipped_total"}),
		Searches:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "searches_total"}, []string{"result"}),
		StrongestMagnitude: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "strongest_magnitude"}),
		WatchRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "watch_running"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_requests_total"}, []string{"provider", "outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "geocode_api_duration_seconds"}, []string{"provider"}),
	}
}
