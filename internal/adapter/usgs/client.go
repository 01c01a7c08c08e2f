// Package usgs downloads and decodes the USGS GeoJSON earthquake summary feeds.
package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/couchcryptid/quake-radius/internal/observability"
)

// FetchError reports a feed download that did not produce a usable response.
// StatusCode is set when the server answered with a non-200 status; otherwise
// Err carries the transport failure.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cannot fulfil request for %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("url not reachable %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches a feed URL. It implements search.FeedSource.
type Client struct {
	http    *resty.Client
	feedURL string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a feed client. No retries are configured; a failed
// download surfaces to the caller immediately.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/geo+json, application/json")

	return &Client{
		http:    httpClient,
		feedURL: feedURL,
		logger:  logger,
		metrics: metrics,
	}
}

// URL returns the feed URL this client reads.
func (c *Client) URL() string { return c.feedURL }

// FetchEvents downloads the feed and returns every feature that carries a
// magnitude, a time, and a longitude/latitude pair, in feed order.
func (c *Client) FetchEvents(ctx context.Context) ([]domain.Earthquake, error) {
	start := time.Now()
	events, outcome, err := c.fetch(ctx)
	c.metrics.FeedFetches.WithLabelValues(outcome).Inc()
	if err != nil {
		return nil, err
	}
	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	c.metrics.FeedEvents.Observe(float64(len(events)))
	return events, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.Earthquake, string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.feedURL)
	if err != nil {
		return nil, "unreachable", &FetchError{URL: c.feedURL, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, "http_error", &FetchError{URL: c.feedURL, StatusCode: resp.StatusCode()}
	}

	var fc featureCollection
	if err := json.Unmarshal(resp.Body(), &fc); err != nil {
		return nil, "decode_error", fmt.Errorf("decode feed %s: %w", c.feedURL, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, "decode_error", fmt.Errorf("decode feed %s: %w", c.feedURL, errNotCollection(fc.Type))
	}

	events := make([]domain.Earthquake, 0, len(fc.Features))
	skipped := 0
	for i := range fc.Features {
		event, err := fc.Features[i].toEarthquake()
		if err != nil {
			skipped++
			c.logger.Warn("skipping feed feature", "id", fc.Features[i].ID, "error", err)
			continue
		}
		events = append(events, event)
	}
	if skipped > 0 {
		c.metrics.FeedEventsSkipped.Add(float64(skipped))
	}

	c.logger.Debug("feed decoded",
		"url", c.feedURL,
		"title", fc.Metadata.Title,
		"features", len(fc.Features),
		"events", len(events),
		"skipped", skipped,
	)
	return events, "success", nil
}

func errNotCollection(got string) error {
	if got == "" {
		return errors.New("missing GeoJSON type")
	}
	return fmt.Errorf("unexpected GeoJSON type %q", got)
}

// GeoJSON summary feed types. Coordinates are [longitude, latitude, depth].

type featureCollection struct {
	Type     string    `json:"type"`
	Metadata metadata  `json:"metadata"`
	Features []feature `json:"features"`
}

type metadata struct {
	Generated int64  `json:"generated"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   *geometry  `json:"geometry"`
}

type properties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  *int64   `json:"time"`
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"`
}

var (
	errNoMagnitude   = errors.New("missing magnitude")
	errNoTime        = errors.New("missing time")
	errNoCoordinates = errors.New("missing coordinates")
)

func (f *feature) toEarthquake() (domain.Earthquake, error) {
	if f.Properties.Mag == nil {
		return domain.Earthquake{}, errNoMagnitude
	}
	if f.Properties.Time == nil {
		return domain.Earthquake{}, errNoTime
	}
	if f.Geometry == nil || len(f.Geometry.Coordinates) < 2 {
		return domain.Earthquake{}, errNoCoordinates
	}

	coords := f.Geometry.Coordinates
	event := domain.Earthquake{
		ID:               f.ID,
		Magnitude:        *f.Properties.Mag,
		Epicenter:        domain.GeoPoint{Lat: coords[1], Lon: coords[0]},
		OccurredAtMillis: *f.Properties.Time,
		Place:            f.Properties.Place,
	}
	if len(coords) > 2 {
		event.DepthKm = coords[2]
	}
	return event, nil
}
