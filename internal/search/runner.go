// Package search runs strongest-earthquake searches: resolve the origin, fetch
// the feed, select, record metrics, and publish the report.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/couchcryptid/quake-radius/internal/observability"
)

// FeedSource returns the current earthquake collection.
type FeedSource interface {
	FetchEvents(ctx context.Context) ([]domain.Earthquake, error)
}

// Publisher delivers completed reports to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, report domain.SearchReport) error
}

// Options fixes what every search looks for.
type Options struct {
	Address       string
	DefaultOrigin domain.GeoPoint
	RadiusMiles   float64
	WindowDays    float64
}

// Runner orchestrates searches. Geocoder and Publisher may be nil.
type Runner struct {
	feed      FeedSource
	geocoder  domain.Geocoder
	publisher Publisher
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool
	latest    atomic.Pointer[domain.SearchReport]
}

// New creates a Runner. The ticker clock follows domain.SetClock.
func New(feed FeedSource, geocoder domain.Geocoder, publisher Publisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		feed:      feed,
		geocoder:  geocoder,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		clock:     domain.Clock(),
	}
}

// CheckReadiness returns nil once at least one search has completed.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no search has completed yet")
	}
	return nil
}

// LatestReport returns the most recent completed report.
func (r *Runner) LatestReport() (domain.SearchReport, bool) {
	report := r.latest.Load()
	if report == nil {
		return domain.SearchReport{}, false
	}
	return *report, true
}

// ResolveOrigin geocodes the configured address, falling back to the default origin.
func (r *Runner) ResolveOrigin(ctx context.Context) (domain.GeoPoint, domain.OriginSource) {
	return domain.ResolveOrigin(ctx, r.opts.Address, r.geocoder, r.opts.DefaultOrigin, r.logger)
}

// Search resolves the origin and runs one search from it.
func (r *Runner) Search(ctx context.Context) (domain.SearchReport, error) {
	origin, source := r.ResolveOrigin(ctx)
	return r.SearchFrom(ctx, origin, source)
}

// SearchFrom fetches the feed and selects the strongest qualifying event around origin.
// A publish failure is returned alongside the completed report.
func (r *Runner) SearchFrom(ctx context.Context, origin domain.GeoPoint, source domain.OriginSource) (domain.SearchReport, error) {
	events, err := r.feed.FetchEvents(ctx)
	if err != nil {
		return domain.SearchReport{}, err
	}

	criteria := domain.SearchCriteria{
		Origin:      origin,
		RadiusMiles: r.opts.RadiusMiles,
		WindowDays:  r.opts.WindowDays,
		NowMillis:   domain.NowMillis(),
	}
	result := domain.SelectStrongest(events, criteria)

	report := domain.SearchReport{
		RunID:         uuid.NewString(),
		Address:       r.opts.Address,
		OriginSource:  source,
		Criteria:      criteria,
		Result:        result,
		EventsScanned: len(events),
		CompletedAt:   time.UnixMilli(criteria.NowMillis).UTC(),
	}
	r.record(&report)

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, report); err != nil {
			return report, fmt.Errorf("publish report %s: %w", report.RunID, err)
		}
	}
	return report, nil
}

func (r *Runner) record(report *domain.SearchReport) {
	if report.Result.Found {
		report.DistanceMiles = domain.DistanceMiles(report.Criteria.Origin, report.Result.Event.Epicenter)
		r.metrics.Searches.WithLabelValues("found").Inc()
		r.metrics.StrongestMagnitude.Set(report.Result.Event.Magnitude)
		r.logger.Info("strongest earthquake selected",
			"run_id", report.RunID,
			"event_id", report.Result.Event.ID,
			"magnitude", report.Result.Event.Magnitude,
			"place", report.Result.Event.Place,
			"distance_miles", report.DistanceMiles,
			"events_scanned", report.EventsScanned,
		)
	} else {
		r.metrics.Searches.WithLabelValues("none").Inc()
		r.metrics.StrongestMagnitude.Set(0)
		r.logger.Info("no earthquake matched",
			"run_id", report.RunID,
			"events_scanned", report.EventsScanned,
		)
	}

	r.latest.Store(report)
	r.ready.Store(true)
}

// Watch runs a search immediately and then once per interval until ctx is
// cancelled. Failed cycles are logged and retried on the next tick.
func (r *Runner) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	r.logger.Info("watch started", "interval", interval, "radius_miles", r.opts.RadiusMiles, "window_days", r.opts.WindowDays)
	r.metrics.WatchRunning.Set(1)
	defer r.metrics.WatchRunning.Set(0)

	ticker := r.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.Search(ctx); err != nil {
			if ctx.Err() != nil {
				r.logger.Info("watch stopping", "reason", ctx.Err())
				return nil
			}
			r.logger.Error("search cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			r.logger.Info("watch stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}
