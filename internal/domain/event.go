package domain

import "time"

// GeoPoint is a WGS-84 latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Earthquake is a single event from the feed.
type Earthquake struct {
	ID               string   `json:"id"`
	Magnitude        float64  `json:"magnitude"`
	Epicenter        GeoPoint `json:"epicenter"`
	DepthKm          float64  `json:"depth_km"`
	OccurredAtMillis int64    `json:"occurred_at_ms"`
	Place            string   `json:"place"`
}

// OccurredAt returns the event time in UTC.
func (e Earthquake) OccurredAt() time.Time {
	return time.UnixMilli(e.OccurredAtMillis).UTC()
}

// SearchCriteria fixes the origin, radius, and trailing window for one search.
type SearchCriteria struct {
	Origin      GeoPoint `json:"origin"`
	RadiusMiles float64  `json:"radius_miles"`
	WindowDays  float64  `json:"window_days"`
	NowMillis   int64    `json:"now_ms"`
}

// SearchResult is the outcome of a selection. The zero value means no event qualified.
type SearchResult struct {
	Found bool       `json:"found"`
	Event Earthquake `json:"event,omitzero"`
}

// NoneFound is the result when no event satisfies the criteria.
var NoneFound = SearchResult{}

// Found wraps a selected event.
func Found(event Earthquake) SearchResult {
	return SearchResult{Found: true, Event: event}
}

// OriginSource records how a search origin was obtained.
type OriginSource string

const (
	OriginGeocoded OriginSource = "geocoded"
	OriginDefault  OriginSource = "default"
)

// SearchReport is everything one search run produced, ready for presentation or publishing.
type SearchReport struct {
	RunID         string         `json:"run_id"`
	Address       string         `json:"address"`
	OriginSource  OriginSource   `json:"origin_source"`
	Criteria      SearchCriteria `json:"criteria"`
	Result        SearchResult   `json:"result"`
	DistanceMiles float64        `json:"distance_miles,omitempty"`
	EventsScanned int            `json:"events_scanned"`
	CompletedAt   time.Time      `json:"completed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
