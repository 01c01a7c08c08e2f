//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-radius/internal/adapter/kafka"
	"github.com/couchcryptid/quake-radius/internal/adapter/usgs"
	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/couchcryptid/quake-radius/internal/observability"
	"github.com/couchcryptid/quake-radius/internal/search"
)

const testTopic = "test-strongest-earthquakes"

// Event times are relative to 2024-04-26T15:10:00Z.
const feedBody = `{
  "type": "FeatureCollection",
  "metadata": {"title": "integration fixture", "count": 3},
  "features": [
    {"id": "nc1", "properties": {"mag": 2.7, "place": "3km N of Woodside, CA", "time": 1714140600000},
     "geometry": {"coordinates": [-122.25, 37.45, 6.0]}},
    {"id": "nc2", "properties": {"mag": 4.3, "place": "8km E of Alum Rock, CA", "time": 1714000000000},
     "geometry": {"coordinates": [-121.75, 37.38, 9.4]}},
    {"id": "us1", "properties": {"mag": 6.8, "place": "Kermadec Islands", "time": 1714140600000},
     "geometry": {"coordinates": [-177.9, -29.5, 30.0]}}
  ]
}`

// TestSearchPublishesReport runs a search against a stub feed and verifies the
// report arrives on the Kafka topic with its key, headers, and body intact.
func TestSearchPublishesReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	t.Cleanup(feedSrv.Close)

	metrics := observability.NewMetricsForTesting()
	feed := usgs.NewClient(feedSrv.URL, 5*time.Second, discardLogger(), metrics)

	writer := kafka.NewWriter([]string{broker}, testTopic, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	runner := search.New(feed, nil, writer, search.Options{
		Address:       "68 Willow Rd, Menlo Park, CA, USA",
		DefaultOrigin: domain.GeoPoint{Lat: 37.45, Lon: -122.16},
		RadiusMiles:   100,
		WindowDays:    7,
	}, discardLogger(), metrics)

	report, err := runner.Search(ctx)
	require.NoError(t, err)
	require.True(t, report.Result.Found)
	assert.Equal(t, "nc2", report.Result.Event.ID)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	assert.Equal(t, report.RunID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "true", headers["found"])
	assert.Equal(t, "2024-04-26T15:10:00Z", headers["completed_at"])

	var got domain.SearchReport
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, report, got)
}
