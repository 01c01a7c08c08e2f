package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessage(t *testing.T) {
	completed := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	report := domain.SearchReport{
		RunID:        "run-1",
		OriginSource: domain.OriginDefault,
		Criteria: domain.SearchCriteria{
			Origin:      domain.GeoPoint{Lat: 37.45, Lon: -122.16},
			RadiusMiles: 100,
			WindowDays:  7,
		},
		Result:      domain.Found(domain.Earthquake{ID: "nc1", Magnitude: 4.1, Place: "Berkeley, CA"}),
		CompletedAt: completed,
	}

	out, err := domain.SerializeReport(report)
	require.NoError(t, err)
	msg := toMessage(out)

	assert.Equal(t, []byte("run-1"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "completed_at", msg.Headers[0].Key)
	assert.Equal(t, []byte(completed.Format(time.RFC3339)), msg.Headers[0].Value)
	assert.Equal(t, "found", msg.Headers[1].Key)
	assert.Equal(t, []byte("true"), msg.Headers[1].Value)

	var decoded domain.SearchReport
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, report, decoded)
}

func TestToMessage_NoHeaders(t *testing.T) {
	msg := toMessage(domain.OutputEvent{Key: []byte("k"), Value: []byte(`{}`)})

	assert.Empty(t, msg.Headers)
	assert.Equal(t, []byte("k"), msg.Key)
}
