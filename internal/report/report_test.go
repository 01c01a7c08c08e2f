package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:      domain.GeoPoint{Lat: 37.45, Lon: -122.16},
		RadiusMiles: 100,
		WindowDays:  7,
		NowMillis:   1_714_144_200_000,
	}
}

func TestHeader(t *testing.T) {
	assert.Equal(t,
		"Highest magnitude earthquake located within 100 miles from (37.45, -122.16) in last 7 days:",
		Header(defaultCriteria()))

	c := defaultCriteria()
	c.RadiusMiles = 12.5
	c.WindowDays = 0.5
	assert.Equal(t,
		"Highest magnitude earthquake located within 12.5 miles from (37.45, -122.16) in last 0.5 days:",
		Header(c))
}

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		result domain.SearchResult
		want   string
	}{
		{
			name:   "none found",
			result: domain.NoneFound,
			want:   "[ No Earthquakes !!! ]",
		},
		{
			name:   "fractional magnitude",
			result: domain.Found(domain.Earthquake{Magnitude: 3.42, Place: "5km NW of Portola Valley, CA"}),
			want:   "[ Earthquake of Magnitude 3.42 at 5km NW of Portola Valley, CA ]",
		},
		{
			name:   "whole magnitude keeps a decimal",
			result: domain.Found(domain.Earthquake{Magnitude: 5, Place: "Central California"}),
			want:   "[ Earthquake of Magnitude 5.0 at Central California ]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.result))
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	r := domain.SearchReport{
		Criteria: defaultCriteria(),
		Result:   domain.Found(domain.Earthquake{ID: "nc1", Magnitude: 4.5, Place: "10km E of Fremont, CA"}),
	}

	require.NoError(t, Write(&buf, r))
	assert.Equal(t,
		"Highest magnitude earthquake located within 100 miles from (37.45, -122.16) in last 7 days:\n"+
			"\t[ Earthquake of Magnitude 4.5 at 10km E of Fremont, CA ]\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	r := domain.SearchReport{
		RunID:         "run-1",
		OriginSource:  domain.OriginDefault,
		Criteria:      defaultCriteria(),
		Result:        domain.NoneFound,
		EventsScanned: 12,
		CompletedAt:   time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
	}

	require.NoError(t, WriteJSON(&buf, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "default", decoded["origin_source"])
	assert.InDelta(t, 12, decoded["events_scanned"], 0)
	assert.NotContains(t, decoded, "distance_miles")
}
