package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testAddress = "68 Willow Rd, Menlo Park, CA, USA"

var fallbackOrigin = GeoPoint{Lat: 37.45, Lon: -122.16}

// --- tests ---

func TestResolveOrigin_NilGeocoder(t *testing.T) {
	origin, source := ResolveOrigin(context.Background(), testAddress, nil, fallbackOrigin, discardLogger())

	assert.Equal(t, fallbackOrigin, origin)
	assert.Equal(t, OriginDefault, source)
}

func TestResolveOrigin_Geocoded(t *testing.T) {
	geo := &mockGeocoder{
		result: GeocodingResult{
			Lat:              37.4530,
			Lon:              -122.1817,
			FormattedAddress: "68 Willow Road, Menlo Park, California 94025, United States",
			Confidence:       0.97,
		},
	}

	origin, source := ResolveOrigin(context.Background(), testAddress, geo, fallbackOrigin, discardLogger())

	assert.Equal(t, GeoPoint{Lat: 37.4530, Lon: -122.1817}, origin)
	assert.Equal(t, OriginGeocoded, source)
	assert.Equal(t, 1, geo.calls)
}

func TestResolveOrigin_Error_GracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("API timeout")}

	origin, source := ResolveOrigin(context.Background(), testAddress, geo, fallbackOrigin, discardLogger())

	assert.Equal(t, fallbackOrigin, origin)
	assert.Equal(t, OriginDefault, source)
	assert.Equal(t, 1, geo.calls)
}

func TestResolveOrigin_NoMatch(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{}}

	origin, source := ResolveOrigin(context.Background(), "nowhere at all", geo, fallbackOrigin, discardLogger())

	assert.Equal(t, fallbackOrigin, origin)
	assert.Equal(t, OriginDefault, source)
}

func TestResolveOrigin_EmptyAddressSkipsLookup(t *testing.T) {
	geo := &mockGeocoder{}

	origin, source := ResolveOrigin(context.Background(), "", geo, fallbackOrigin, discardLogger())

	assert.Equal(t, fallbackOrigin, origin)
	assert.Equal(t, OriginDefault, source)
	assert.Equal(t, 0, geo.calls)
}
