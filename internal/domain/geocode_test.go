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
	forwardResult GeocodingResult
	forwardErr    error
	reverseResult GeocodingResult
	reverseErr    error
	forwardCalls  int
	reverseCalls  int
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, _, _ string) (GeocodingResult, error) {
	m.forwardCalls++
	return m.forwardResult, m.forwardErr
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.reverseCalls++
	return m.reverseResult, m.reverseErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichStation_NilGeocoder(t *testing.T) {
	station := Station{WMO: testWMO, City: "Tampa", Region: "FL"}

	result := EnrichStation(context.Background(), station, nil, discardLogger())

	assert.Empty(t, result.GeoSource)
	assert.Empty(t, result.FormattedAddress)
}

func TestEnrichStation_ReverseGeocode(t *testing.T) {
	geo := &mockGeocoder{
		reverseResult: GeocodingResult{
			FormattedAddress: "Tampa International Airport, Tampa, Florida, United States",
			PlaceName:        "Tampa International Airport",
			Confidence:       0.98,
		},
	}

	station := Station{WMO: testWMO, Lat: 27.97, Lon: -82.53}

	result := EnrichStation(context.Background(), station, geo, discardLogger())

	assert.Equal(t, "Tampa International Airport, Tampa, Florida, United States", result.FormattedAddress)
	assert.Equal(t, "Tampa International Airport", result.PlaceName)
	assert.Equal(t, 0.98, result.GeoConfidence)
	assert.Equal(t, "reverse", result.GeoSource)
	assert.Equal(t, 0, geo.forwardCalls)
	assert.Equal(t, 1, geo.reverseCalls)
}

func TestEnrichStation_ForwardGeocode(t *testing.T) {
	geo := &mockGeocoder{
		forwardResult: GeocodingResult{
			Lat:              27.9506,
			Lon:              -82.4572,
			FormattedAddress: "Tampa, Florida, United States",
			PlaceName:        "Tampa",
			Confidence:       0.9,
		},
	}

	// Placeholder coordinates → forward geocode by name.
	station := Station{WMO: testWMO, City: "Tampa", Region: "FL"}

	result := EnrichStation(context.Background(), station, geo, discardLogger())

	assert.Equal(t, 27.9506, result.Lat)
	assert.Equal(t, -82.4572, result.Lon)
	assert.Equal(t, "forward", result.GeoSource)
	assert.Equal(t, 1, geo.forwardCalls)
	assert.Equal(t, 0, geo.reverseCalls)
}

func TestEnrichStation_ReverseError_GracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{
		reverseErr: errors.New("rate limited"),
	}

	station := Station{WMO: testWMO, Lat: 27.97, Lon: -82.53}

	result := EnrichStation(context.Background(), station, geo, discardLogger())

	assert.Equal(t, "failed", result.GeoSource)
	assert.Equal(t, 27.97, result.Lat) // original coordinates preserved
}

func TestEnrichStation_ForwardError_GracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{
		forwardErr: errors.New("API timeout"),
	}

	station := Station{WMO: testWMO, City: "Tampa", Region: "FL"}

	result := EnrichStation(context.Background(), station, geo, discardLogger())

	assert.Equal(t, "failed", result.GeoSource)
	assert.Equal(t, float64(0), result.Lat)
}

func TestEnrichStation_EmptyResults(t *testing.T) {
	t.Run("reverse", func(t *testing.T) {
		geo := &mockGeocoder{}
		result := EnrichStation(context.Background(), Station{Lat: 27.97, Lon: -82.53}, geo, discardLogger())

		assert.Equal(t, "original", result.GeoSource)
		assert.Equal(t, 1, geo.reverseCalls)
	})

	t.Run("forward", func(t *testing.T) {
		geo := &mockGeocoder{}
		result := EnrichStation(context.Background(), Station{City: "Nowhere", Region: "XX"}, geo, discardLogger())

		assert.Equal(t, "original", result.GeoSource)
		assert.Equal(t, 1, geo.forwardCalls)
	})

	t.Run("no location data", func(t *testing.T) {
		geo := &mockGeocoder{}
		result := EnrichStation(context.Background(), Station{WMO: testWMO}, geo, discardLogger())

		assert.Equal(t, "original", result.GeoSource)
		assert.Equal(t, 0, geo.forwardCalls)
		assert.Equal(t, 0, geo.reverseCalls)
	})
}
