package domain

import (
	"context"
	"time"

	"github.com/couchcryptid/epw-etl/internal/epw"
)

// RawFile is an EPW file discovered by the extractor and not yet processed.
type RawFile struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Commit  func(ctx context.Context) error
}

// Station is the weather station a file describes, taken from its LOCATION
// header and optionally enriched by geocoding.
type Station struct {
	WMO       string  `json:"wmo"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Source    string  `json:"source"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TimeZone  float64 `json:"time_zone"`
	Elevation float64 `json:"elevation"`

	// Geocoding enrichment fields.
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "reverse", "original", "failed"
}

// Observation is one weather record ready for the sink.
type Observation struct {
	ID          string            `json:"id"`
	IngestID    string            `json:"ingest_id"`
	SourceFile  string            `json:"source_file"`
	Station     Station           `json:"station"`
	Record      epw.WeatherRecord `json:"record"`
	ProcessedAt time.Time         `json:"processed_at"`
}
