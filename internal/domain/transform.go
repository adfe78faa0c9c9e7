package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/couchcryptid/epw-etl/internal/epw"
)

// NewStation builds a Station from a decoded LOCATION header.
func NewStation(loc epw.Location) Station {
	return Station{
		WMO:       loc.WMO,
		City:      loc.City,
		Region:    loc.Region,
		Country:   loc.Country,
		Source:    loc.Source,
		Lat:       loc.Latitude,
		Lon:       loc.Longitude,
		TimeZone:  loc.TimeZone,
		Elevation: loc.Elevation,
	}
}

// BuildObservations turns every record of a decoded file into an Observation
// stamped with the station, the ingest ID and the current processing time.
// Records keep file order.
func BuildObservations(file *epw.File, station Station, sourceFile, ingestID string) []Observation {
	now := clock.Now()
	out := make([]Observation, len(file.Data))
	for i := range file.Data {
		rec := file.Data[i]
		out[i] = Observation{
			ID:          generateID(station.WMO, station.Source, rec.Timestamp),
			IngestID:    ingestID,
			SourceFile:  sourceFile,
			Station:     station,
			Record:      rec,
			ProcessedAt: now,
		}
	}
	return out
}

// generateID produces a deterministic ID from the station and the record
// time. The timestamp is normalized to UTC so the zone name cannot change it.
func generateID(wmo, source string, ts time.Time) string {
	input := fmt.Sprintf("%s|%s|%s", wmo, source, ts.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if wmo == "" {
		return short
	}
	return wmo + "-" + short
}
