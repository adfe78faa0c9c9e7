package domain

import (
	"context"
	"log/slog"
)

// EnrichStation attempts to enrich a station with geocoding data.
// If geocoder is nil or geocoding fails, the station is returned with
// GeoSource set accordingly (graceful degradation).
func EnrichStation(ctx context.Context, station Station, geocoder Geocoder, logger *slog.Logger) Station {
	if geocoder == nil {
		return station
	}

	hasCoords := station.Lat != 0 || station.Lon != 0
	hasName := station.City != "" && station.Region != ""

	// Forward geocode: some datasets leave placeholder 0,0 coordinates.
	if !hasCoords && hasName {
		result, err := geocoder.ForwardGeocode(ctx, station.City, station.Region)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"wmo", station.WMO,
				"city", station.City,
				"region", station.Region,
				"error", err,
			)
			station.GeoSource = "failed"
			return station
		}
		if result.Lat != 0 || result.Lon != 0 {
			station.Lat = result.Lat
			station.Lon = result.Lon
			station.FormattedAddress = result.FormattedAddress
			station.PlaceName = result.PlaceName
			station.GeoConfidence = result.Confidence
			station.GeoSource = "forward"
			return station
		}
		station.GeoSource = "original"
		return station
	}

	if hasCoords {
		result, err := geocoder.ReverseGeocode(ctx, station.Lat, station.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"wmo", station.WMO,
				"lat", station.Lat,
				"lon", station.Lon,
				"error", err,
			)
			station.GeoSource = "failed"
			return station
		}
		if result.FormattedAddress != "" {
			station.FormattedAddress = result.FormattedAddress
			station.PlaceName = result.PlaceName
			station.GeoConfidence = result.Confidence
			station.GeoSource = "reverse"
			return station
		}
	}

	station.GeoSource = "original"
	return station
}
