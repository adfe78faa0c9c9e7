// Package domain models the observations the ETL service publishes from
// EnergyPlus Weather (EPW) files.
//
// # Data Source
//
// EPW files are typical-year weather datasets (TMY2, TMY3, IWEC, ...) with one
// file per station. Files are dropped into a watched directory by an upstream
// process; the service decodes each one with package epw and emits one
// [Observation] per data record.
//
// # EPW Conventions
//
// Station:
//
//	The LOCATION header names the station: city, region, country, dataset
//	source and WMO number, coordinates in decimal degrees (north and east
//	positive), the standard time zone as hours from UTC and the elevation in
//	meters. Timestamps are local standard time; daylight saving is never
//	applied.
//
// Hours:
//
//	Hours run 1..24 and label the end of the interval, so hour 1 covers
//	00:00-01:00. Hour 24 is reported as 00:00 of the following day.
//
// Typical years:
//
//	TMY files splice months taken from different source years. Timestamps are
//	therefore increasing within a month but may step backwards in year at a
//	month boundary. See [Validate].
//
// Missing values:
//
//	Each measured quantity has a documented sentinel (99.9 for temperatures,
//	999 for humidity, 9999 for radiation, ...). Sentinels decode as absent
//	values and are serialized as JSON null.
//
// # ID Generation
//
// Observation IDs are deterministic SHA-256 hashes of wmo|source|timestamp.
// Reprocessing the same file yields the same IDs, so downstream upserts
// (ON CONFLICT DO NOTHING) stay idempotent. See [generateID].
package domain
