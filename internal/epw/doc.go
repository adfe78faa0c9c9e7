// Package epw decodes EnergyPlus Weather (EPW) files.
//
// # Layout
//
// An EPW file is plain comma-delimited text: eight header lines in a fixed
// order, followed by one line per weather observation.
//
//	LOCATION,<city>,<region>,<country>,<source>,<wmo>,<lat>,<lon>,<tz>,<elevation>
//	DESIGN CONDITIONS,<n>,[<source>,,Heating,...,Cooling,...,Extremes,...] x n
//	TYPICAL/EXTREME PERIODS,<n>,[<name>,<Typical|Extreme>,<start>,<end>] x n
//	GROUND TEMPERATURES,<n>,[<depth>,<cond>,<dens>,<cp>,<jan>..<dec>] x n
//	HOLIDAYS/DAYLIGHT SAVINGS,<Yes|No>,<dst start>,<dst end>,<n>,[<name>,<date>] x n
//	COMMENTS 1,<free text>
//	COMMENTS 2,<free text>
//	DATA PERIODS,<n>,<records per hour>,[<name>,<start weekday>,<start>,<end>] x n
//
// Sections with a count field are validated against it: the line must carry
// exactly base + n*width fields.
//
// # Data records
//
// Each data line has 35 fields: year, month, day, hour, minute, the source and
// uncertainty flags, then the measured quantities. Hours run 1..24 where hour
// 24 is the last hour of the day; it decodes to 00:00 of the following day.
// A record stamped with minute m of hour h sits at (h-1):m, so hourly records
// (minute 60 or 0) decode to h:00 and sub-hourly records fall inside the hour
// they close.
//
// Missing values:
//
//	Each measured field has a documented sentinel (99.9 for temperatures,
//	999 for humidity, 9999 for radiation, 999999 for pressure and
//	illuminance, ...). A token numerically equal to the sentinel decodes as an
//	absent [Optional]; every other token is parsed literally.
//
// Present weather observation and codes are kept as opaque strings.
//
// # Errors
//
// Decoding is fail-fast: the first malformed line aborts the parse and no
// partial [File] is returned. Every error matches one of the Err* kinds with
// [errors.Is] and carries its section or line context.
package epw
