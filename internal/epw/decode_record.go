package epw

import (
	"strconv"
	"time"
)

// DecodeRecord decodes one data line. line is the 1-based line number used in
// errors; loc is the zone the timestamp is expressed in.
func DecodeRecord(fields Fields, line int, loc *time.Location) (WeatherRecord, error) {
	if len(fields) != RecordFieldCount {
		return WeatherRecord{}, &DataFieldCountError{Line: line, Expected: RecordFieldCount, Actual: len(fields)}
	}
	ts, err := decodeTimestamp(fields, line, loc)
	if err != nil {
		return WeatherRecord{}, err
	}
	rec := WeatherRecord{Timestamp: ts}
	for _, f := range schema {
		if err := f.decode(&rec, fields[f.Index], line); err != nil {
			return WeatherRecord{}, err
		}
	}
	return rec, nil
}

func (f Field) decode(r *WeatherRecord, tok string, line int) error {
	switch f.Kind {
	case KindText:
		*f.textRef(r) = tok
	case KindFloat:
		v, err := parseFloat(tok)
		if err != nil {
			return f.fail(line, tok, err)
		}
		if !f.HasMissing || v != f.Missing {
			*f.floatRef(r) = Some(v)
		}
	case KindInteger:
		v, err := parseInt(tok)
		if err != nil {
			return f.fail(line, tok, err)
		}
		if !f.HasMissing || float64(v) != f.Missing {
			*f.intRef(r) = Some(v)
		}
	}
	return nil
}

func (f Field) fail(line int, tok string, err error) error {
	return &DataFieldError{Line: line, Field: f.Index, Name: f.Name, Token: tok, Err: err}
}

// decodeTimestamp builds the record time from the first five fields. Hour h
// covers the interval ending at h:00, so a record stamped with minute m of
// hour h is placed at (h-1):m. Minute 0 and minute 60 both close the hour and
// decode to h:00; hour 24 rolls over to 00:00 of the next day. Sub-hourly
// records therefore stay in order: hour 1 minutes 15, 30, 45, 60 decode to
// 00:15, 00:30, 00:45, 01:00.
func decodeTimestamp(fields Fields, line int, loc *time.Location) (time.Time, error) {
	var parts [len(dateFields)]int
	for i, name := range dateFields {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, &DataFieldError{Line: line, Field: i, Name: name, Token: fields[i], Err: err}
		}
		parts[i] = v
	}
	year, month, day, hour, minute := parts[0], parts[1], parts[2], parts[3], parts[4]
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) ||
		hour < 1 || hour > 24 || minute < 0 || minute > 60 {
		return time.Time{}, &CalendarDateError{Line: line, Year: year, Month: month, Day: day, Hour: hour, Minute: minute}
	}
	if minute == 0 {
		minute = 60
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, time.Month(month), day, hour-1, minute, 0, 0, loc), nil
}
