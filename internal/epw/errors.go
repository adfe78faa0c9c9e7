package epw

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrIO               = errors.New("epw: read failed")
	ErrTruncatedHeader  = errors.New("epw: truncated header")
	ErrHeaderFieldCount = errors.New("epw: header field count mismatch")
	ErrHeaderField      = errors.New("epw: invalid header field")
	ErrDataFieldCount   = errors.New("epw: data field count mismatch")
	ErrDataField        = errors.New("epw: invalid data field")
	ErrInvalidDate      = errors.New("epw: invalid calendar date")
)

// TruncatedHeaderError reports input that ended before all header lines
// were read.
type TruncatedHeaderError struct {
	Section Section // the section that was expected next
	Line    int
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf("truncated header: expected %s on line %d", e.Section, e.Line)
}

func (e *TruncatedHeaderError) Unwrap() error { return ErrTruncatedHeader }

// HeaderFieldCountError reports a header line whose field count does not
// match its section layout. For DESIGN CONDITIONS the counts are condition
// groups rather than fields.
type HeaderFieldCountError struct {
	Section  Section
	Expected int
	Actual   int
}

func (e *HeaderFieldCountError) Error() string {
	unit := "fields"
	if e.Section == SectionDesignConditions {
		unit = "condition groups"
	}
	return fmt.Sprintf("%s: expected %d %s, got %d", e.Section, e.Expected, unit, e.Actual)
}

func (e *HeaderFieldCountError) Unwrap() error { return ErrHeaderFieldCount }

// HeaderFieldError reports a header token that is not a valid value for its
// position. Field is the zero-based index in the line, keyword included.
type HeaderFieldError struct {
	Section Section
	Field   int
	Name    string
	Token   string
	Err     error
}

func (e *HeaderFieldError) Error() string {
	return fmt.Sprintf("%s: field %d (%s) %q: %v", e.Section, e.Field, e.Name, e.Token, e.Err)
}

func (e *HeaderFieldError) Unwrap() []error { return []error{ErrHeaderField, e.Err} }

// DataFieldCountError reports a data line with the wrong number of fields.
type DataFieldCountError struct {
	Line     int
	Expected int
	Actual   int
}

func (e *DataFieldCountError) Error() string {
	return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, e.Expected, e.Actual)
}

func (e *DataFieldCountError) Unwrap() error { return ErrDataFieldCount }

// DataFieldError reports a data token that does not parse as its field type
// and is not the field's missing sentinel.
type DataFieldError struct {
	Line  int
	Field int // zero-based index in the line
	Name  string
	Token string
	Err   error
}

func (e *DataFieldError) Error() string {
	return fmt.Sprintf("line %d: field %d (%s) %q: %v", e.Line, e.Field, e.Name, e.Token, e.Err)
}

func (e *DataFieldError) Unwrap() []error { return []error{ErrDataField, e.Err} }

// CalendarDateError reports date and time components that do not form a
// valid timestamp.
type CalendarDateError struct {
	Line   int
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

func (e *CalendarDateError) Error() string {
	return fmt.Sprintf("line %d: invalid date %04d-%02d-%02d hour %d minute %d",
		e.Line, e.Year, e.Month, e.Day, e.Hour, e.Minute)
}

func (e *CalendarDateError) Unwrap() error { return ErrInvalidDate }

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
