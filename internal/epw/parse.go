package epw

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	errEmpty      = errors.New("empty value")
	errNotFinite  = errors.New("value is not finite")
	errNotInteger = errors.New("value is not an integer")
	errNotDecimal = errors.New("value is not a decimal number")
)

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errEmpty
	}
	if isHex(s) {
		return 0, errNotDecimal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// isHex reports a 0x prefix after an optional sign. strconv accepts hex
// floats but EPW values are decimal.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// parseInt accepts plain integers and integral decimals such as "9999.".
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errEmpty
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errNotInteger
	}
	return int(f), nil
}

// parseMonthDay parses "M/D" or "M/D/YYYY". Spaces inside the field are
// ignored, so "7/ 6" is July 6.
func parseMonthDay(s string) (MonthDay, error) {
	s = strings.ReplaceAll(s, " ", "")
	parts := strings.Split(s, "/")
	if len(parts) != 2 && len(parts) != 3 {
		return MonthDay{}, fmt.Errorf("expected M/D, got %q", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthDay{}, fmt.Errorf("month: %w", err)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthDay{}, fmt.Errorf("day: %w", err)
	}
	var year int
	if len(parts) == 3 {
		if year, err = strconv.Atoi(parts[2]); err != nil {
			return MonthDay{}, fmt.Errorf("year: %w", err)
		}
	}
	// Without a year, February 29 is allowed.
	ref := year
	if ref == 0 {
		ref = 2000
	}
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), ref) {
		return MonthDay{}, fmt.Errorf("no such day %d/%d", month, day)
	}
	return MonthDay{Month: time.Month(month), Day: day, Year: year}, nil
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown day of week %q", s)
	}
	return d, nil
}

func parsePeriodKind(s string) (PeriodKind, error) {
	switch {
	case strings.EqualFold(s, "Typical"):
		return PeriodTypical, nil
	case strings.EqualFold(s, "Extreme"):
		return PeriodExtreme, nil
	default:
		return 0, fmt.Errorf("unknown period type %q", s)
	}
}

func parseYesNo(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "Yes"):
		return true, nil
	case strings.EqualFold(s, "No"):
		return false, nil
	default:
		return false, fmt.Errorf("expected Yes or No, got %q", s)
	}
}
