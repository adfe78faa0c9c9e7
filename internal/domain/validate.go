package domain

import (
	"fmt"
	"time"

	"github.com/couchcryptid/epw-etl/internal/epw"
)

// Check is the outcome of one integrity check.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Validate runs integrity checks over a decoded file: the record count
// against the declared data periods, the first record against the first
// period start, and chronological order within each source year.
func Validate(file *epw.File) []Check {
	return []Check{
		checkRecordCount(file),
		checkPeriodStart(file),
		checkChronology(file),
	}
}

// Passed reports whether every check passed.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// ExpectedRecords returns the number of records the DATA PERIODS header
// declares: days covered times 24 times records per hour, summed over periods.
func ExpectedRecords(h epw.Header) int {
	year := 2001
	if h.HolidaysDaylightSavings.LeapYear {
		year = 2000
	}
	total := 0
	for _, p := range h.DataPeriods.Periods {
		total += periodDays(p, year) * 24 * h.DataPeriods.RecordsPerHour
	}
	return total
}

func periodDays(p epw.DataPeriod, year int) int {
	startYear, endYear := year, year
	if p.Start.Year != 0 {
		startYear = p.Start.Year
	}
	if p.End.Year != 0 {
		endYear = p.End.Year
	}
	start := time.Date(startYear, p.Start.Month, p.Start.Day, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, p.End.Month, p.End.Day, 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		end = end.AddDate(1, 0, 0)
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func checkRecordCount(file *epw.File) Check {
	want := ExpectedRecords(file.Header)
	got := len(file.Data)
	return Check{
		Name:   "record count",
		Passed: got == want,
		Detail: fmt.Sprintf("%d records, data periods declare %d", got, want),
	}
}

func checkPeriodStart(file *epw.File) Check {
	c := Check{Name: "period start"}
	if len(file.Data) == 0 || len(file.Header.DataPeriods.Periods) == 0 {
		c.Detail = "no records"
		return c
	}
	start := file.Header.DataPeriods.Periods[0].Start
	first := recordDay(file.Data[0].Timestamp)
	c.Passed = first.Month() == start.Month && first.Day() == start.Day
	c.Detail = fmt.Sprintf("first record on %d/%d, period starts %s", int(first.Month()), first.Day(), start)
	return c
}

func checkChronology(file *epw.File) Check {
	c := Check{Name: "chronological order", Passed: true, Detail: "timestamps increase within each source year"}
	for i := 1; i < len(file.Data); i++ {
		prev, cur := file.Data[i-1].Timestamp, file.Data[i].Timestamp
		if recordDay(prev).Year() != recordDay(cur).Year() {
			continue
		}
		if !cur.After(prev) {
			c.Passed = false
			c.Detail = fmt.Sprintf("record %d (%s) does not follow record %d (%s)",
				i+1, cur.Format(time.RFC3339), i, prev.Format(time.RFC3339))
			return c
		}
	}
	return c
}

// recordDay maps a record timestamp to the day its interval belongs to, so
// hour 24 (00:00 of the next day) stays on the day it was written.
func recordDay(ts time.Time) time.Time {
	return ts.Add(-time.Nanosecond)
}
