package epw

import (
	"fmt"
	"math"
	"time"
)

// Section identifies one of the fixed header lines.
type Section int

const (
	SectionLocation Section = iota
	SectionDesignConditions
	SectionTypicalExtremePeriods
	SectionGroundTemperatures
	SectionHolidaysDaylightSavings
	SectionComments1
	SectionComments2
	SectionDataPeriods
)

// HeaderLines is the number of header lines preceding the data block.
const HeaderLines = 8

var sectionKeywords = [HeaderLines]string{
	"LOCATION",
	"DESIGN CONDITIONS",
	"TYPICAL/EXTREME PERIODS",
	"GROUND TEMPERATURES",
	"HOLIDAYS/DAYLIGHT SAVINGS",
	"COMMENTS 1",
	"COMMENTS 2",
	"DATA PERIODS",
}

// Keyword returns the leading token that introduces the section's line.
func (s Section) Keyword() string {
	if s < 0 || int(s) >= len(sectionKeywords) {
		return fmt.Sprintf("SECTION(%d)", int(s))
	}
	return sectionKeywords[s]
}

func (s Section) String() string { return s.Keyword() }

// Header is the decoded header block, one record per section in file order.
type Header struct {
	Location                Location                `json:"location"`
	DesignConditions        DesignConditions        `json:"design_conditions"`
	TypicalExtremePeriods   TypicalExtremePeriods   `json:"typical_extreme_periods"`
	GroundTemperatures      GroundTemperatures      `json:"ground_temperatures"`
	HolidaysDaylightSavings HolidaysDaylightSavings `json:"holidays_daylight_savings"`
	Comments1               Comments                `json:"comments_1"`
	Comments2               Comments                `json:"comments_2"`
	DataPeriods             DataPeriods             `json:"data_periods"`
}

// Location describes the weather station.
type Location struct {
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Source    string  `json:"source"`
	WMO       string  `json:"wmo"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  float64 `json:"time_zone"` // hours from UTC
	Elevation float64 `json:"elevation"` // meters
}

func (l Location) String() string {
	return fmt.Sprintf("%g°,%g° [%s, %s | %s]", l.Latitude, l.Longitude, l.City, l.Region, l.Country)
}

// Zone returns the station's standard time as a fixed offset zone.
func (l Location) Zone() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+g", l.TimeZone), int(math.Round(l.TimeZone*3600)))
}

// DesignConditions holds the ASHRAE design condition groups. Values are kept
// positional; their meaning depends on the handbook edition named in Source.
type DesignConditions struct {
	Count      int               `json:"count"`
	Conditions []DesignCondition `json:"conditions"`
}

// DesignCondition is one design condition group.
type DesignCondition struct {
	Source   string              `json:"source"`
	Heating  []Optional[float64] `json:"heating"`
	Cooling  []Optional[float64] `json:"cooling"`
	Extremes []Optional[float64] `json:"extremes"`
}

// PeriodKind distinguishes typical from extreme periods.
type PeriodKind int

const (
	PeriodTypical PeriodKind = iota
	PeriodExtreme
)

func (k PeriodKind) String() string {
	if k == PeriodExtreme {
		return "Extreme"
	}
	return "Typical"
}

// MarshalText implements encoding.TextMarshaler.
func (k PeriodKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// TypicalExtremePeriods lists the typical and extreme weeks of the file.
type TypicalExtremePeriods struct {
	Count   int                    `json:"count"`
	Periods []TypicalExtremePeriod `json:"periods"`
}

// TypicalExtremePeriod is one named period.
type TypicalExtremePeriod struct {
	Name  string     `json:"name"`
	Kind  PeriodKind `json:"kind"`
	Start MonthDay   `json:"start"`
	End   MonthDay   `json:"end"`
}

// GroundTemperatures holds monthly ground temperatures per depth.
type GroundTemperatures struct {
	Count  int                 `json:"count"`
	Depths []GroundTemperature `json:"depths"`
}

// GroundTemperature is the monthly profile at one depth.
type GroundTemperature struct {
	Depth        float64           `json:"depth"` // meters
	Conductivity Optional[float64] `json:"conductivity"`
	Density      Optional[float64] `json:"density"`
	SpecificHeat Optional[float64] `json:"specific_heat"`
	Monthly      [12]float64       `json:"monthly"` // °C, January first
}

// HolidaysDaylightSavings holds the leap year flag, daylight saving bounds
// and holidays. The bounds and holiday dates are free text in the format
// ("0", "4/ 5", "Last Monday in May") and are kept as written.
type HolidaysDaylightSavings struct {
	LeapYear             bool      `json:"leap_year"`
	DaylightSavingsStart string    `json:"daylight_savings_start"`
	DaylightSavingsEnd   string    `json:"daylight_savings_end"`
	Count                int       `json:"count"`
	Holidays             []Holiday `json:"holidays"`
}

// Holiday is a named holiday.
type Holiday struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Comments is a free text comment line.
type Comments struct {
	Text string `json:"text"`
}

// DataPeriods declares the date ranges covered by the data block.
type DataPeriods struct {
	Count          int          `json:"count"`
	RecordsPerHour int          `json:"records_per_hour"`
	Periods        []DataPeriod `json:"periods"`
}

// DataPeriod is one contiguous date range.
type DataPeriod struct {
	Name           string       `json:"name"`
	StartDayOfWeek time.Weekday `json:"start_day_of_week"`
	Start          MonthDay     `json:"start"`
	End            MonthDay     `json:"end"`
}

// MonthDay is a calendar day without a year, as written in period fields
// ("7/ 6", "12/31"). Year is set only when the field carried one.
type MonthDay struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Year  int        `json:"year,omitempty"`
}

func (d MonthDay) String() string {
	if d.Year != 0 {
		return fmt.Sprintf("%d/%d/%d", int(d.Month), d.Day, d.Year)
	}
	return fmt.Sprintf("%d/%d", int(d.Month), d.Day)
}
