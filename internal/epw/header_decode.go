package epw

import (
	"errors"
	"fmt"
	"strings"
)

// maxRepetitions bounds declared group counts before they are used in field
// count arithmetic.
const maxRepetitions = 1 << 16

// layout is the field contract of one header line: the fixed leading fields
// (keyword and count included) followed by count repetitions of group.
type layout struct {
	section Section
	base    []string
	count   int // index of the repetition count in base, -1 for fixed lines
	group   []string
}

var months = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var (
	locationLayout = layout{
		section: SectionLocation,
		base:    []string{"keyword", "city", "region", "country", "source", "wmo", "latitude", "longitude", "time_zone", "elevation"},
		count:   -1,
	}
	designConditionsLayout = layout{
		section: SectionDesignConditions,
		base:    []string{"keyword", "count"},
		count:   1,
	}
	typicalExtremeLayout = layout{
		section: SectionTypicalExtremePeriods,
		base:    []string{"keyword", "count"},
		count:   1,
		group:   []string{"name", "type", "start", "end"},
	}
	groundTemperaturesLayout = layout{
		section: SectionGroundTemperatures,
		base:    []string{"keyword", "count"},
		count:   1,
		group:   append([]string{"depth", "conductivity", "density", "specific_heat"}, months...),
	}
	holidaysLayout = layout{
		section: SectionHolidaysDaylightSavings,
		base:    []string{"keyword", "leap_year", "daylight_savings_start", "daylight_savings_end", "count"},
		count:   4,
		group:   []string{"name", "date"},
	}
	dataPeriodsLayout = layout{
		section: SectionDataPeriods,
		base:    []string{"keyword", "count", "records_per_hour"},
		count:   1,
		group:   []string{"name", "start_day_of_week", "start", "end"},
	}
)

func commentsLayout(s Section) layout {
	return layout{section: s, base: []string{"keyword"}, count: -1, group: []string{"text"}}
}

func (l layout) name(i int) string {
	if i < len(l.base) {
		return l.base[i]
	}
	if len(l.group) == 0 {
		return fmt.Sprintf("field_%d", i)
	}
	return l.group[(i-len(l.base))%len(l.group)]
}

// headerLine binds tokenized fields to their layout so parse failures carry
// section, index and token.
type headerLine struct {
	layout
	fields Fields
}

func (h headerLine) fail(i int, err error) error {
	return &HeaderFieldError{
		Section: h.section,
		Field:   i,
		Name:    h.name(i),
		Token:   h.fields.At(i),
		Err:     err,
	}
}

func (h headerLine) float(i int) (float64, error) {
	v, err := parseFloat(h.fields.At(i))
	if err != nil {
		return 0, h.fail(i, err)
	}
	return v, nil
}

func (h headerLine) optionalFloat(i int) (Optional[float64], error) {
	if h.fields.At(i) == "" {
		return None[float64](), nil
	}
	v, err := h.float(i)
	if err != nil {
		return None[float64](), err
	}
	return Some(v), nil
}

func (h headerLine) integer(i int) (int, error) {
	v, err := parseInt(h.fields.At(i))
	if err != nil {
		return 0, h.fail(i, err)
	}
	return v, nil
}

func (h headerLine) monthDay(i int) (MonthDay, error) {
	d, err := parseMonthDay(h.fields.At(i))
	if err != nil {
		return MonthDay{}, h.fail(i, err)
	}
	return d, nil
}

// open checks the keyword and the field count. For repeating layouts it
// decodes the count field first and returns it.
func (l layout) open(fields Fields) (headerLine, int, error) {
	h := headerLine{layout: l, fields: fields}
	if !strings.EqualFold(fields.At(0), l.section.Keyword()) {
		return h, 0, h.fail(0, fmt.Errorf("expected %q", l.section.Keyword()))
	}
	if l.count < 0 {
		if len(l.group) == 0 && len(fields) != len(l.base) {
			return h, 0, l.mismatch(len(l.base), len(fields))
		}
		return h, 0, nil
	}
	n, err := h.repetitions()
	if err != nil {
		return h, 0, err
	}
	if l.group != nil {
		if want := len(l.base) + n*len(l.group); len(fields) != want {
			return h, 0, l.mismatch(want, len(fields))
		}
	}
	return h, n, nil
}

func (h headerLine) repetitions() (int, error) {
	if len(h.fields) <= h.count {
		return 0, h.mismatch(len(h.base), len(h.fields))
	}
	n, err := h.integer(h.count)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxRepetitions {
		return 0, h.fail(h.count, fmt.Errorf("count %d out of range", n))
	}
	return n, nil
}

func (l layout) mismatch(expected, actual int) error {
	return &HeaderFieldCountError{Section: l.section, Expected: expected, Actual: actual}
}

// DecodeLocation decodes the LOCATION line.
func DecodeLocation(fields Fields) (Location, error) {
	h, _, err := locationLayout.open(fields)
	if err != nil {
		return Location{}, err
	}
	loc := Location{
		City:    fields[1],
		Region:  fields[2],
		Country: fields[3],
		Source:  fields[4],
		WMO:     fields[5],
	}
	if loc.Latitude, err = h.float(6); err != nil {
		return Location{}, err
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return Location{}, h.fail(6, errors.New("latitude out of range [-90, 90]"))
	}
	if loc.Longitude, err = h.float(7); err != nil {
		return Location{}, err
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return Location{}, h.fail(7, errors.New("longitude out of range [-180, 180]"))
	}
	if loc.TimeZone, err = h.float(8); err != nil {
		return Location{}, err
	}
	if loc.TimeZone < -12 || loc.TimeZone > 14 {
		return Location{}, h.fail(8, errors.New("time zone out of range [-12, 14]"))
	}
	if loc.Elevation, err = h.float(9); err != nil {
		return Location{}, err
	}
	return loc, nil
}

type designBlock int

const (
	blockNone designBlock = iota
	blockHeating
	blockCooling
	blockExtremes
)

var designBlocks = map[string]designBlock{
	"heating":  blockHeating,
	"cooling":  blockCooling,
	"extremes": blockExtremes,
}

// DecodeDesignConditions decodes the DESIGN CONDITIONS line. Each condition
// starts with its source title, followed by Heating, Cooling and Extremes
// blocks of numeric values. Empty values inside a block decode as missing.
func DecodeDesignConditions(fields Fields) (DesignConditions, error) {
	h, n, err := designConditionsLayout.open(fields)
	if err != nil {
		return DesignConditions{}, err
	}
	dc := DesignConditions{Count: n, Conditions: make([]DesignCondition, 0, n)}
	block := blockNone
	for i := 2; i < len(fields); i++ {
		tok := fields[i]
		if b, ok := designBlocks[strings.ToLower(tok)]; ok {
			if len(dc.Conditions) == 0 {
				return DesignConditions{}, h.fail(i, errors.New("block before condition source"))
			}
			block = b
			continue
		}
		if block == blockNone {
			if tok == "" {
				continue
			}
			if len(dc.Conditions) > 0 {
				return DesignConditions{}, h.fail(i, errors.New("unexpected value before Heating block"))
			}
			dc.Conditions = append(dc.Conditions, DesignCondition{Source: tok})
			continue
		}
		v := None[float64]()
		if tok != "" {
			f, err := parseFloat(tok)
			if err != nil {
				if block != blockExtremes || !startsCondition(fields, i) {
					return DesignConditions{}, h.fail(i, err)
				}
				dc.Conditions = append(dc.Conditions, DesignCondition{Source: tok})
				block = blockNone
				continue
			}
			v = Some(f)
		}
		c := &dc.Conditions[len(dc.Conditions)-1]
		switch block {
		case blockHeating:
			c.Heating = append(c.Heating, v)
		case blockCooling:
			c.Cooling = append(c.Cooling, v)
		case blockExtremes:
			c.Extremes = append(c.Extremes, v)
		}
	}
	if len(dc.Conditions) != n {
		return DesignConditions{}, designConditionsLayout.mismatch(n, len(dc.Conditions))
	}
	return dc, nil
}

// startsCondition reports whether fields[i] opens a new condition: a source
// title, an empty field, then the Heating block.
func startsCondition(fields Fields, i int) bool {
	return fields.At(i+1) == "" && designBlocks[strings.ToLower(fields.At(i+2))] == blockHeating
}

// DecodeTypicalExtremePeriods decodes the TYPICAL/EXTREME PERIODS line.
func DecodeTypicalExtremePeriods(fields Fields) (TypicalExtremePeriods, error) {
	h, n, err := typicalExtremeLayout.open(fields)
	if err != nil {
		return TypicalExtremePeriods{}, err
	}
	out := TypicalExtremePeriods{Count: n, Periods: make([]TypicalExtremePeriod, 0, n)}
	for g := range n {
		at := len(typicalExtremeLayout.base) + g*len(typicalExtremeLayout.group)
		p := TypicalExtremePeriod{Name: fields[at]}
		if p.Kind, err = parsePeriodKind(fields[at+1]); err != nil {
			return TypicalExtremePeriods{}, h.fail(at+1, err)
		}
		if p.Start, err = h.monthDay(at + 2); err != nil {
			return TypicalExtremePeriods{}, err
		}
		if p.End, err = h.monthDay(at + 3); err != nil {
			return TypicalExtremePeriods{}, err
		}
		out.Periods = append(out.Periods, p)
	}
	return out, nil
}

// DecodeGroundTemperatures decodes the GROUND TEMPERATURES line. Soil
// properties are often left empty and decode as missing; depth and the
// twelve monthly temperatures are required.
func DecodeGroundTemperatures(fields Fields) (GroundTemperatures, error) {
	h, n, err := groundTemperaturesLayout.open(fields)
	if err != nil {
		return GroundTemperatures{}, err
	}
	out := GroundTemperatures{Count: n, Depths: make([]GroundTemperature, 0, n)}
	for g := range n {
		at := len(groundTemperaturesLayout.base) + g*len(groundTemperaturesLayout.group)
		var gt GroundTemperature
		if gt.Depth, err = h.float(at); err != nil {
			return GroundTemperatures{}, err
		}
		if gt.Conductivity, err = h.optionalFloat(at + 1); err != nil {
			return GroundTemperatures{}, err
		}
		if gt.Density, err = h.optionalFloat(at + 2); err != nil {
			return GroundTemperatures{}, err
		}
		if gt.SpecificHeat, err = h.optionalFloat(at + 3); err != nil {
			return GroundTemperatures{}, err
		}
		for m := range gt.Monthly {
			if gt.Monthly[m], err = h.float(at + 4 + m); err != nil {
				return GroundTemperatures{}, err
			}
		}
		out.Depths = append(out.Depths, gt)
	}
	return out, nil
}

// DecodeHolidaysDaylightSavings decodes the HOLIDAYS/DAYLIGHT SAVINGS line.
func DecodeHolidaysDaylightSavings(fields Fields) (HolidaysDaylightSavings, error) {
	h, n, err := holidaysLayout.open(fields)
	if err != nil {
		return HolidaysDaylightSavings{}, err
	}
	out := HolidaysDaylightSavings{
		DaylightSavingsStart: fields[2],
		DaylightSavingsEnd:   fields[3],
		Count:                n,
		Holidays:             make([]Holiday, 0, n),
	}
	if out.LeapYear, err = parseYesNo(fields[1]); err != nil {
		return HolidaysDaylightSavings{}, h.fail(1, err)
	}
	for g := range n {
		at := len(holidaysLayout.base) + g*len(holidaysLayout.group)
		out.Holidays = append(out.Holidays, Holiday{Name: fields[at], Date: fields[at+1]})
	}
	return out, nil
}

// DecodeComments decodes a COMMENTS 1 or COMMENTS 2 line. The text may itself
// contain commas; it is rejoined as written, minus surrounding whitespace.
func DecodeComments(section Section, fields Fields) (Comments, error) {
	if section != SectionComments1 && section != SectionComments2 {
		return Comments{}, fmt.Errorf("epw: %s is not a comments section", section)
	}
	if _, _, err := commentsLayout(section).open(fields); err != nil {
		return Comments{}, err
	}
	return Comments{Text: strings.Join(fields[1:], ",")}, nil
}

// DecodeDataPeriods decodes the DATA PERIODS line.
func DecodeDataPeriods(fields Fields) (DataPeriods, error) {
	h, n, err := dataPeriodsLayout.open(fields)
	if err != nil {
		return DataPeriods{}, err
	}
	if n < 1 {
		return DataPeriods{}, h.fail(1, errors.New("at least one data period is required"))
	}
	out := DataPeriods{Count: n, Periods: make([]DataPeriod, 0, n)}
	if out.RecordsPerHour, err = h.integer(2); err != nil {
		return DataPeriods{}, err
	}
	if out.RecordsPerHour < 1 || out.RecordsPerHour > 60 {
		return DataPeriods{}, h.fail(2, errors.New("records per hour out of range [1, 60]"))
	}
	for g := range n {
		at := len(dataPeriodsLayout.base) + g*len(dataPeriodsLayout.group)
		p := DataPeriod{Name: fields[at]}
		if p.StartDayOfWeek, err = parseWeekday(fields[at+1]); err != nil {
			return DataPeriods{}, h.fail(at+1, err)
		}
		if p.Start, err = h.monthDay(at + 2); err != nil {
			return DataPeriods{}, err
		}
		if p.End, err = h.monthDay(at + 3); err != nil {
			return DataPeriods{}, err
		}
		out.Periods = append(out.Periods, p)
	}
	return out, nil
}
