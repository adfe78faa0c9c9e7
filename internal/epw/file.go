package epw

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// maxLineLength bounds a single line; DESIGN CONDITIONS lines are the
// longest in practice at a few kilobytes.
const maxLineLength = 1 << 20

// File is a fully decoded EPW file.
type File struct {
	Header Header `json:"header"`
	Data   Data   `json:"data"`
}

// headerStep decodes one header line into h.
type headerStep struct {
	section Section
	decode  func(Fields, *Header) error
}

var headerSteps = [HeaderLines]headerStep{
	{SectionLocation, func(f Fields, h *Header) (err error) {
		h.Location, err = DecodeLocation(f)
		return err
	}},
	{SectionDesignConditions, func(f Fields, h *Header) (err error) {
		h.DesignConditions, err = DecodeDesignConditions(f)
		return err
	}},
	{SectionTypicalExtremePeriods, func(f Fields, h *Header) (err error) {
		h.TypicalExtremePeriods, err = DecodeTypicalExtremePeriods(f)
		return err
	}},
	{SectionGroundTemperatures, func(f Fields, h *Header) (err error) {
		h.GroundTemperatures, err = DecodeGroundTemperatures(f)
		return err
	}},
	{SectionHolidaysDaylightSavings, func(f Fields, h *Header) (err error) {
		h.HolidaysDaylightSavings, err = DecodeHolidaysDaylightSavings(f)
		return err
	}},
	{SectionComments1, func(f Fields, h *Header) (err error) {
		h.Comments1, err = DecodeComments(SectionComments1, f)
		return err
	}},
	{SectionComments2, func(f Fields, h *Header) (err error) {
		h.Comments2, err = DecodeComments(SectionComments2, f)
		return err
	}},
	{SectionDataPeriods, func(f Fields, h *Header) (err error) {
		h.DataPeriods, err = DecodeDataPeriods(f)
		return err
	}},
}

// ParseFile opens and decodes the EPW file at path. The file is closed before
// ParseFile returns.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open "+path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes an EPW file from r: the eight header lines in order, then
// one record per remaining non-empty line. Parse does not close r.
func Parse(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	p := parser{scanner: sc}
	header, err := p.header()
	if err != nil {
		return nil, err
	}
	data, err := p.data(header)
	if err != nil {
		return nil, err
	}
	return &File{Header: header, Data: data}, nil
}

// parser walks the input line by line, keeping the 1-based line number.
type parser struct {
	scanner *bufio.Scanner
	line    int
}

// next returns the following line. A line delivered together with a read
// error may be incomplete and is not returned.
func (p *parser) next() (string, bool) {
	if !p.scanner.Scan() || p.scanner.Err() != nil {
		return "", false
	}
	p.line++
	text := p.scanner.Text()
	if p.line == 1 {
		text = strings.TrimPrefix(text, "\ufeff")
	}
	return text, true
}

func (p *parser) header() (Header, error) {
	var h Header
	for _, step := range headerSteps {
		text, ok := p.next()
		if !ok {
			if err := p.scanner.Err(); err != nil {
				return Header{}, ioError("read header", err)
			}
			return Header{}, &TruncatedHeaderError{Section: step.section, Line: p.line + 1}
		}
		if err := step.decode(Tokenize(text), &h); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

func (p *parser) data(h Header) (Data, error) {
	zone := h.Location.Zone()
	data := make(Data, 0, 8760*min(h.DataPeriods.RecordsPerHour, 4))
	for {
		text, ok := p.next()
		if !ok {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := DecodeRecord(Tokenize(text), p.line, zone)
		if err != nil {
			return nil, err
		}
		data = append(data, rec)
	}
	if err := p.scanner.Err(); err != nil {
		return nil, ioError("read data", err)
	}
	return data, nil
}
