package epw

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSamplePath = "testdata/USA_FL_Tampa_sample.epw"

func readSample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(testSamplePath)
	require.NoError(t, err)
	return string(data)
}

func sampleLines(t *testing.T) []string {
	t.Helper()
	return strings.Split(strings.TrimRight(readSample(t), "\r\n"), "\r\n")
}

func TestParseFile(t *testing.T) {
	f, err := ParseFile(testSamplePath)
	require.NoError(t, err)

	h := f.Header
	assert.Equal(t, "TAMPA", h.Location.City)
	assert.Equal(t, "722110", h.Location.WMO)
	assert.Equal(t, -5.0, h.Location.TimeZone)

	require.Len(t, h.DesignConditions.Conditions, 1)
	dc := h.DesignConditions.Conditions[0]
	assert.Equal(t, "Climate Design Data 2009 ASHRAE Handbook", dc.Source)
	assert.Len(t, dc.Heating, 14)
	assert.Len(t, dc.Cooling, 32)
	assert.Len(t, dc.Extremes, 16)

	assert.Equal(t, 6, h.TypicalExtremePeriods.Count)
	assert.Len(t, h.TypicalExtremePeriods.Periods, 6)
	assert.Equal(t, 3, h.GroundTemperatures.Count)
	assert.False(t, h.HolidaysDaylightSavings.LeapYear)
	assert.Equal(t, "TMY2-12842,Data from NSRDB", h.Comments1.Text)
	assert.True(t, strings.HasPrefix(h.Comments2.Text, "-- Ground temps"))
	assert.Equal(t, 1, h.DataPeriods.RecordsPerHour)
	assert.Equal(t, time.Sunday, h.DataPeriods.Periods[0].StartDayOfWeek)

	require.Len(t, f.Data, 48)
	zone := h.Location.Zone()
	assert.Equal(t, time.Date(1987, 1, 1, 1, 0, 0, 0, zone), f.Data[0].Timestamp)
	assert.Equal(t, Some(20.6), f.Data[0].DryBulbTemperature)
	assert.False(t, f.Data[4].DryBulbTemperature.Valid(), "hour 5 carries the dry bulb sentinel")
	assert.False(t, f.Data[5].RelativeHumidity.Valid(), "hour 6 carries the humidity sentinel")
	assert.Equal(t, time.Date(1987, 1, 2, 0, 0, 0, 0, zone), f.Data[23].Timestamp)
	assert.Equal(t, time.Date(1987, 1, 3, 0, 0, 0, 0, zone), f.Data[47].Timestamp)
}

func TestParseRecordCount(t *testing.T) {
	lines := sampleLines(t)

	t.Run("trailing blank lines ignored", func(t *testing.T) {
		input := strings.Join(lines, "\n") + "\n\n\n"
		f, err := Parse(strings.NewReader(input))

		require.NoError(t, err)
		assert.Len(t, f.Data, len(lines)-HeaderLines)
	})

	t.Run("no trailing newline", func(t *testing.T) {
		f, err := Parse(strings.NewReader(strings.Join(lines, "\n")))

		require.NoError(t, err)
		assert.Len(t, f.Data, len(lines)-HeaderLines)
	})

	t.Run("header only", func(t *testing.T) {
		f, err := Parse(strings.NewReader(strings.Join(lines[:HeaderLines], "\n")))

		require.NoError(t, err)
		assert.Empty(t, f.Data)
	})

	t.Run("byte order mark", func(t *testing.T) {
		f, err := Parse(strings.NewReader("\ufeff" + strings.Join(lines, "\n")))

		require.NoError(t, err)
		assert.Equal(t, "TAMPA", f.Header.Location.City)
	})
}

func TestParseTruncatedHeader(t *testing.T) {
	lines := sampleLines(t)

	tests := []struct {
		name    string
		keep    int
		section Section
	}{
		{"empty input", 0, SectionLocation},
		{"after location and design conditions", 2, SectionTypicalExtremePeriods},
		{"after five lines", 5, SectionComments1},
		{"missing data periods", 7, SectionDataPeriods},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Join(lines[:tt.keep], "\n")
			f, err := Parse(strings.NewReader(input))

			assert.Nil(t, f)
			var truncErr *TruncatedHeaderError
			require.ErrorAs(t, err, &truncErr)
			assert.Equal(t, tt.section, truncErr.Section)
			assert.Equal(t, tt.keep+1, truncErr.Line)
			assert.ErrorIs(t, err, ErrTruncatedHeader)
		})
	}
}

func TestParseHeaderOutOfOrder(t *testing.T) {
	lines := sampleLines(t)
	lines[2], lines[3] = lines[3], lines[2]

	_, err := Parse(strings.NewReader(strings.Join(lines, "\n")))

	var fieldErr *HeaderFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, SectionTypicalExtremePeriods, fieldErr.Section)
	assert.Equal(t, 0, fieldErr.Field)
}

func TestParseDataErrors(t *testing.T) {
	t.Run("short data line reports its line number", func(t *testing.T) {
		lines := sampleLines(t)
		fields := strings.Split(lines[19], ",")
		lines[19] = strings.Join(fields[:34], ",")

		f, err := Parse(strings.NewReader(strings.Join(lines, "\n")))

		assert.Nil(t, f)
		var countErr *DataFieldCountError
		require.ErrorAs(t, err, &countErr)
		assert.Equal(t, 20, countErr.Line)
		assert.Equal(t, 34, countErr.Actual)
	})

	t.Run("invalid day", func(t *testing.T) {
		lines := sampleLines(t)
		fields := strings.Split(lines[8], ",")
		fields[2] = "32"
		lines[8] = strings.Join(fields, ",")

		_, err := Parse(strings.NewReader(strings.Join(lines, "\n")))

		var dateErr *CalendarDateError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, 9, dateErr.Line)
		assert.Equal(t, 32, dateErr.Day)
	})

	t.Run("line numbers count skipped blank lines", func(t *testing.T) {
		lines := sampleLines(t)
		fields := strings.Split(lines[10], ",")
		fields[6] = "warm"
		lines[10] = strings.Join(fields, ",")
		input := strings.Join(lines[:9], "\n") + "\n\n" + strings.Join(lines[9:], "\n")

		_, err := Parse(strings.NewReader(input))

		var fieldErr *DataFieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, 12, fieldErr.Line)
		assert.Equal(t, "dry_bulb_temperature", fieldErr.Name)
	})
}

func TestParseIOErrors(t *testing.T) {
	t.Run("reader fails", func(t *testing.T) {
		boom := errors.New("disk on fire")
		_, err := Parse(iotest.ErrReader(boom))

		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("reader fails mid data", func(t *testing.T) {
		boom := errors.New("connection reset")
		_, err := Parse(&failAfter{r: strings.NewReader(readSample(t)), n: 4096, err: boom})

		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "absent.epw"))

		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// failAfter returns err once n bytes have been read.
type failAfter struct {
	r   *strings.Reader
	n   int
	err error
}

func (f *failAfter) Read(p []byte) (int, error) {
	if f.n <= 0 {
		return 0, f.err
	}
	if len(p) > f.n {
		p = p[:f.n]
	}
	n, err := f.r.Read(p)
	f.n -= n
	return n, err
}
