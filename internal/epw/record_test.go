package epw

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	fields := Schema()

	require.Len(t, fields, RecordFieldCount-len(dateFields))
	for i, f := range fields {
		assert.Equal(t, i+len(dateFields), f.Index, f.Name)
	}

	fields[0].Name = "changed"
	assert.Equal(t, "flags", Schema()[0].Name)
}

func TestFieldAt(t *testing.T) {
	f, ok := FieldAt(6)
	require.True(t, ok)
	assert.Equal(t, "dry_bulb_temperature", f.Name)
	assert.Equal(t, "C", f.Unit)
	assert.Equal(t, 99.9, f.Missing)

	_, ok = FieldAt(4)
	assert.False(t, ok)
	_, ok = FieldAt(RecordFieldCount)
	assert.False(t, ok)
}

func TestFieldIsMissing(t *testing.T) {
	tests := []struct {
		index int
		token string
		want  bool
	}{
		{6, "99.9", true},
		{6, "99.90", true},
		{6, "20.6", false},
		{8, "999", true},
		{9, "999999", true},
		{13, "9999", true},
		{22, "99", true},
		{25, "99999", true},
		{29, "0.999", true},
		{29, "0.062", false},
		{5, "99.9", false},
		{27, "999999999", false},
		{6, "", false},
	}
	for _, tt := range tests {
		f, ok := FieldAt(tt.index)
		require.True(t, ok)
		assert.Equal(t, tt.want, f.IsMissing(tt.token), "%s %q", f.Name, tt.token)
	}
}

// Decoding a sentinel must agree with IsMissing for every field that has one.
func TestSentinelRoundTrip(t *testing.T) {
	for _, f := range Schema() {
		if !f.HasMissing {
			continue
		}
		t.Run(f.Name, func(t *testing.T) {
			fields := testRecordFields(2021, 1, 1, 1)
			fields[f.Index] = formatSentinel(f.Missing)
			require.True(t, f.IsMissing(fields[f.Index]))

			rec, err := DecodeRecord(fields, 9, time.UTC)
			require.NoError(t, err)
			assert.False(t, f.Present(&rec))
			assert.Nil(t, f.Value(&rec))
		})
	}
}

func formatSentinel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestManifest(t *testing.T) {
	cols := Manifest()

	require.Len(t, cols, len(Schema())+1)
	assert.Equal(t, Column{Name: "timestamp", Type: KindTimestamp}, cols[0])
	assert.Equal(t, Column{Name: "flags", Type: KindText}, cols[1])
	assert.Equal(t, Column{Name: "dry_bulb_temperature", Type: KindFloat, Unit: "C"}, cols[2])
	assert.Equal(t, Column{Name: "liquid_precipitation_quantity", Type: KindFloat, Unit: "hr"}, cols[len(cols)-1])
}

func TestWeatherRecordValues(t *testing.T) {
	fields := testRecordFields(2021, 1, 1, 1)
	fields[6] = "99.9"
	rec, err := DecodeRecord(fields, 9, time.UTC)
	require.NoError(t, err)

	row := rec.Values()

	require.Len(t, row, len(Manifest()))
	assert.Equal(t, rec.Timestamp, row[0])
	assert.Equal(t, testFlags, row[1])
	assert.Nil(t, row[2])
	assert.Equal(t, 18.9, row[3])
	assert.Equal(t, 8, row[18])
}
