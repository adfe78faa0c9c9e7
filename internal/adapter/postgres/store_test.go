package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumns(t *testing.T) {
	cols := tableColumns()
	manifest := epw.Manifest()

	require.Len(t, cols, len(metaColumns)+len(manifest))
	assert.Equal(t, "id", cols[0].name)
	assert.Equal(t, "TEXT PRIMARY KEY", cols[0].sqlType)

	byName := make(map[string]string, len(cols))
	for _, c := range cols {
		byName[c.name] = c.sqlType
	}
	assert.Equal(t, "TIMESTAMPTZ", byName["timestamp"])
	assert.Equal(t, "TEXT", byName["flags"])
	assert.Equal(t, "DOUBLE PRECISION", byName["dry_bulb_temperature"])
	assert.Equal(t, "INTEGER", byName["total_sky_cover"])
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"epw_observations", `"epw_observations"`},
		{"weather.observations", `"weather"."observations"`},
		{`odd"name`, `"odd""name"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTable(tt.in))
		})
	}
}

func TestCreateTableSQL(t *testing.T) {
	sql := createTableSQL(`"obs"`, []column{
		{name: "id", sqlType: "TEXT PRIMARY KEY"},
		{name: "dry_bulb_temperature", sqlType: "DOUBLE PRECISION"},
	})

	assert.Equal(t, "CREATE TABLE IF NOT EXISTS \"obs\" (\n\t\"id\" TEXT PRIMARY KEY,\n\t\"dry_bulb_temperature\" DOUBLE PRECISION\n)", sql)
}

func TestInsertSQL(t *testing.T) {
	cols := []column{{name: "id"}, {name: "wmo"}, {name: "albedo"}}

	t.Run("single row", func(t *testing.T) {
		assert.Equal(t,
			`INSERT INTO "obs" ("id", "wmo", "albedo") VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			insertSQL(`"obs"`, cols, 1))
	})

	t.Run("placeholders continue across rows", func(t *testing.T) {
		sql := insertSQL(`"obs"`, cols, 3)
		assert.Contains(t, sql, "VALUES ($1, $2, $3), ($4, $5, $6), ($7, $8, $9) ON CONFLICT")
	})

	t.Run("full rows stay under the parameter limit", func(t *testing.T) {
		all := tableColumns()
		perStatement := maxParams / len(all)
		sql := insertSQL(`"obs"`, all, perStatement)

		assert.LessOrEqual(t, perStatement*len(all), maxParams)
		assert.Equal(t, perStatement, strings.Count(sql, "($"))
	})
}

func TestRowArgs(t *testing.T) {
	processed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := time.Date(1987, 1, 1, 1, 0, 0, 0, time.FixedZone("", -5*3600))
	obs := domain.Observation{
		ID:          "722110-abc",
		IngestID:    "ingest-1",
		SourceFile:  "tampa.epw",
		Station:     domain.Station{WMO: "722110"},
		ProcessedAt: processed,
		Record: epw.WeatherRecord{
			Timestamp:          ts,
			Flags:              "?9?9",
			DryBulbTemperature: epw.Some(20.6),
			TotalSkyCover:      epw.Some(8),
		},
	}

	args := rowArgs(&obs)

	require.Len(t, args, len(tableColumns()))
	assert.Equal(t, []any{"722110-abc", "ingest-1", "722110", "tampa.epw", processed, ts, "?9?9", 20.6}, args[:8])
	assert.Nil(t, args[8], "missing dew point binds NULL")

	cols := tableColumns()
	for i, c := range cols {
		if c.name == "total_sky_cover" {
			assert.Equal(t, 8, args[i])
		}
	}
}
