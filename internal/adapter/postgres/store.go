// Package postgres loads observations into a PostgreSQL table with one
// column per manifest field. It implements pipeline.BatchLoader.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/epw-etl/internal/config"
	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/lib/pq"
)

// maxParams is the PostgreSQL limit on bind parameters per statement.
const maxParams = 65535

// metaColumns precede the manifest columns in every row.
var metaColumns = []column{
	{name: "id", sqlType: "TEXT PRIMARY KEY"},
	{name: "ingest_id", sqlType: "TEXT NOT NULL"},
	{name: "wmo", sqlType: "TEXT NOT NULL"},
	{name: "source_file", sqlType: "TEXT NOT NULL"},
	{name: "processed_at", sqlType: "TIMESTAMPTZ NOT NULL"},
}

type column struct {
	name    string
	sqlType string
}

// Store writes observations to a PostgreSQL table.
type Store struct {
	db      *sql.DB
	table   string // quoted, possibly schema-qualified
	columns []column
	logger  *slog.Logger
}

// Open connects to the configured database and creates the observation
// table if it does not exist.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := New(db, cfg.PostgresTable, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database handle.
func New(db *sql.DB, table string, logger *slog.Logger) *Store {
	return &Store{
		db:      db,
		table:   quoteTable(table),
		columns: tableColumns(),
		logger:  logger,
	}
}

// EnsureSchema creates the observation table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL(s.table, s.columns)); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// LoadBatch inserts observations in one transaction, splitting the rows
// across statements to stay under the bind parameter limit. Rows whose ID
// already exists are skipped, so reloading a file is harmless.
func (s *Store) LoadBatch(ctx context.Context, observations []domain.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var inserted int64
	perStatement := maxParams / len(s.columns)
	for start := 0; start < len(observations); start += perStatement {
		rows := observations[start:min(start+perStatement, len(observations))]

		args := make([]any, 0, len(rows)*len(s.columns))
		for i := range rows {
			args = append(args, rowArgs(&rows[i])...)
		}

		res, err := tx.ExecContext(ctx, insertSQL(s.table, s.columns, len(rows)), args...)
		if err != nil {
			return fmt.Errorf("insert %d rows: %w", len(rows), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("batch inserted",
		"table", s.table,
		"rows", len(observations),
		"inserted", inserted,
	)
	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func tableColumns() []column {
	cols := append([]column(nil), metaColumns...)
	for _, c := range epw.Manifest() {
		cols = append(cols, column{name: c.Name, sqlType: sqlType(c.Type)})
	}
	return cols
}

func sqlType(k epw.Kind) string {
	switch k {
	case epw.KindTimestamp:
		return "TIMESTAMPTZ"
	case epw.KindText:
		return "TEXT"
	case epw.KindInteger:
		return "INTEGER"
	default:
		return "DOUBLE PRECISION"
	}
}

// quoteTable quotes each dot-separated part of a table name.
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func createTableSQL(table string, cols []column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = pq.QuoteIdentifier(c.name) + " " + c.sqlType
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(defs, ",\n\t"))
}

// insertSQL builds a multi-row INSERT with numbered placeholders.
func insertSQL(table string, cols []column, rows int) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = pq.QuoteIdentifier(c.name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(names, ", "))
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range cols {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteByte(')')
	}
	b.WriteString(" ON CONFLICT (id) DO NOTHING")
	return b.String()
}

// rowArgs returns the bind values for one observation in column order.
// Missing values are nil and stored as NULL.
func rowArgs(o *domain.Observation) []any {
	args := make([]any, 0, len(metaColumns)+len(epw.Manifest()))
	args = append(args, o.ID, o.IngestID, o.Station.WMO, o.SourceFile, o.ProcessedAt)
	return append(args, o.Record.Values()...)
}
