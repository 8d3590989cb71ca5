// Package sqlstore implements store.Store over database/sql for SQLite, PostgreSQL and MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/listenupapp/listenup-seed/internal/store"
)

// insertChunkSize bounds the rows per multi-row INSERT so statements stay under
// every dialect's placeholder limit.
const insertChunkSize = 200

// Table names.
const (
	tableBooks      = "books"
	tableGenres     = "genres"
	tableBookGenres = "book_genres"
	tableTropes     = "tropes"
	tableBookTropes = "book_tropes"
)

// Config selects the database to open.
type Config struct {
	// Driver is one of sqlite (default), postgres or mysql.
	Driver string
	// DSN is the driver data source name; for SQLite a file path.
	DSN string
}

// Store provides database/sql-backed persistence for seeded entities.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to the configured database, applies SQLite pragmas, and runs the
// embedded schema migrations for the dialect.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d, ok := lookupDialect(cfg.Driver)
	if !ok {
		return nil, store.ErrInvalidInput.WithDetails(map[string]string{"driver": cfg.Driver}).
			WithCause(fmt.Errorf("unsupported database driver %q", cfg.Driver))
	}
	if cfg.DSN == "" {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("%s: empty DSN", d.name))
	}

	db, err := sql.Open(d.sqlDriver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}

	db.SetMaxOpenConns(d.maxOpenConns)
	db.SetMaxIdleConns(d.maxOpenConns)
	if d.name != DriverSQLite {
		db.SetConnMaxLifetime(time.Hour)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	for _, pragma := range d.pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if err := applyMigrations(ctx, db, d, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:      db,
		dialect: d,
		logger:  logger,
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the normalized driver name of the open database.
func (s *Store) Driver() string {
	return s.dialect.name
}

// builder returns a statement builder using the dialect's placeholder format.
func (s *Store) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(s.dialect.placeholder)
}

func (s *Store) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.db.ExecContext(ctx, query, args...)
}

func (s *Store) query(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

// deleteAll removes every row of table.
func (s *Store) deleteAll(ctx context.Context, table string) (int64, error) {
	res, err := s.exec(ctx, s.builder().Delete(table))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected %s: %w", table, err)
	}
	return n, nil
}

// insertRows inserts rows in chunks. Each row must match columns.
func (s *Store) insertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertChunkSize {
		end := min(start+insertChunkSize, len(rows))

		ins := s.builder().Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			ins = ins.Values(row...)
		}

		if _, err := s.exec(ctx, ins); err != nil {
			if isUniqueViolation(err) {
				return store.ErrAlreadyExists.WithCause(fmt.Errorf("insert %s: %w", table, err))
			}
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

// count returns the number of rows matched by b, which must select a single COUNT.
func (s *Store) count(ctx context.Context, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
