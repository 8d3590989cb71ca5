package sqlstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/listenup-seed/internal/errors"
	"github.com/listenupapp/listenup-seed/internal/store"
)

// newTestStore creates a Store backed by a SQLite file in a temp directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dbPath}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var fk int
	require.NoError(t, s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	assert.Equal(t, DriverSQLite, s.Driver())
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(ctx, Config{DSN: dbPath}, nil)
	require.NoError(t, err)
	require.NoError(t, s1.CreateBook(ctx, makeTestBook("book-1", "Dune")))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, Config{DSN: dbPath}, nil)
	require.NoError(t, err)
	defer s2.Close()

	books, err := s2.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: DriverSQLite}, nil)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestLookupDialect(t *testing.T) {
	tests := []struct {
		driver string
		want   string
		ok     bool
	}{
		{"", DriverSQLite, true},
		{"sqlite3", DriverSQLite, true},
		{"Postgres", DriverPostgres, true},
		{"pgx", DriverPostgres, true},
		{"mysql", DriverMySQL, true},
		{"mssql", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, ok := lookupDialect(tt.driver)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, d.name)
		})
	}
}

// Genre text is the lookup key, so MySQL must compare it byte-for-byte like
// SQLite and PostgreSQL do.
func TestMySQLGenreTextIsCaseSensitive(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/mysql/00001_seed_tables.sql")
	require.NoError(t, err)

	var column string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "text ") {
			column = line
			break
		}
	}
	require.NotEmpty(t, column)
	assert.Contains(t, column, "COLLATE utf8mb4_bin")
}

func TestFormatParseTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)
	got, err := parseTime(formatTime(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}
