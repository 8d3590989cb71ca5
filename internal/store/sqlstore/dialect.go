package sqlstore

import (
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	// Register database/sql drivers for every supported dialect.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names accepted in Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// dialect captures what differs between the supported databases.
type dialect struct {
	name         string
	sqlDriver    string // database/sql driver name
	gooseDialect string
	placeholder  sq.PlaceholderFormat
	pragmas      []string
	maxOpenConns int
}

func lookupDialect(driver string) (dialect, bool) {
	switch strings.ToLower(driver) {
	case "", DriverSQLite, "sqlite3":
		return dialect{
			name:         DriverSQLite,
			sqlDriver:    "sqlite",
			gooseDialect: "sqlite3",
			placeholder:  sq.Question,
			pragmas: []string{
				"PRAGMA journal_mode=WAL",
				"PRAGMA synchronous=NORMAL",
				"PRAGMA foreign_keys=ON",
				"PRAGMA busy_timeout=5000",
			},
			// A single connection keeps the pragmas in effect and serializes writers.
			maxOpenConns: 1,
		}, true
	case DriverPostgres, "postgresql", "pgx":
		return dialect{
			name:         DriverPostgres,
			sqlDriver:    "pgx",
			gooseDialect: "postgres",
			placeholder:  sq.Dollar,
			maxOpenConns: 8,
		}, true
	case DriverMySQL:
		return dialect{
			name:         DriverMySQL,
			sqlDriver:    "mysql",
			gooseDialect: "mysql",
			placeholder:  sq.Question,
			maxOpenConns: 8,
		}, true
	default:
		return dialect{}, false
	}
}

// migrationsDir is the embedded directory holding this dialect's migrations.
func (d dialect) migrationsDir() string {
	return "migrations/" + d.name
}

// isUniqueViolation reports whether err is a unique or primary key violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint failed")
}
