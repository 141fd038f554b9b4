// Package db provides database initialization and access for SQLite and Postgres.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps a *sql.DB with the driver it was opened with, so repositories
// can write queries with ? placeholders regardless of backend.
type DB struct {
	*sql.DB
	Driver string
}

// DefaultPath returns the default SQLite database path: ~/.config/sf/feedback.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sf", "feedback.db"), nil
}

// Open opens a database for the given driver and runs migrations.
// For sqlite3 the dsn is a file path; missing directories are created and
// WAL mode is enabled. For postgres the dsn is a lib/pq connection string.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	d := &DB{DB: sqlDB, Driver: driver}

	if err := d.configure(); err != nil {
		closeErr := d.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	if err := d.migrate(); err != nil {
		closeErr := d.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenSQLite is shorthand for Open(DriverSQLite, path).
func OpenSQLite(path string) (*DB, error) {
	return Open(DriverSQLite, path)
}

// configure sets SQLite pragmas for WAL mode. Postgres needs only a ping.
func (d *DB) configure() error {
	if d.Driver != DriverSQLite {
		if err := d.Ping(); err != nil {
			return fmt.Errorf("pinging database: %w", err)
		}
		return nil
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, p := range pragmas {
		if _, err := d.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}

// Rebind rewrites ? placeholders into the driver's bind syntax.
func (d *DB) Rebind(query string) string {
	return Rebind(d.Driver, query)
}

// Rebind rewrites ? placeholders to $1, $2, ... for postgres and returns
// the query unchanged for other drivers.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
