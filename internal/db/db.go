package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver names accepted by Open
const (
	// DriverCGO is mattn/go-sqlite3
	DriverCGO = "sqlite3"
	// DriverPure is modernc.org/sqlite
	DriverPure = "sqlite"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	driver string
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".weekly"
	}
	return filepath.Join(home, ".local", "share", "weekly")
}

// Open opens a database connection with the given driver and runs migrations.
// An empty driver selects DriverCGO.
func Open(dbPath, driver string) (*DB, error) {
	if driver == "" {
		driver = DriverCGO
	}

	dsn, err := dataSourceName(dbPath, driver)
	if err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; also keeps :memory: on a single connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, driver: driver}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// dataSourceName builds the driver-specific DSN with WAL and a busy timeout
func dataSourceName(dbPath, driver string) (string, error) {
	switch driver {
	case DriverCGO:
		if dbPath == ":memory:" {
			return ":memory:", nil
		}
		return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath), nil
	case DriverPure:
		if dbPath == ":memory:" {
			return ":memory:", nil
		}
		if strings.HasPrefix(dbPath, "file:") {
			return dbPath, nil
		}
		path := dbPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		u := url.URL{Scheme: "file", Path: path}
		q := u.Query()
		q.Set("mode", "rwc")
		q.Add("_pragma", "busy_timeout(5000)")
		q.Add("_pragma", "journal_mode(WAL)")
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return "", fmt.Errorf("unknown sqlite driver %q", driver)
	}
}

// Driver returns the driver name the database was opened with
func (db *DB) Driver() string {
	return db.driver
}

// migrate runs database migrations using embedded SQL files
func (db *DB) migrate() error {
	// goose logs to stdout, which belongs to the TUI
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Transaction executes a function within a transaction
func (db *DB) Transaction(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
