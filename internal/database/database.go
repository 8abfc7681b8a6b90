// Package database handles connection management for PostgreSQL and SQLite
// and migration execution using goose. Connect returns a ready-to-use
// *sql.DB pool and Migrate applies the embedded schema for the dialect.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/pressly/goose/v3"
)

// Supported values for the DB_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations
var embedMigrations embed.FS

// Connect opens a connection pool for the given driver and DSN. For SQLite
// the DSN is a file path or ":memory:". It verifies the connection with a
// ping before returning.
func Connect(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		return connectPostgres(dsn)
	case DriverSQLite:
		return connectSQLite(dsn)
	default:
		return nil, fmt.Errorf("database: unknown driver %q", driver)
	}
}

func connectPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}
	db.SetMaxOpenConns(25)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "driver", DriverPostgres)
	return db, nil
}

func connectSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	// One connection: an in-memory database only lives on the connection
	// that created it, and the tool has a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("database pragma: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "driver", DriverSQLite, "path", path)
	return db, nil
}

// Migrate runs all pending goose migrations for the driver from the
// embedded SQL files. Migrations are embedded at compile time so no
// external files are needed at runtime.
func Migrate(db *sql.DB, driver string) error {
	dialect, dir, err := migrationSource(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "driver", driver)
	return nil
}

// migrationSource maps a driver name to its goose dialect and the embedded
// directory holding its migrations.
func migrationSource(driver string) (dialect, dir string, err error) {
	switch driver {
	case DriverPostgres:
		return "postgres", "migrations/postgres", nil
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("database: unknown driver %q", driver)
	}
}
