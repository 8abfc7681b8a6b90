// store_test.go provides shared test database helpers for all store tests.
// testDB uses an in-memory SQLite database and always runs; testPostgres
// is skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"folioadmin/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "folioadmin")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "folioadmin")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a fresh in-memory SQLite database with the schema applied.
// A cleanup function is registered to close the connection when the test
// finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testPostgres opens a connection to the test PostgreSQL database and runs
// migrations. If the database is unavailable, the test is skipped.
func testPostgres(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.DriverPostgres, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db, database.DriverPostgres); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }
