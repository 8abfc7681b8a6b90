package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"folioadmin/internal/models"
)

// DefaultAdminPassword is the well-known password of the development
// account. Seed is only ever called when the dev seed flag is set.
const DefaultAdminPassword = "admin123"

// Seed creates the default admin account if no users exist. It is a
// development convenience: callers gate it behind an explicit opt-in.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
	`, models.DefaultAdminUsername, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Warn("database seeded with default admin user",
		"username", models.DefaultAdminUsername,
		"password", DefaultAdminPassword,
	)

	return nil
}
