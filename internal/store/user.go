// Package store provides database access methods for all portfolio
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"folioadmin/internal/models"
)

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("not found")

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES ($1, $2)
	`, username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.FindByUsername(ctx, username)
}

// Count returns the number of user accounts.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// CheckPassword verifies a plaintext password against the user's stored
// hash. Both bcrypt hashes and legacy unsalted SHA-256 hex digests are
// accepted.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	if IsLegacyHash(user.PasswordHash) {
		want := []byte(user.PasswordHash)
		got := []byte(HashSHA256(password))
		return subtle.ConstantTimeCompare(want, got) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// HashSHA256 returns the lowercase hex SHA-256 digest of password, the
// format used by accounts created before bcrypt.
func HashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsLegacyHash reports whether hash is a SHA-256 hex digest rather than a
// bcrypt hash.
func IsLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// requireRow turns a zero-row write into ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
