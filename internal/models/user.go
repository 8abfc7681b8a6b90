// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"
)

// DefaultAdminUsername is the account created by the opt-in development seed.
const DefaultAdminUsername = "admin"

// User represents the admin account used to sign in to the tool.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"created_at"`
}

// IsDefaultAdmin reports whether this is the well-known seeded account.
// The dashboard warns while it is still in use.
func (u *User) IsDefaultAdmin() bool {
	return u.Username == DefaultAdminUsername
}
